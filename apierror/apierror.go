package apierror

import (
	"errors"
	"fmt"
	"time"
)

// Code identifies one member of the closed error taxonomy.
type Code string

const (
	// CodeUnauthorized means the credential is invalid or expired. Never
	// retried; the caller must re-authenticate.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeForbidden means the credential is valid but lacks permission
	// or scope. Never retried.
	CodeForbidden Code = "FORBIDDEN"

	// CodeRateLimited means local admission was denied or the remote
	// quota is exhausted. Never retried automatically; RetryAfter tells
	// the caller when to try again.
	CodeRateLimited Code = "RATE_LIMITED"

	// CodeBadResponse means the request or the response was malformed.
	// Retrying cannot succeed.
	CodeBadResponse Code = "BAD_RESPONSE"

	// CodeNetwork means a transient transport or remote server failure.
	CodeNetwork Code = "NETWORK"

	// CodeTimeout means the transport call exceeded its deadline.
	CodeTimeout Code = "TIMEOUT"

	// CodeUnknown is the fallback for unclassified conditions. Treated
	// as non-retryable: fail closed rather than retry indefinitely.
	CodeUnknown Code = "UNKNOWN"
)

// Error is the single error value surfaced for every failed API call.
//
// Message and Details are safe for display and logging: no constructor
// in this package ever places the Authorization header, bearer token, or
// any raw credential into them. Treat an Error as immutable once built.
type Error struct {
	// Code is the taxonomy member.
	Code Code

	// Status is the HTTP status, or 0 for transport-level failures.
	Status int

	// Message is a short, displayable description.
	Message string

	// Details carries redacted technical context (truncated body
	// excerpt, transport error text).
	Details string

	// Retryable reports whether an immediate retry is believed likely
	// to succeed.
	Retryable bool

	// RetryAfter is how long the caller should wait before retrying.
	// Zero means no guidance.
	RetryAfter time.Duration

	// RateLimitReset is the remote quota reset instant, when known.
	RateLimitReset time.Time
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("apierror: %s: %s (status=%d)", e.Code, e.Message, e.Status)
	}
	return fmt.Sprintf("apierror: %s: %s", e.Code, e.Message)
}

// ResetUTC renders RateLimitReset as an ISO-8601 UTC string, or "" when
// unset.
func (e *Error) ResetUTC() string {
	if e.RateLimitReset.IsZero() {
		return ""
	}
	return e.RateLimitReset.UTC().Format(time.RFC3339)
}

// As extracts an *Error from an error chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code Code) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Code == code
}

// IsRetryable reports whether err is an *Error marked retryable.
// Non-API errors are never retryable.
func IsRetryable(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Retryable
}
