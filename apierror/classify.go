package apierror

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Header names consumed from the remote API.
const (
	headerRateLimitRemaining = "X-Ratelimit-Remaining"
	headerRateLimitReset     = "X-Ratelimit-Reset"
	headerRetryAfter         = "Retry-After"
)

// Default retry guidance when the remote supplies none.
const (
	defaultGatewayRetryAfter   = 5 * time.Second
	defaultServerRetryAfter    = 10 * time.Second
	defaultTransportRetryAfter = 5 * time.Second
)

// ClassifierConfig configures a Classifier.
type ClassifierConfig struct {
	// Now supplies the current time for retry-after arithmetic.
	// Default: time.Now
	Now func() time.Time
}

// Classifier turns HTTP responses and transport failures into members of
// the closed taxonomy. Classification is pure: the same inputs always
// yield an equal *Error.
type Classifier struct {
	now func() time.Time
}

// NewClassifier creates a classifier.
func NewClassifier(config ClassifierConfig) *Classifier {
	if config.Now == nil {
		config.Now = time.Now
	}
	return &Classifier{now: config.Now}
}

// FromResponse classifies a non-2xx HTTP response. A status inside
// [200, 300) returns nil.
func (c *Classifier) FromResponse(status int, header http.Header, body []byte) *Error {
	if status >= 200 && status < 300 {
		return nil
	}

	switch {
	case status == http.StatusUnauthorized:
		return &Error{
			Code:    CodeUnauthorized,
			Status:  status,
			Message: "authentication failed: credentials were rejected, re-authenticate and try again",
			Details: Redact(body),
		}

	case status == http.StatusForbidden && header.Get(headerRateLimitRemaining) == "0":
		return c.rateLimited(status, header, body)

	case status == http.StatusTooManyRequests:
		// Secondary rate limits arrive as 429 with Retry-After.
		return c.rateLimited(status, header, body)

	case status == http.StatusForbidden:
		return &Error{
			Code:    CodeForbidden,
			Status:  status,
			Message: "permission denied: the credential lacks the required scope or access",
			Details: Redact(body),
		}

	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &Error{
			Code:    CodeBadResponse,
			Status:  status,
			Message: "the API rejected the request data",
			Details: Redact(body),
		}

	case status == http.StatusBadGateway ||
		status == http.StatusServiceUnavailable ||
		status == http.StatusGatewayTimeout:
		return &Error{
			Code:       CodeNetwork,
			Status:     status,
			Message:    "the API is temporarily unavailable",
			Details:    Redact(body),
			Retryable:  true,
			RetryAfter: c.headerRetryAfter(header, defaultGatewayRetryAfter),
		}

	case status >= 500:
		return &Error{
			Code:       CodeNetwork,
			Status:     status,
			Message:    "the API returned a server error",
			Details:    Redact(body),
			Retryable:  true,
			RetryAfter: c.headerRetryAfter(header, defaultServerRetryAfter),
		}

	default:
		return &Error{
			Code:    CodeUnknown,
			Status:  status,
			Message: "unexpected API response status " + strconv.Itoa(status),
			Details: Redact(body),
		}
	}
}

func (c *Classifier) rateLimited(status int, header http.Header, body []byte) *Error {
	now := c.now()
	e := &Error{
		Code:    CodeRateLimited,
		Status:  status,
		Message: "API rate limit exhausted",
		Details: Redact(body),
	}

	if reset, ok := unixHeader(header, headerRateLimitReset); ok {
		e.RateLimitReset = reset
		if wait := reset.Sub(now); wait > 0 {
			e.RetryAfter = wait
		}
		return e
	}

	if secs, ok := secondsHeader(header, headerRetryAfter); ok {
		e.RetryAfter = secs
		e.RateLimitReset = now.Add(secs)
	}
	return e
}

// headerRetryAfter reads Retry-After, falling back to def.
func (c *Classifier) headerRetryAfter(header http.Header, def time.Duration) time.Duration {
	if secs, ok := secondsHeader(header, headerRetryAfter); ok {
		return secs
	}
	return def
}

// FromTransportError classifies a failure raised by the transport before
// any HTTP status was produced.
func (c *Classifier) FromTransportError(err error) *Error {
	msg := strings.ToLower(err.Error())

	var netErr net.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "timed out") ||
		strings.Contains(msg, "deadline exceeded")

	if timedOut {
		return &Error{
			Code:       CodeTimeout,
			Message:    "the request timed out",
			Details:    Redact([]byte(err.Error())),
			Retryable:  true,
			RetryAfter: defaultTransportRetryAfter,
		}
	}

	connective := strings.Contains(msg, "connection") ||
		strings.Contains(msg, "refused") ||
		strings.Contains(msg, "reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "dns") ||
		strings.Contains(msg, "tls") ||
		strings.Contains(msg, "ssl") ||
		strings.Contains(msg, "certificate") ||
		strings.Contains(msg, "eof")

	message := "a network error occurred while contacting the API"
	if connective {
		message = "could not connect to the API"
	}
	return &Error{
		Code:      CodeNetwork,
		Message:   message,
		Details:   Redact([]byte(err.Error())),
		Retryable: true,
	}
}

// FromMalformedBody classifies a response body that could not be parsed.
// Parse failures are surfaced, never silently replaced with defaults
// that could mask a real error.
func (c *Classifier) FromMalformedBody(err error) *Error {
	return &Error{
		Code:    CodeBadResponse,
		Message: "the API returned a malformed response",
		Details: Redact([]byte(err.Error())),
	}
}

func unixHeader(header http.Header, name string) (time.Time, bool) {
	raw := header.Get(name)
	if raw == "" {
		return time.Time{}, false
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(ts, 0).UTC(), true
}

func secondsHeader(header http.Header, name string) (time.Duration, bool) {
	raw := header.Get(name)
	if raw == "" {
		return 0, false
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || secs < 0 {
		return 0, false
	}
	return time.Duration(secs) * time.Second, true
}
