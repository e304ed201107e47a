// Package apierror defines the closed error taxonomy for remote API
// calls and the classifier that maps HTTP responses, transport failures,
// and parse failures onto it.
//
// Every failure a caller can observe is one *Error value with a
// machine-readable Code, a displayable Message, and redacted Details.
// Classification is deterministic and never leaks credentials: the
// Authorization header, bearer tokens, and anything credential-shaped
// are scrubbed before they can reach Message or Details.
package apierror
