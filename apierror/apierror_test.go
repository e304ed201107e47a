package apierror

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestError_Error(t *testing.T) {
	withStatus := &Error{Code: CodeRateLimited, Status: 403, Message: "API rate limit exhausted"}
	if got := withStatus.Error(); got != "apierror: RATE_LIMITED: API rate limit exhausted (status=403)" {
		t.Errorf("Error() = %q", got)
	}

	transport := &Error{Code: CodeTimeout, Message: "the request timed out"}
	if got := transport.Error(); got != "apierror: TIMEOUT: the request timed out" {
		t.Errorf("Error() = %q", got)
	}
}

func TestError_ResetUTC(t *testing.T) {
	e := &Error{}
	if got := e.ResetUTC(); got != "" {
		t.Errorf("ResetUTC() on zero time = %q, want \"\"", got)
	}

	e = &Error{RateLimitReset: time.Date(2025, 6, 1, 12, 1, 0, 0, time.UTC)}
	if got := e.ResetUTC(); got != "2025-06-01T12:01:00Z" {
		t.Errorf("ResetUTC() = %q, want 2025-06-01T12:01:00Z", got)
	}
}

func TestAs_ThroughWrapping(t *testing.T) {
	inner := &Error{Code: CodeNetwork, Retryable: true}
	wrapped := fmt.Errorf("list repositories: %w", inner)

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("As() = false, want true")
	}
	if got != inner {
		t.Error("As() did not return the wrapped *Error")
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("As(plain error) = true, want false")
	}
}

func TestIsCodeAndIsRetryable(t *testing.T) {
	err := error(&Error{Code: CodeUnauthorized})

	if !IsCode(err, CodeUnauthorized) {
		t.Error("IsCode(UNAUTHORIZED) = false, want true")
	}
	if IsCode(err, CodeNetwork) {
		t.Error("IsCode(NETWORK) = true, want false")
	}
	if IsRetryable(err) {
		t.Error("IsRetryable(UNAUTHORIZED) = true, want false")
	}
	if !IsRetryable(&Error{Code: CodeNetwork, Retryable: true}) {
		t.Error("IsRetryable(retryable NETWORK) = false, want true")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("IsRetryable(plain error) = true, want false")
	}
}

func TestRedact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", `{"message":"not found"}`, `{"message":"not found"}`},
		{"bearer", "failed with Bearer abc.def.ghi here", "failed with Bearer [REDACTED] here"},
		{"token", "bad token ghp_12345", "bad token [REDACTED]"},
		{"authorization", "Authorization: xoxb-999 rejected", "Authorization: [REDACTED] rejected"},
		{"control chars", "line1\r\nline2", "line1  line2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Redact([]byte(tt.in)); got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRedact_Truncates(t *testing.T) {
	long := strings.Repeat("x", 1000)
	got := Redact([]byte(long))

	if len(got) != maxDetailLen+3 {
		t.Errorf("len(Redact(long)) = %d, want %d", len(got), maxDetailLen+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated output does not end with ellipsis")
	}
}
