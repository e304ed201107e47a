package apierror_test

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jonwraymond/apiguard/apierror"
)

func ExampleClassifier_FromResponse() {
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	classifier := apierror.NewClassifier(apierror.ClassifierConfig{
		Now: func() time.Time { return fixed },
	})

	header := http.Header{}
	header.Set("X-Ratelimit-Remaining", "0")
	header.Set("X-Ratelimit-Reset", "1748779260") // 60s past fixed

	err := classifier.FromResponse(http.StatusForbidden, header, nil)
	fmt.Println(err.Code)
	fmt.Println(err.RetryAfter)
	fmt.Println(err.ResetUTC())
	// Output:
	// RATE_LIMITED
	// 1m0s
	// 2025-06-01T12:01:00Z
}

func ExampleIsCode() {
	var err error = &apierror.Error{
		Code:    apierror.CodeUnauthorized,
		Status:  401,
		Message: "authentication failed: credentials were rejected, re-authenticate and try again",
	}
	err = fmt.Errorf("listing repositories: %w", err)

	fmt.Println(apierror.IsCode(err, apierror.CodeUnauthorized))
	fmt.Println(apierror.IsRetryable(err))

	apiErr, ok := apierror.As(err)
	fmt.Println(ok, apiErr.Status)
	// Output:
	// true
	// false
	// true 401
}
