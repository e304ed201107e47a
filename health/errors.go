package health

import "errors"

var (
	// ErrCheckTimeout indicates a health check timed out.
	ErrCheckTimeout = errors.New("health: check timeout")

	// ErrCheckerNotFound indicates a checker was not found.
	ErrCheckerNotFound = errors.New("health: checker not found")

	// ErrNoLimiter is returned when a LimiterChecker is created without
	// a limiter.
	ErrNoLimiter = errors.New("health: limiter is required")
)
