package ratelimit

import (
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means requests flow normally.
	StateClosed State = iota
	// StateOpen means requests are rejected until the cooldown elapses.
	StateOpen
	// StateHalfOpen means a limited probe of the remote service is underway.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit.
	// Default: 5
	FailureThreshold int

	// Cooldown is how long the circuit stays open before admitting probes.
	// Default: 30 seconds
	Cooldown time.Duration

	// SuccessThreshold is the number of consecutive half-open successes
	// required to close the circuit.
	// Default: 2
	SuccessThreshold int

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)
}

// CircuitBreaker tracks failure and recovery per remote identity.
//
// The failure count is meaningful only while closed; the success count
// only while half-open. The open-to-half-open transition happens lazily
// inside CanAttempt, never on a timer.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.Cooldown <= 0 {
		config.Cooldown = 30 * time.Second
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = 2
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// CanAttempt reports whether a request should be attempted right now.
// When the circuit is open and the cooldown has not elapsed, it returns
// false along with the remaining cooldown. The first check at or after
// the cooldown moves the circuit to half-open and admits the request.
func (cb *CircuitBreaker) CanAttempt() (bool, time.Duration) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		remaining := cb.config.Cooldown - time.Since(cb.openedAt)
		if remaining > 0 {
			return false, remaining
		}
		cb.transitionLocked(StateHalfOpen)
		return true, 0
	default:
		return true, 0
	}
}

// RecordSuccess feeds a successful attempt back into the breaker.
// Any success while closed clears accumulated failures.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.SuccessThreshold {
			cb.transitionLocked(StateClosed)
		}
	}
}

// RecordFailure feeds a failed attempt back into the breaker. The first
// failure observed while half-open reopens the circuit immediately and
// restarts the cooldown.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.FailureThreshold {
			cb.openedAt = time.Now()
			cb.transitionLocked(StateOpen)
		}
	case StateHalfOpen:
		cb.openedAt = time.Now()
		cb.transitionLocked(StateOpen)
	}
}

// RetryAfter returns the remaining cooldown if the circuit is open, else
// zero. It never mutates state, so it is safe for diagnostic reads.
func (cb *CircuitBreaker) RetryAfter() time.Duration {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != StateOpen {
		return 0
	}
	remaining := cb.config.Cooldown - time.Since(cb.openedAt)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Snapshot returns the current breaker state for diagnostics without
// persisting the lazy open-to-half-open transition.
func (cb *CircuitBreaker) Snapshot() CircuitSnapshot {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state := cb.state
	if state == StateOpen && time.Since(cb.openedAt) >= cb.config.Cooldown {
		state = StateHalfOpen
	}
	return CircuitSnapshot{
		State:     state,
		Failures:  cb.failures,
		Successes: cb.successes,
		OpenedAt:  cb.openedAt,
	}
}

// Reset returns the breaker to the closed state with cleared counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures = 0
	cb.successes = 0
	if cb.state != StateClosed {
		cb.transitionLocked(StateClosed)
	}
}

func (cb *CircuitBreaker) transitionLocked(to State) {
	from := cb.state
	cb.state = to

	switch to {
	case StateClosed:
		cb.failures = 0
		cb.successes = 0
	case StateHalfOpen:
		cb.successes = 0
	case StateOpen:
		cb.successes = 0
	}

	if from != to && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(from, to)
	}
}

// CircuitSnapshot contains circuit breaker statistics.
type CircuitSnapshot struct {
	State     State
	Failures  int
	Successes int
	OpenedAt  time.Time
}
