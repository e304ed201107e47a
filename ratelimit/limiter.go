package ratelimit

import (
	"sync"
	"time"
)

// Config configures the dual-level limiter.
type Config struct {
	// Global configures the bucket shared by all identities.
	// Default: 100 tokens refilling at 100/60 per second.
	Global BucketConfig

	// PerIdentity configures the bucket created for each identity.
	// Default: 30 tokens refilling at 30/60 per second.
	PerIdentity BucketConfig

	// Breaker configures the circuit breaker created for each identity.
	Breaker CircuitBreakerConfig

	// OnCircuitChange is called with the identity whenever one of the
	// per-identity circuits changes state.
	OnCircuitChange func(identity string, from, to State)
}

// Limiter coordinates a global token bucket with per-identity buckets
// and per-identity circuit breakers. Callers hold only the identity
// string; all buckets and breakers are owned by the Limiter and created
// lazily on first use.
//
// Per-identity state is never evicted. A long-running embedder that sees
// unbounded distinct identities should build its own eviction policy on
// top of Identities and Reset.
type Limiter struct {
	config Config
	global *TokenBucket

	mu       sync.RWMutex
	buckets  map[string]*TokenBucket
	breakers map[string]*CircuitBreaker
}

// NewLimiter creates a limiter with full buckets and closed circuits.
func NewLimiter(config Config) *Limiter {
	// Apply defaults
	if config.Global.Capacity <= 0 {
		config.Global.Capacity = 100
	}
	if config.Global.RefillRate <= 0 {
		config.Global.RefillRate = 100.0 / 60.0
	}
	if config.PerIdentity.Capacity <= 0 {
		config.PerIdentity.Capacity = 30
	}
	if config.PerIdentity.RefillRate <= 0 {
		config.PerIdentity.RefillRate = 30.0 / 60.0
	}

	return &Limiter{
		config:   config,
		global:   NewTokenBucket(config.Global),
		buckets:  make(map[string]*TokenBucket),
		breakers: make(map[string]*CircuitBreaker),
	}
}

// CanProceed reports whether one request for identity may be attempted
// now, consuming one token from both levels if so.
func (l *Limiter) CanProceed(identity string) bool {
	return l.CanProceedN(identity, 1)
}

// CanProceedN is the n-token form of CanProceed. The decision is
// immediate; it never blocks.
//
// Order matters: the circuit is consulted first so an open circuit does
// not drain either bucket, and a per-identity rejection refunds the
// global acquisition so the shared budget is not shrunk by identities
// that are out of quota.
func (l *Limiter) CanProceedN(identity string, n int) bool {
	if ok, _ := l.breaker(identity).CanAttempt(); !ok {
		return false
	}

	if !l.global.AllowN(n) {
		return false
	}

	if !l.bucket(identity).AllowN(n) {
		l.global.Refund(n)
		return false
	}

	return true
}

// WaitTime returns an advisory duration after which a single-token
// CanProceed for identity is expected to succeed: the maximum of the
// circuit cooldown remainder and both bucket waits. It consumes nothing.
func (l *Limiter) WaitTime(identity string) time.Duration {
	wait := l.breaker(identity).RetryAfter()

	if w := l.global.WaitTime(1); w > wait {
		wait = w
	}
	if w := l.bucket(identity).WaitTime(1); w > wait {
		wait = w
	}
	return wait
}

// RecordSuccess feeds a successful attempt into the identity's circuit
// breaker. Buckets are never adjusted by feedback, only by acquisition.
func (l *Limiter) RecordSuccess(identity string) {
	l.breaker(identity).RecordSuccess()
}

// RecordFailure feeds a failed attempt into the identity's circuit breaker.
func (l *Limiter) RecordFailure(identity string) {
	l.breaker(identity).RecordFailure()
}

// IsCircuitOpen reports whether the identity's circuit is open with its
// cooldown still running. Purely diagnostic; no state is mutated.
func (l *Limiter) IsCircuitOpen(identity string) bool {
	return l.breaker(identity).RetryAfter() > 0
}

// Status is a diagnostic snapshot of one identity's limiter state.
type Status struct {
	Identity         string
	GlobalTokens     float64
	GlobalCapacity   int
	IdentityTokens   float64
	IdentityCapacity int
	Circuit          CircuitSnapshot
}

// Status returns a diagnostic snapshot for identity. Reading refills the
// buckets (which only ever adds tokens) but performs no other mutation.
func (l *Limiter) Status(identity string) Status {
	bucket := l.bucket(identity)
	return Status{
		Identity:         identity,
		GlobalTokens:     l.global.Tokens(),
		GlobalCapacity:   l.global.Capacity(),
		IdentityTokens:   bucket.Tokens(),
		IdentityCapacity: bucket.Capacity(),
		Circuit:          l.breaker(identity).Snapshot(),
	}
}

// GlobalStatus returns the shared bucket's current token count and
// capacity without touching any per-identity state.
func (l *Limiter) GlobalStatus() (tokens float64, capacity int) {
	return l.global.Tokens(), l.global.Capacity()
}

// Identities returns the identities with lazily created limiter state,
// in no particular order.
func (l *Limiter) Identities() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ids := make([]string, 0, len(l.breakers))
	for id := range l.breakers {
		ids = append(ids, id)
	}
	return ids
}

// Reset discards the identity's bucket and breaker. The next use
// recreates them full and closed.
func (l *Limiter) Reset(identity string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.buckets, identity)
	delete(l.breakers, identity)
}

func (l *Limiter) bucket(identity string) *TokenBucket {
	l.mu.RLock()
	b, ok := l.buckets[identity]
	l.mu.RUnlock()
	if ok {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b, ok := l.buckets[identity]; ok {
		return b
	}
	b = NewTokenBucket(l.config.PerIdentity)
	l.buckets[identity] = b
	return b
}

func (l *Limiter) breaker(identity string) *CircuitBreaker {
	l.mu.RLock()
	cb, ok := l.breakers[identity]
	l.mu.RUnlock()
	if ok {
		return cb
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cb, ok := l.breakers[identity]; ok {
		return cb
	}

	cfg := l.config.Breaker
	if l.config.OnCircuitChange != nil {
		id := identity
		notify := l.config.OnCircuitChange
		cfg.OnStateChange = func(from, to State) {
			notify(id, from, to)
		}
	}
	cb = NewCircuitBreaker(cfg)
	l.breakers[identity] = cb
	return cb
}
