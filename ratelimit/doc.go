// Package ratelimit provides admission control for calls to a shared
// remote API: a global token bucket, lazily created per-identity token
// buckets, and per-identity circuit breakers, coordinated by a Limiter.
//
// The Limiter answers two questions: "may this identity's request be
// attempted right now" (CanProceed, an immediate accept/reject that
// consumes budget from both levels) and "when is that likely to change"
// (WaitTime, a non-consuming advisory query). Outcomes are fed back via
// RecordSuccess and RecordFailure, which drive only the circuit
// breakers; bucket levels change only through acquisition.
//
// # Usage
//
//	limiter := ratelimit.NewLimiter(ratelimit.Config{
//	    Global:      ratelimit.BucketConfig{Capacity: 100, RefillRate: 100.0 / 60.0},
//	    PerIdentity: ratelimit.BucketConfig{Capacity: 30, RefillRate: 30.0 / 60.0},
//	})
//
//	if !limiter.CanProceed(identity) {
//	    retryIn := limiter.WaitTime(identity)
//	    // reject locally, advise the caller to retry after retryIn
//	}
//
// Every bucket and breaker is guarded by its own mutex; nothing blocks
// across identities and no lock is ever held across a network call.
package ratelimit
