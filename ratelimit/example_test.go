package ratelimit_test

import (
	"fmt"
	"time"

	"github.com/jonwraymond/apiguard/ratelimit"
)

func ExampleNewLimiter() {
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Global:      ratelimit.BucketConfig{Capacity: 2, RefillRate: 0.001},
		PerIdentity: ratelimit.BucketConfig{Capacity: 2, RefillRate: 0.001},
	})

	fmt.Println("first:", limiter.CanProceed("alice"))
	fmt.Println("second:", limiter.CanProceed("alice"))
	fmt.Println("third:", limiter.CanProceed("alice"))
	// Output:
	// first: true
	// second: true
	// third: false
}

func ExampleLimiter_RecordFailure() {
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Breaker: ratelimit.CircuitBreakerConfig{
			FailureThreshold: 5,
			Cooldown:         30 * time.Second,
		},
	})

	// Five consecutive failures open bob's circuit; further requests are
	// rejected locally without a network call.
	for i := 0; i < 5; i++ {
		limiter.RecordFailure("bob")
	}

	fmt.Println("bob admitted:", limiter.CanProceed("bob"))
	fmt.Println("bob circuit open:", limiter.IsCircuitOpen("bob"))
	fmt.Println("alice admitted:", limiter.CanProceed("alice"))
	// Output:
	// bob admitted: false
	// bob circuit open: true
	// alice admitted: true
}

func ExampleLimiter_Status() {
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Global:      ratelimit.BucketConfig{Capacity: 10, RefillRate: 0.001},
		PerIdentity: ratelimit.BucketConfig{Capacity: 5, RefillRate: 0.001},
	})

	limiter.CanProceed("alice")
	status := limiter.Status("alice")

	fmt.Printf("global %.0f/%d identity %.0f/%d circuit %s\n",
		status.GlobalTokens, status.GlobalCapacity,
		status.IdentityTokens, status.IdentityCapacity,
		status.Circuit.State)
	// Output:
	// global 9/10 identity 4/5 circuit closed
}
