package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonwraymond/apiguard/ratelimit"
)

func TestNewLimiterChecker_RequiresLimiter(t *testing.T) {
	_, err := NewLimiterChecker(LimiterCheckerConfig{})
	if !errors.Is(err, ErrNoLimiter) {
		t.Errorf("NewLimiterChecker() error = %v, want ErrNoLimiter", err)
	}
}

func TestLimiterChecker_Healthy(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{})
	checker, err := NewLimiterChecker(LimiterCheckerConfig{Limiter: limiter})
	if err != nil {
		t.Fatalf("NewLimiterChecker() error = %v", err)
	}

	result := checker.Check(context.Background())
	if result.Status != StatusHealthy {
		t.Errorf("Status = %v (%s), want healthy", result.Status, result.Message)
	}
	if result.Details["global_capacity"] != 100 {
		t.Errorf("global_capacity = %v, want 100", result.Details["global_capacity"])
	}
}

func TestLimiterChecker_DegradedOnExhaustedBudget(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Global:      ratelimit.BucketConfig{Capacity: 2, RefillRate: 0.001},
		PerIdentity: ratelimit.BucketConfig{Capacity: 10, RefillRate: 0.001},
	})
	for i := 0; i < 2; i++ {
		if !limiter.CanProceed("alice") {
			t.Fatalf("admission %d unexpectedly denied", i)
		}
	}

	checker, _ := NewLimiterChecker(LimiterCheckerConfig{Limiter: limiter})
	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("Status = %v (%s), want degraded", result.Status, result.Message)
	}
}

func TestLimiterChecker_DegradedOnOpenCircuit(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{
		Breaker: ratelimit.CircuitBreakerConfig{
			FailureThreshold: 1,
			Cooldown:         time.Minute,
		},
	})
	limiter.RecordFailure("bob")

	checker, _ := NewLimiterChecker(LimiterCheckerConfig{Limiter: limiter})
	result := checker.Check(context.Background())
	if result.Status != StatusDegraded {
		t.Errorf("Status = %v (%s), want degraded", result.Status, result.Message)
	}
	if result.Details["open_circuits"] != 1 {
		t.Errorf("open_circuits = %v, want 1", result.Details["open_circuits"])
	}
}

func TestLimiterChecker_Name(t *testing.T) {
	limiter := ratelimit.NewLimiter(ratelimit.Config{})
	checker, _ := NewLimiterChecker(LimiterCheckerConfig{Limiter: limiter})
	if got := checker.Name(); got != "limiter" {
		t.Errorf("Name() = %q, want limiter", got)
	}
}
