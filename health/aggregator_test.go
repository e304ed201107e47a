package health

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

func staticChecker(name string, result Result) Checker {
	return NewCheckerFunc(name, func(ctx context.Context) Result {
		return result
	})
}

func TestAggregator_RegisterAndNames(t *testing.T) {
	agg := NewAggregator()
	agg.Register("limiter", staticChecker("limiter", Healthy("ok")))
	agg.Register("upstream", staticChecker("upstream", Healthy("ok")))
	agg.Register("limiter", staticChecker("limiter", Degraded("replaced")))

	want := []string{"limiter", "upstream"}
	if got := agg.CheckerNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("CheckerNames() = %v, want %v", got, want)
	}
}

func TestAggregator_CheckUnknown(t *testing.T) {
	agg := NewAggregator()
	if _, err := agg.Check(context.Background(), "missing"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check() error = %v, want ErrCheckerNotFound", err)
	}
}

func TestAggregator_CheckAll(t *testing.T) {
	agg := NewAggregator()
	agg.Register("a", staticChecker("a", Healthy("fine")))
	agg.Register("b", staticChecker("b", Degraded("shaky")))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results["a"].Status != StatusHealthy || results["b"].Status != StatusDegraded {
		t.Errorf("results = %+v", results)
	}
	if results["a"].Duration < 0 {
		t.Errorf("Duration = %v", results["a"].Duration)
	}
}

func TestAggregator_OverallStatus(t *testing.T) {
	agg := NewAggregator()

	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{"empty", map[string]Result{}, StatusHealthy},
		{"all healthy", map[string]Result{"a": {Status: StatusHealthy}}, StatusHealthy},
		{"one degraded", map[string]Result{"a": {Status: StatusHealthy}, "b": {Status: StatusDegraded}}, StatusDegraded},
		{"unhealthy wins", map[string]Result{"a": {Status: StatusDegraded}, "b": {Status: StatusUnhealthy}}, StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agg.OverallStatus(tt.results); got != tt.want {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregator_CheckTimeout(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 20 * time.Millisecond})
	agg.Register("slow", NewCheckerFunc("slow", func(ctx context.Context) Result {
		select {
		case <-time.After(time.Second):
			return Healthy("too late")
		case <-ctx.Done():
			return Unhealthy("canceled", ctx.Err())
		}
	}))

	results := agg.CheckAll(context.Background())
	if results["slow"].Status != StatusUnhealthy {
		t.Errorf("slow check status = %v, want unhealthy", results["slow"].Status)
	}
}
