// Package health reports the condition of the resilience layer.
//
// A Checker is any component that can report its status: Healthy,
// Degraded, or Unhealthy. LimiterChecker inspects a ratelimit.Limiter
// and reports degraded when the shared rate budget is nearly exhausted
// or any identity's circuit breaker is open. Aggregator combines
// checkers into one composite check whose overall status is the worst
// of its parts.
//
//	checker, _ := health.NewLimiterChecker(health.LimiterCheckerConfig{
//	    Limiter: client.Limiter(),
//	})
//
//	agg := health.NewAggregator()
//	agg.Register("limiter", checker)
//	http.Handle("/health", health.DetailedHandler(agg))
package health
