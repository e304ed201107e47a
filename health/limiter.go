package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/apiguard/ratelimit"
)

// LimiterCheckerConfig configures a LimiterChecker.
type LimiterCheckerConfig struct {
	// Limiter is the limiter to inspect. Required.
	Limiter *ratelimit.Limiter

	// GlobalLowWater is the fraction of global capacity below which the
	// check reports degraded.
	// Default: 0.10
	GlobalLowWater float64
}

// LimiterChecker reports the condition of a dual-level limiter: degraded
// when the shared budget is nearly exhausted or any identity's circuit
// is open, healthy otherwise. It never mutates limiter state beyond the
// refill that reading token counts implies.
type LimiterChecker struct {
	config LimiterCheckerConfig
}

// NewLimiterChecker creates a limiter checker.
func NewLimiterChecker(config LimiterCheckerConfig) (*LimiterChecker, error) {
	if config.Limiter == nil {
		return nil, ErrNoLimiter
	}
	if config.GlobalLowWater <= 0 || config.GlobalLowWater >= 1 {
		config.GlobalLowWater = 0.10
	}
	return &LimiterChecker{config: config}, nil
}

// Name returns the name of this checker.
func (c *LimiterChecker) Name() string {
	return "limiter"
}

// Check inspects the limiter's shared budget and every tracked
// identity's circuit.
func (c *LimiterChecker) Check(ctx context.Context) Result {
	limiter := c.config.Limiter

	identities := limiter.Identities()
	var open []string
	for _, identity := range identities {
		if limiter.IsCircuitOpen(identity) {
			open = append(open, identity)
		}
	}

	tokens, capacity := limiter.GlobalStatus()
	details := map[string]any{
		"global_tokens":   tokens,
		"global_capacity": capacity,
		"open_circuits":   len(open),
		"identities":      len(identities),
	}

	if len(open) > 0 {
		return Degraded(fmt.Sprintf("%d circuit(s) open", len(open))).WithDetails(details)
	}

	if tokens < float64(capacity)*c.config.GlobalLowWater {
		return Degraded("global rate budget nearly exhausted").WithDetails(details)
	}

	return Healthy("rate budget available, all circuits closed").WithDetails(details)
}
