package client

import (
	"context"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/jonwraymond/apiguard/apierror"
	"github.com/jonwraymond/apiguard/observe"
	"github.com/jonwraymond/apiguard/ratelimit"
)

// Config configures the client.
type Config struct {
	// Transport performs individual HTTP exchanges. Required.
	Transport Transport

	// Limiter gates every attempt. Default: ratelimit.NewLimiter with
	// default budgets; when Metrics is set the default limiter also
	// reports circuit opens. A caller-supplied limiter wires its own
	// OnCircuitChange.
	Limiter *ratelimit.Limiter

	// MaxRetries is the total number of attempts for retryable failures.
	// Default: 3
	MaxRetries int

	// Backoff is the sleep schedule between retryable attempts, indexed
	// by attempt number. The last entry repeats if attempts outnumber
	// entries.
	// Default: 500ms, 1s, 2s
	Backoff []time.Duration

	// Logger receives per-attempt debug lines. Default: no logging.
	Logger observe.Logger

	// Metrics records request outcomes. Optional.
	Metrics *observe.ClientMetrics

	// Now supplies the classifier clock. Default: time.Now
	Now func() time.Time
}

// Client executes logical requests against the remote API: admission
// control before every attempt, classification of every outcome,
// circuit-breaker feedback, and bounded retry of transient failures.
// Callers see either a successful Response or exactly one
// *apierror.Error.
type Client struct {
	config     Config
	classifier *apierror.Classifier
}

// New creates a client.
func New(config Config) (*Client, error) {
	if config.Transport == nil {
		return nil, ErrNoTransport
	}
	// Apply defaults
	if config.Limiter == nil {
		var limiterCfg ratelimit.Config
		if config.Metrics != nil {
			metrics := config.Metrics
			limiterCfg.OnCircuitChange = func(identity string, from, to ratelimit.State) {
				if to == ratelimit.StateOpen {
					metrics.RecordCircuitOpen(context.Background())
				}
			}
		}
		config.Limiter = ratelimit.NewLimiter(limiterCfg)
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if len(config.Backoff) == 0 {
		config.Backoff = []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}
	}
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}

	return &Client{
		config:     config,
		classifier: apierror.NewClassifier(apierror.ClassifierConfig{Now: config.Now}),
	}, nil
}

// Limiter returns the limiter gating this client, for diagnostics.
func (c *Client) Limiter() *ratelimit.Limiter {
	return c.config.Limiter
}

// Do executes one logical request for identity. Transient failures
// (5xx, timeouts, connection errors) are retried with fixed backoff up
// to MaxRetries total attempts; everything else surfaces immediately.
//
// Cancellation is cooperative: ctx is checked before each attempt and
// during backoff sleeps, never mid-exchange.
func (c *Client) Do(ctx context.Context, identity string, req *Request) (*Response, error) {
	logger := c.config.Logger
	requestID := uuid.NewString()
	start := time.Now()

	for attempt := 0; attempt < c.config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !c.config.Limiter.CanProceed(identity) {
			wait := c.config.Limiter.WaitTime(identity)
			if c.config.Metrics != nil {
				c.config.Metrics.RecordDenial(ctx, req.Method)
			}
			logger.Debug(ctx, "request denied by local admission control",
				observe.Field{Key: "request_id", Value: requestID},
				observe.Field{Key: "method", Value: req.Method},
				observe.Field{Key: "url", Value: safeURL(req.URL)},
				observe.Field{Key: "retry_after", Value: wait.String()},
			)
			// Admission denials never reach the network and never count
			// as an attempt against the remote service.
			return nil, &apierror.Error{
				Code:       apierror.CodeRateLimited,
				Message:    "request rate limit reached, try again later",
				RetryAfter: wait,
			}
		}

		resp, sendErr := c.config.Transport.Send(ctx, req)
		if sendErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			apiErr := c.classifier.FromTransportError(sendErr)
			c.config.Limiter.RecordFailure(identity)
			logger.Debug(ctx, "transport failure",
				observe.Field{Key: "request_id", Value: requestID},
				observe.Field{Key: "method", Value: req.Method},
				observe.Field{Key: "url", Value: safeURL(req.URL)},
				observe.Field{Key: "code", Value: string(apiErr.Code)},
				observe.Field{Key: "attempt", Value: attempt},
			)
			if apiErr.Retryable && attempt < c.config.MaxRetries-1 {
				if err := c.backoff(ctx, attempt); err != nil {
					return nil, err
				}
				continue
			}
			c.record(ctx, req.Method, 0, start, apiErr)
			return nil, apiErr
		}

		logger.Debug(ctx, "api response",
			observe.Field{Key: "request_id", Value: requestID},
			observe.Field{Key: "method", Value: req.Method},
			observe.Field{Key: "url", Value: safeURL(req.URL)},
			observe.Field{Key: "status", Value: resp.Status},
			observe.Field{Key: "attempt", Value: attempt},
		)

		if resp.Status >= 200 && resp.Status < 300 {
			c.config.Limiter.RecordSuccess(identity)
			c.record(ctx, req.Method, resp.Status, start, nil)
			return resp, nil
		}

		apiErr := c.classifier.FromResponse(resp.Status, resp.Header, resp.Body)
		if !apiErr.Retryable {
			c.record(ctx, req.Method, resp.Status, start, apiErr)
			return nil, apiErr
		}

		c.config.Limiter.RecordFailure(identity)
		if attempt < c.config.MaxRetries-1 {
			if err := c.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		c.record(ctx, req.Method, resp.Status, start, apiErr)
		return nil, apiErr
	}

	// Unreachable: every loop path returns or continues.
	return nil, &apierror.Error{
		Code:    apierror.CodeUnknown,
		Message: "request ended without a classified outcome",
	}
}

// DoJSON executes the request and decodes a successful response body
// into v. An unparseable body surfaces as BAD_RESPONSE, never as a
// silently zeroed value.
func (c *Client) DoJSON(ctx context.Context, identity string, req *Request, v any) (*Response, error) {
	resp, err := c.Do(ctx, identity, req)
	if err != nil {
		return nil, err
	}
	if v == nil || len(resp.Body) == 0 {
		return resp, nil
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return nil, c.classifier.FromMalformedBody(err)
	}
	return resp, nil
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	if c.config.Metrics != nil {
		c.config.Metrics.RecordRetry(ctx)
	}

	idx := attempt
	if idx >= len(c.config.Backoff) {
		idx = len(c.config.Backoff) - 1
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.config.Backoff[idx]):
		return nil
	}
}

func (c *Client) record(ctx context.Context, method string, status int, start time.Time, apiErr *apierror.Error) {
	if c.config.Metrics == nil {
		return
	}
	c.config.Metrics.RecordRequest(ctx, method, status, time.Since(start), apiErr)
}

// safeURL strips query and user info so logs never carry secrets
// embedded in URLs.
func safeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable)"
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String()
}
