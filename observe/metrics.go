package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jonwraymond/apiguard/apierror"
)

// ClientMetrics records API client outcomes: request totals and
// durations, classified errors, retries, local admission denials, and
// circuit transitions.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording must not panic; attributes never include
//   identities derived from raw credentials.
type ClientMetrics struct {
	requests     metric.Int64Counter
	errorsTotal  metric.Int64Counter
	retries      metric.Int64Counter
	denials      metric.Int64Counter
	circuitOpens metric.Int64Counter
	durationHist metric.Float64Histogram
}

// NewClientMetrics creates client metrics on the given meter.
func NewClientMetrics(meter metric.Meter) (*ClientMetrics, error) {
	requests, err := meter.Int64Counter(
		"api.client.requests",
		metric.WithDescription("Total number of logical API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	errorsTotal, err := meter.Int64Counter(
		"api.client.errors",
		metric.WithDescription("Total number of failed API requests by error code"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	retries, err := meter.Int64Counter(
		"api.client.retries",
		metric.WithDescription("Total number of retry attempts"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	denials, err := meter.Int64Counter(
		"api.client.admission_denials",
		metric.WithDescription("Requests rejected by local rate limiting before any network call"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	circuitOpens, err := meter.Int64Counter(
		"api.client.circuit_opens",
		metric.WithDescription("Circuit breaker transitions into the open state"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"api.client.duration_ms",
		metric.WithDescription("Logical request duration in milliseconds, retries included"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &ClientMetrics{
		requests:     requests,
		errorsTotal:  errorsTotal,
		retries:      retries,
		denials:      denials,
		circuitOpens: circuitOpens,
		durationHist: durationHist,
	}, nil
}

// RecordRequest records the outcome of one logical request.
func (m *ClientMetrics) RecordRequest(ctx context.Context, method string, status int, duration time.Duration, apiErr *apierror.Error) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status", status))
	}
	opt := metric.WithAttributes(attrs...)

	m.requests.Add(ctx, 1, opt)
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)

	if apiErr != nil {
		m.errorsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("error.code", string(apiErr.Code)),
		))
	}
}

// RecordRetry records one backoff-then-retry cycle.
func (m *ClientMetrics) RecordRetry(ctx context.Context) {
	m.retries.Add(ctx, 1)
}

// RecordDenial records a request rejected by local admission control.
func (m *ClientMetrics) RecordDenial(ctx context.Context, method string) {
	m.denials.Add(ctx, 1, metric.WithAttributes(
		attribute.String("http.method", method),
	))
}

// RecordCircuitOpen records a circuit transitioning into the open state.
func (m *ClientMetrics) RecordCircuitOpen(ctx context.Context) {
	m.circuitOpens.Add(ctx, 1)
}
