// Package observe provides the telemetry surface for the API resilience
// layer: a structured JSON Logger with credential redaction, OTel-backed
// metrics for client and limiter activity, and an Observer that wires
// tracer, meter, and logger from a single Config.
//
// Telemetry is strictly best-effort. Nothing in this package may panic,
// block a request path, or emit a credential: field keys like
// "authorization" and "token" are redacted unconditionally.
package observe
