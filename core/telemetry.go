package core

import "time"

// TelemetryHook receives notifications about request lifecycle events.
// Implementations can use this for logging, metrics, or tracing.
//
// Event types are designed to never include sensitive data: API keys are
// stored separately as core.Secret and never surfaced, and neither prompt
// content nor response content appears in any event. Only operational
// metadata (method, path, timing, status, attempt count) is exposed, so
// telemetry output can be logged or shipped to monitoring systems safely.
type TelemetryHook interface {
	// OnRequestStart is called when a request begins, before rate-limiter
	// admission.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called once per request after all retry attempts have
	// concluded.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent describes a request that is about to be issued.
type RequestStartEvent struct {
	Method string    // HTTP method
	Path   string    // endpoint path, e.g. "/chat/completions"
	Start  time.Time // when the request started
}

// RequestEndEvent describes a completed request, successful or not.
type RequestEndEvent struct {
	Method    string    // HTTP method
	Path      string    // endpoint path
	Status    int       // final HTTP status, zero if no response was received
	RequestID string    // x-request-id of the final attempt, if any
	Attempts  int       // number of transport attempts made
	Start     time.Time // when the request started
	End       time.Time // when the request concluded
	Err       error     // final error, nil on success
}

// Duration returns the elapsed wall-clock time for the request including
// retries and backoff.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is the default TelemetryHook that does nothing.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// Compile-time check that NoopTelemetryHook implements TelemetryHook.
var _ TelemetryHook = NoopTelemetryHook{}
