package core

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Kind sentinels. Every *APIError wraps exactly one of these; use errors.Is
// to branch on the failure kind.
var (
	// ErrAuthentication indicates an invalid, expired, or insufficiently
	// privileged API key.
	ErrAuthentication = errors.New("authentication failed")

	// ErrInvalidRequest indicates the request was malformed or rejected by
	// validation before or after reaching the API.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProvider indicates a failure attributed to a downstream model
	// provider behind the Rainy router.
	ErrProvider = errors.New("provider error")

	// ErrRateLimited indicates the API's rate limit was exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInsufficientCredits indicates the account's credit balance does not
	// cover the request.
	ErrInsufficientCredits = errors.New("insufficient credits")

	// ErrNetwork indicates a connect, DNS, TLS, or other transport failure.
	ErrNetwork = errors.New("network error")

	// ErrTimeout indicates the per-call deadline elapsed.
	ErrTimeout = errors.New("request timed out")

	// ErrDecode indicates a response body that did not match the expected
	// JSON shape.
	ErrDecode = errors.New("decode error")

	// ErrAPI is the catch-all for API-level failures with no dedicated kind.
	ErrAPI = errors.New("api error")
)

// APIError is the structured error produced for every failed request.
// It is constructed once at the point of failure and immutable afterwards.
//
// Kind-specific fields are zero unless noted by the wrapped sentinel:
// RetryAfter is set for ErrRateLimited when the API reported it;
// CurrentCredits/RequiredCredits/ResetDate for ErrInsufficientCredits;
// Provider for ErrProvider.
type APIError struct {
	// Status is the HTTP status code, zero for transport-level failures.
	Status int
	// Code is the API's machine-readable error code, when known.
	Code string
	// Message is a human-readable description.
	Message string
	// RequestID is the x-request-id of the failed request, when present.
	RequestID string
	// Provider names the downstream provider for ErrProvider failures.
	// "unknown" when the API did not attribute the failure.
	Provider string
	// Retryable reports whether the same request may succeed if retried
	// unchanged.
	Retryable bool
	// RetryAfter is the server-suggested wait before retrying, zero if the
	// API did not report one.
	RetryAfter time.Duration
	// CurrentCredits and RequiredCredits describe the balance shortfall for
	// ErrInsufficientCredits failures.
	CurrentCredits  float64
	RequiredCredits float64
	// ResetDate is the next credit reset date, empty if unknown.
	ResetDate string

	// Err is the kind sentinel this error wraps.
	Err error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	switch {
	case e.RequestID != "" && e.Status != 0:
		return fmt.Sprintf("rainy: %s (status=%d, code=%s, request_id=%s)",
			e.Message, e.Status, e.Code, e.RequestID)
	case e.Status != 0:
		return fmt.Sprintf("rainy: %s (status=%d, code=%s)", e.Message, e.Status, e.Code)
	case e.Code != "":
		return fmt.Sprintf("rainy: %s (code=%s)", e.Message, e.Code)
	default:
		return "rainy: " + e.Message
	}
}

// Unwrap returns the kind sentinel for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err carries a retryable *APIError.
// Context cancellation and unknown error types are never retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Retryable
	}
	return false
}
