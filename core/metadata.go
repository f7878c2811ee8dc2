package core

import (
	"net/http"
	"strconv"
	"time"
)

// RequestMetadata holds the observability headers the API attaches to a
// response, plus the measured round-trip time. All fields are best-effort:
// a missing or malformed header leaves its field zero.
type RequestMetadata struct {
	// ResponseTime is the measured round-trip duration of the final attempt.
	ResponseTime time.Duration
	// Provider is the downstream provider that served the request.
	Provider string
	// TokensUsed is the token count reported by the API.
	TokensUsed int
	// CreditsUsed is the credit cost of the request.
	CreditsUsed float64
	// CreditsRemaining is the balance after the request.
	CreditsRemaining float64
	// RequestID is the unique ID of the request for traceability.
	RequestID string
}

// metadataFromHeaders extracts RequestMetadata from response headers.
func metadataFromHeaders(h http.Header, elapsed time.Duration) *RequestMetadata {
	md := &RequestMetadata{
		ResponseTime: elapsed,
		Provider:     h.Get("x-provider"),
		RequestID:    h.Get("x-request-id"),
	}
	if v := h.Get("x-tokens-used"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			md.TokensUsed = n
		}
	}
	if v := h.Get("x-credits-used"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			md.CreditsUsed = f
		}
	}
	if v := h.Get("x-credits-remaining"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			md.CreditsRemaining = f
		}
	}
	return md
}
