package core

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"
)

// apiErrorEnvelope is the structured error document the API returns for
// non-2xx responses:
//
//	{"error":{"code":"...","message":"...","details":{...},"retryable":true,"request_id":"..."}}
type apiErrorEnvelope struct {
	Error struct {
		Code      string          `json:"code"`
		Message   string          `json:"message"`
		Details   apiErrorDetails `json:"details"`
		Retryable *bool           `json:"retryable"`
		RequestID string          `json:"request_id"`
		Timestamp string          `json:"timestamp"`
	} `json:"error"`
}

// apiErrorDetails carries the optional per-code payload of an error envelope.
type apiErrorDetails struct {
	RetryAfter      float64 `json:"retry_after"`
	CurrentCredits  float64 `json:"current_credits"`
	RequiredCredits float64 `json:"required_credits"`
	ResetDate       string  `json:"reset_date"`
	Provider        string  `json:"provider"`
}

// classifyTransport maps a failed transport call to an *APIError.
// Timeouts are retryable; connect and DNS failures are retryable; any other
// transport failure (including caller cancellation) is not.
func classifyTransport(err error) *APIError {
	if errors.Is(err, context.Canceled) {
		return &APIError{
			Message:   "request canceled",
			Retryable: false,
			Err:       ErrNetwork,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &APIError{
			Message:   "request timed out: " + err.Error(),
			Retryable: true,
			Err:       ErrTimeout,
		}
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &APIError{
			Message:   "request timed out: " + err.Error(),
			Retryable: true,
			Err:       ErrTimeout,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Message:   "dns lookup failed: " + dnsErr.Error(),
			Retryable: true,
			Err:       ErrNetwork,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &APIError{
			Message:   "connection failed: " + opErr.Error(),
			Retryable: true,
			Err:       ErrNetwork,
		}
	}

	return &APIError{
		Message:   err.Error(),
		Retryable: false,
		Err:       ErrNetwork,
	}
}

// classifyResponse maps a non-2xx HTTP response to an *APIError.
// The body is first interpreted as the structured error envelope and
// dispatched on its code; a body that does not parse falls back to
// status-based mapping. classifyResponse is a pure function of its inputs.
func classifyResponse(status int, body []byte, requestID string) *APIError {
	var env apiErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Code != "" {
		if env.Error.RequestID != "" {
			requestID = env.Error.RequestID
		}
		return classifyEnvelope(status, &env, requestID)
	}
	return classifyStatus(status, body, requestID)
}

// classifyEnvelope dispatches on the envelope's machine-readable code.
func classifyEnvelope(status int, env *apiErrorEnvelope, requestID string) *APIError {
	e := &env.Error
	base := APIError{
		Status:    status,
		Code:      e.Code,
		Message:   e.Message,
		RequestID: requestID,
	}

	switch e.Code {
	case "INVALID_API_KEY", "EXPIRED_API_KEY":
		base.Err = ErrAuthentication
		base.Retryable = false

	case "INSUFFICIENT_CREDITS":
		base.Err = ErrInsufficientCredits
		base.Retryable = false
		base.CurrentCredits = e.Details.CurrentCredits
		base.RequiredCredits = e.Details.RequiredCredits
		base.ResetDate = e.Details.ResetDate

	case "RATE_LIMIT_EXCEEDED":
		base.Err = ErrRateLimited
		base.Retryable = true
		if e.Details.RetryAfter > 0 {
			base.RetryAfter = time.Duration(e.Details.RetryAfter * float64(time.Second))
		}

	case "INVALID_REQUEST", "MISSING_REQUIRED_FIELD", "INVALID_MODEL":
		base.Err = ErrInvalidRequest
		base.Retryable = false

	case "PROVIDER_ERROR", "PROVIDER_UNAVAILABLE":
		base.Err = ErrProvider
		base.Provider = e.Details.Provider
		if base.Provider == "" {
			base.Provider = "unknown"
		}
		if e.Retryable != nil {
			base.Retryable = *e.Retryable
		} else {
			base.Retryable = status >= 500
		}

	default:
		base.Err = ErrAPI
		if e.Retryable != nil {
			base.Retryable = *e.Retryable
		} else {
			base.Retryable = status >= 500
		}
	}

	return &base
}

// classifyStatus maps a response with no parseable envelope.
// A 403 is treated as an authentication failure with insufficient
// permissions, matching the API's own documentation.
func classifyStatus(status int, body []byte, requestID string) *APIError {
	switch status {
	case http.StatusUnauthorized:
		return &APIError{
			Status:    status,
			Code:      "UNAUTHORIZED",
			Message:   "invalid API key",
			RequestID: requestID,
			Retryable: false,
			Err:       ErrAuthentication,
		}
	case http.StatusForbidden:
		return &APIError{
			Status:    status,
			Code:      "FORBIDDEN",
			Message:   "insufficient permissions",
			RequestID: requestID,
			Retryable: false,
			Err:       ErrAuthentication,
		}
	case http.StatusTooManyRequests:
		return &APIError{
			Status:    status,
			Code:      "RATE_LIMIT_EXCEEDED",
			Message:   "rate limit exceeded",
			RequestID: requestID,
			Retryable: true,
			Err:       ErrRateLimited,
		}
	case http.StatusBadRequest:
		msg := string(body)
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{
			Status:    status,
			Code:      "BAD_REQUEST",
			Message:   msg,
			RequestID: requestID,
			Retryable: false,
			Err:       ErrInvalidRequest,
		}
	default:
		msg := string(body)
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &APIError{
			Status:    status,
			Code:      http.StatusText(status),
			Message:   msg,
			RequestID: requestID,
			Retryable: status >= 500,
			Err:       ErrAPI,
		}
	}
}

// newDecodeError wraps a JSON decode failure. Decode failures are never
// retried; the response was received, its shape was wrong.
func newDecodeError(err error) *APIError {
	return &APIError{
		Message:   err.Error(),
		Retryable: false,
		Err:       ErrDecode,
	}
}
