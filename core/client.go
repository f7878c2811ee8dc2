package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

// apiPrefix is prepended to every endpoint path.
const apiPrefix = "/api/v1"

// Client is the entry point for the Rainy API. It owns the authenticated
// request pipeline: header construction, optional rate limiting, error
// classification, and bounded exponential-backoff retry.
//
// Client is safe for concurrent use. The rate limiter is the only mutable
// state shared across concurrent calls.
type Client struct {
	config     Config
	httpClient *http.Client
	// streamClient has no response timeout; long-lived SSE bodies would
	// otherwise be cut off mid-stream. Cancellation comes from the ctx.
	streamClient *http.Client
	limiter      RateLimiter
	retry        RetryPolicy
	telemetry    TelemetryHook
}

// Option configures a Client beyond its Config.
type Option func(*Client)

// WithHTTPClient replaces the transport used for non-streaming calls.
// The configured timeout is not applied to a caller-supplied client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimiter installs a client-side rate limiter, overriding the
// fixed-window limiter implied by Config.RequestsPerMinute.
func WithRateLimiter(l RateLimiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithRetryPolicy replaces the default exponential-backoff retry policy.
func WithRetryPolicy(r RetryPolicy) Option {
	return func(c *Client) {
		if r != nil {
			c.retry = r
		}
	}
}

// WithTelemetry installs a telemetry hook observing request lifecycle
// events.
func WithTelemetry(h TelemetryHook) Option {
	return func(c *Client) {
		if h != nil {
			c.telemetry = h
		}
	}
}

// NewClient creates a Client from the given Config. The Config is validated
// eagerly; an invalid key or base URL fails here rather than on first use.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config:       cfg,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		streamClient: &http.Client{},
		retry: NewRetryPolicy(RetryConfig{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Second,
			MaxDelay:   30 * time.Second,
			Multiplier: 2.0,
			Jitter:     true,
		}),
		telemetry: NoopTelemetryHook{},
	}

	if cfg.RequestsPerMinute > 0 {
		c.limiter = NewFixedWindowLimiter(cfg.RequestsPerMinute)
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NewClientWithAPIKey creates a Client with just an API key and defaults
// for everything else.
func NewClientWithAPIKey(apiKey string, opts ...Option) (*Client, error) {
	return NewClient(NewConfig(apiKey), opts...)
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// send issues one API call, decoding the success body into out (which may
// be nil for endpoints with no response body). Transient failures are
// retried per the client's retry policy; the returned error is always a
// *APIError for request-level failures.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	_, err := c.sendMetadata(ctx, method, path, body, out)
	return err
}

// sendMetadata is send plus extraction of the observability headers from
// the final response into a RequestMetadata record.
func (c *Client) sendMetadata(ctx context.Context, method, path string, body, out any) (*RequestMetadata, error) {
	return c.sendURL(ctx, method, c.config.BaseURL+apiPrefix+path, path, body, out)
}

// sendRoot is send for the few endpoints mounted at the server root rather
// than under the versioned API prefix.
func (c *Client) sendRoot(ctx context.Context, method, path string, body, out any) error {
	_, err := c.sendURL(ctx, method, c.config.BaseURL+path, path, body, out)
	return err
}

// sendURL runs the full pipeline against an already-joined URL. path is
// only used for telemetry.
func (c *Client) sendURL(ctx context.Context, method, url, path string, body, out any) (*RequestMetadata, error) {
	headers, err := c.config.buildHeaders()
	if err != nil {
		return nil, err
	}

	var payload []byte
	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, newDecodeError(err)
		}
	}

	start := time.Now()
	c.telemetry.OnRequestStart(RequestStartEvent{Method: method, Path: path, Start: start})

	md, attempts, err := c.dispatch(ctx, method, url, headers, payload, out)

	end := RequestEndEvent{
		Method:   method,
		Path:     path,
		Attempts: attempts,
		Start:    start,
		End:      time.Now(),
		Err:      err,
	}
	if md != nil {
		end.RequestID = md.RequestID
	}
	var ae *APIError
	if errors.As(err, &ae) {
		end.Status = ae.Status
		if end.RequestID == "" {
			end.RequestID = ae.RequestID
		}
	}
	c.telemetry.OnRequestEnd(end)

	return md, err
}

// dispatch runs the rate-limiter gate and the retry loop around attempt.
// Admission is acquired once per call; retries of the same call are not
// re-admitted.
func (c *Client) dispatch(ctx context.Context, method, url string, headers http.Header, payload []byte, out any) (*RequestMetadata, int, error) {
	if c.limiter != nil {
		if err := c.limiter.Acquire(ctx); err != nil {
			return nil, 0, classifyTransport(err)
		}
	}

	attempts := 0
	for attempt := 0; ; attempt++ {
		md, err := c.attempt(ctx, method, url, headers, payload, out)
		attempts++
		if err == nil {
			return md, attempts, nil
		}

		if !c.config.RetryEnabled {
			return md, attempts, err
		}

		delay, retry := c.retry.NextDelay(attempt, err)
		if !retry {
			return md, attempts, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return md, attempts, classifyTransport(ctx.Err())
		case <-timer.C:
		}
	}
}

// attempt performs a single transport call: build URL and request, execute,
// classify failure or decode success.
func (c *Client) attempt(ctx context.Context, method, url string, headers http.Header, payload []byte, out any) (*RequestMetadata, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &APIError{
			Message:   err.Error(),
			Retryable: false,
			Err:       ErrInvalidRequest,
		}
	}
	req.Header = headers.Clone()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return nil, classifyTransport(err)
	}

	requestID := resp.Header.Get("x-request-id")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyResponse(resp.StatusCode, respBody, requestID)
	}

	md := metadataFromHeaders(resp.Header, elapsed)

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return md, newDecodeError(err)
		}
	}

	return md, nil
}
