package core

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Version is the current version of the Rainy Go SDK, reported in the
// default User-Agent.
const Version = "0.3.0"

// DefaultBaseURL is the production endpoint of the Rainy API.
const DefaultBaseURL = "https://rainy-api-v2-179843975974.us-west1.run.app"

// apiKeyPrefix is the required prefix of every Rainy API key.
const apiKeyPrefix = "ra-"

// Config holds the credentials and connection settings for a Client.
// A Config is immutable once the client is constructed from it.
type Config struct {
	// APIKey authenticates every request. Must start with "ra-".
	APIKey Secret

	// BaseURL is the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// Timeout bounds each request attempt end to end. Default 30s.
	Timeout time.Duration

	// MaxRetries is the retry budget per call. Default 3; total attempts
	// made is MaxRetries+1.
	MaxRetries int

	// RetryEnabled turns automatic retry on or off. Default true.
	RetryEnabled bool

	// UserAgent is sent on every request. Defaults to "rainy-go/<version>".
	UserAgent string

	// RequestsPerMinute enables client-side rate limiting when positive.
	// Zero means every call is admitted immediately.
	RequestsPerMinute int
}

// ConfigOption customizes a Config built by NewConfig.
type ConfigOption func(*Config)

// NewConfig creates a Config with the given API key and defaults for
// everything else.
func NewConfig(apiKey string, opts ...ConfigOption) Config {
	cfg := Config{
		APIKey:       NewSecret(apiKey),
		BaseURL:      DefaultBaseURL,
		Timeout:      30 * time.Second,
		MaxRetries:   3,
		RetryEnabled: true,
		UserAgent:    "rainy-go/" + Version,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithBaseURL sets a custom API endpoint.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxRetries sets the retry budget. Zero disables retries while keeping
// the retry machinery in place.
func WithMaxRetries(n int) ConfigOption {
	return func(c *Config) {
		c.MaxRetries = n
	}
}

// WithRetryDisabled turns automatic retry off entirely; each call invokes
// the transport exactly once.
func WithRetryDisabled() ConfigOption {
	return func(c *Config) {
		c.RetryEnabled = false
	}
}

// WithUserAgent sets a custom User-Agent header value.
func WithUserAgent(ua string) ConfigOption {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithRequestsPerMinute enables client-side rate limiting at the given rate.
func WithRequestsPerMinute(n int) ConfigOption {
	return func(c *Config) {
		c.RequestsPerMinute = n
	}
}

// Validate checks the API key format and the base URL.
func (c *Config) Validate() error {
	if c.APIKey.IsEmpty() {
		return &APIError{
			Code:      "EMPTY_API_KEY",
			Message:   "API key cannot be empty",
			Retryable: false,
			Err:       ErrAuthentication,
		}
	}

	if !strings.HasPrefix(c.APIKey.Expose(), apiKeyPrefix) {
		return &APIError{
			Code:      "INVALID_API_KEY_FORMAT",
			Message:   "API key must start with 'ra-'",
			Retryable: false,
			Err:       ErrAuthentication,
		}
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &APIError{
			Code:      "INVALID_BASE_URL",
			Message:   "base URL is not a valid absolute URL",
			Retryable: false,
			Err:       ErrInvalidRequest,
		}
	}

	return nil
}

// buildHeaders constructs the headers sent with every request. It fails only
// when a caller-supplied value (key or user agent) contains characters that
// are illegal in an HTTP header.
func (c *Config) buildHeaders() (http.Header, error) {
	auth := "Bearer " + c.APIKey.Expose()
	if !validHeaderValue(auth) {
		return nil, &APIError{
			Code:      "INVALID_HEADER",
			Message:   "API key contains characters illegal in an HTTP header",
			Retryable: false,
			Err:       ErrInvalidRequest,
		}
	}
	if !validHeaderValue(c.UserAgent) {
		return nil, &APIError{
			Code:      "INVALID_HEADER",
			Message:   "user agent contains characters illegal in an HTTP header",
			Retryable: false,
			Err:       ErrInvalidRequest,
		}
	}

	headers := make(http.Header)
	headers.Set("Authorization", auth)
	headers.Set("Content-Type", "application/json")
	headers.Set("User-Agent", c.UserAgent)
	return headers, nil
}

// validHeaderValue reports whether s is free of control characters, which
// are the only bytes that can invalidate a header value here.
func validHeaderValue(s string) bool {
	for i := 0; i < len(s); i++ {
		b := s[i]
		if b < 0x20 || b == 0x7f {
			return false
		}
	}
	return true
}
