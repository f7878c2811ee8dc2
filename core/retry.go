package core

import (
	"math"
	"math/rand"
	"time"
)

// RetryPolicy determines retry behavior for failed requests.
type RetryPolicy interface {
	// NextDelay returns the delay before the next retry attempt and whether
	// to retry. If ok is false, no more attempts should be made.
	// attempt starts at 0 for the first failure.
	NextDelay(attempt int, err error) (delay time.Duration, ok bool)
}

// RetryConfig configures exponential backoff with jitter.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts (default: 3)
	BaseDelay  time.Duration // Delay before the first retry (default: 1s)
	MaxDelay   time.Duration // Maximum delay cap (default: 30s)
	Multiplier float64       // Backoff growth factor (default: 2.0)
	Jitter     bool          // Randomize delays to avoid retry storms
}

// DefaultRetryPolicy returns a retry policy with the API's recommended
// defaults: max 3 retries, 1s base delay doubling each attempt, 30s cap,
// jitter enabled.
func DefaultRetryPolicy() RetryPolicy {
	return NewRetryPolicy(RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	})
}

// NewRetryPolicy creates a retry policy with the given configuration.
// Zero delay and multiplier fields fall back to the defaults. MaxRetries of
// zero means no retries.
func NewRetryPolicy(cfg RetryConfig) RetryPolicy {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = 30 * time.Second
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2.0
	}
	return &exponentialBackoff{cfg: cfg}
}

type exponentialBackoff struct {
	cfg RetryConfig
}

func (e *exponentialBackoff) NextDelay(attempt int, err error) (time.Duration, bool) {
	if attempt >= e.cfg.MaxRetries {
		return 0, false
	}
	if !IsRetryable(err) {
		return 0, false
	}
	return e.delayForAttempt(attempt), true
}

// delayForAttempt computes base * multiplier^attempt, applies jitter
// (a uniform factor in [0.75, 1.25], skipped for the first attempt so the
// initial delay stays predictable), and clamps to the configured maximum.
func (e *exponentialBackoff) delayForAttempt(attempt int) time.Duration {
	delay := float64(e.cfg.BaseDelay) * math.Pow(e.cfg.Multiplier, float64(attempt))

	if e.cfg.Jitter && attempt > 0 {
		factor := 0.75 + rand.Float64()*0.5
		delay *= factor
	}

	if delay > float64(e.cfg.MaxDelay) {
		delay = float64(e.cfg.MaxDelay)
	}

	return time.Duration(delay)
}
