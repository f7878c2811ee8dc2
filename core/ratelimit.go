package core

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles outbound requests from one client instance.
// Acquire suspends the caller until admission is safe and returns a non-nil
// error only when ctx is cancelled while waiting. Implementations must be
// safe for concurrent callers.
type RateLimiter interface {
	Acquire(ctx context.Context) error
}

// FixedWindowLimiter admits up to requestsPerMinute calls per 60-second
// window. When the window is exhausted the caller suspends until the window
// boundary. All admission decisions happen under a single lock.
type FixedWindowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	start  time.Time
	count  int
}

// NewFixedWindowLimiter creates a fixed-window limiter admitting
// requestsPerMinute calls per minute.
func NewFixedWindowLimiter(requestsPerMinute int) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:  requestsPerMinute,
		window: time.Minute,
		start:  time.Now(),
	}
}

// Acquire admits the caller, suspending for the remainder of the current
// window if the per-window budget is spent. Cancelling ctx aborts the wait.
// The lock is never held across the sleep, so a cancelled caller returns
// promptly even while another caller waits out the window.
func (l *FixedWindowLimiter) Acquire(ctx context.Context) error {
	for {
		l.mu.Lock()
		now := time.Now()
		if now.Sub(l.start) >= l.window {
			l.count = 0
			l.start = now
		}
		if l.count < l.limit {
			l.count++
			l.mu.Unlock()
			return nil
		}
		wait := l.window - now.Sub(l.start)
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// TokenBucketLimiter admits calls from a continuously refilling token
// bucket. The bucket holds requestsPerMinute tokens and refills at
// requestsPerMinute per minute, so a full window's worth of calls can burst
// without suspending.
type TokenBucketLimiter struct {
	limiter *rate.Limiter
}

// NewTokenBucketLimiter creates a token-bucket limiter admitting
// requestsPerMinute calls per minute on average.
func NewTokenBucketLimiter(requestsPerMinute int) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), requestsPerMinute),
	}
}

// Acquire blocks until a token is available, consuming one.
func (l *TokenBucketLimiter) Acquire(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Compile-time interface checks.
var (
	_ RateLimiter = (*FixedWindowLimiter)(nil)
	_ RateLimiter = (*TokenBucketLimiter)(nil)
)
