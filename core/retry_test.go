package core

import (
	"errors"
	"testing"
	"time"
)

func retryableErr() error {
	return &APIError{Retryable: true, Err: ErrNetwork}
}

func TestBackoffMonotonicWithoutJitter(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 5,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Minute,
		Multiplier: 2.0,
		Jitter:     false,
	})

	var prev time.Duration
	for attempt := 0; attempt < 5; attempt++ {
		delay, ok := policy.NextDelay(attempt, retryableErr())
		if !ok {
			t.Fatalf("NextDelay(%d) ok = false, want true", attempt)
		}
		if delay < prev {
			t.Errorf("delay decreased at attempt %d: %v < %v", attempt, delay, prev)
		}
		want := 100 * time.Millisecond << attempt
		if delay != want {
			t.Errorf("NextDelay(%d) = %v, want %v", attempt, delay, want)
		}
		prev = delay
	}
}

func TestBackoffClampsToMaxDelay(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 10,
		BaseDelay:  time.Second,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
		Jitter:     false,
	})

	delay, ok := policy.NextDelay(9, retryableErr())
	if !ok {
		t.Fatal("NextDelay ok = false, want true")
	}
	if delay != 5*time.Second {
		t.Errorf("delay = %v, want clamp at 5s", delay)
	}
}

func TestBackoffJitterBounds(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{
		MaxRetries: 10,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Hour,
		Multiplier: 2.0,
		Jitter:     true,
	})

	// First retry is jitter-free so callers see a predictable initial delay.
	delay, _ := policy.NextDelay(0, retryableErr())
	if delay != 100*time.Millisecond {
		t.Errorf("first delay = %v, want exactly 100ms", delay)
	}

	for i := 0; i < 200; i++ {
		delay, ok := policy.NextDelay(3, retryableErr())
		if !ok {
			t.Fatal("NextDelay ok = false, want true")
		}
		base := 800 * time.Millisecond
		lo := time.Duration(float64(base) * 0.75)
		hi := time.Duration(float64(base) * 1.25)
		if delay < lo || delay > hi {
			t.Fatalf("jittered delay %v outside [%v, %v]", delay, lo, hi)
		}
	}
}

func TestRetryBudgetExhausted(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{MaxRetries: 2, Jitter: false})

	if _, ok := policy.NextDelay(0, retryableErr()); !ok {
		t.Error("attempt 0 should be retried")
	}
	if _, ok := policy.NextDelay(1, retryableErr()); !ok {
		t.Error("attempt 1 should be retried")
	}
	if _, ok := policy.NextDelay(2, retryableErr()); ok {
		t.Error("attempt 2 exceeds the budget and must not be retried")
	}
}

func TestNonRetryableErrorStopsRetry(t *testing.T) {
	policy := DefaultRetryPolicy()

	authErr := &APIError{Retryable: false, Err: ErrAuthentication}
	if _, ok := policy.NextDelay(0, authErr); ok {
		t.Error("non-retryable error must not be retried")
	}
	if _, ok := policy.NextDelay(0, errors.New("plain")); ok {
		t.Error("unclassified error must not be retried")
	}
}

func TestRetryPolicyDefaults(t *testing.T) {
	policy := DefaultRetryPolicy()

	delay, ok := policy.NextDelay(0, retryableErr())
	if !ok {
		t.Fatal("default policy should retry a retryable error")
	}
	if delay != time.Second {
		t.Errorf("default base delay = %v, want 1s", delay)
	}
	if _, ok := policy.NextDelay(3, retryableErr()); ok {
		t.Error("default budget is 3 retries")
	}
}

func TestZeroMaxRetriesMeansNoRetries(t *testing.T) {
	policy := NewRetryPolicy(RetryConfig{MaxRetries: 0})
	if _, ok := policy.NextDelay(0, retryableErr()); ok {
		t.Error("MaxRetries 0 must not retry")
	}
}
