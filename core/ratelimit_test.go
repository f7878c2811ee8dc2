package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFixedWindowAdmitsUpToLimit(t *testing.T) {
	limiter := NewFixedWindowLimiter(3)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d error = %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("first 3 admissions took %v, want immediate", elapsed)
	}
}

func TestFixedWindowSuspendsWhenExhausted(t *testing.T) {
	limiter := NewFixedWindowLimiter(2)
	limiter.window = 100 * time.Millisecond
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	// Third acquisition has to wait out the remainder of the window.
	start := time.Now()
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire error = %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("third admission returned after %v, want a wait near the window boundary", elapsed)
	}
}

func TestFixedWindowResetsAfterWindow(t *testing.T) {
	limiter := NewFixedWindowLimiter(1)
	limiter.window = 50 * time.Millisecond
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	time.Sleep(60 * time.Millisecond)

	start := time.Now()
	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("admission after window reset took %v, want immediate", elapsed)
	}
}

func TestFixedWindowAcquireCancellation(t *testing.T) {
	limiter := NewFixedWindowLimiter(1)
	limiter.window = 10 * time.Second

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := limiter.Acquire(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Acquire error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("cancellation took %v, want prompt return", elapsed)
	}
}

func TestFixedWindowCancelledCallerNotBlockedByWaiter(t *testing.T) {
	limiter := NewFixedWindowLimiter(1)
	limiter.window = 3 * time.Second

	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Park one caller in the window wait.
	waiterCtx, stopWaiter := context.WithCancel(context.Background())
	defer stopWaiter()
	waiterDone := make(chan struct{})
	go func() {
		defer close(waiterDone)
		limiter.Acquire(waiterCtx)
	}()
	time.Sleep(50 * time.Millisecond)

	// A caller whose context is already cancelled must not wait out the
	// window behind the parked one.
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := limiter.Acquire(cancelled)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Acquire error = %v, want context.Canceled", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled caller returned after %v, want prompt return", elapsed)
	}

	stopWaiter()
	select {
	case <-waiterDone:
	case <-time.After(time.Second):
		t.Fatal("parked caller did not return after cancellation")
	}
}

func TestTokenBucketBurst(t *testing.T) {
	limiter := NewTokenBucketLimiter(5)
	ctx := context.Background()

	// A full bucket admits the whole burst without suspending.
	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d error = %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("burst of 5 took %v, want immediate", elapsed)
	}
}

func TestTokenBucketCancellation(t *testing.T) {
	limiter := NewTokenBucketLimiter(1)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatal(err)
	}

	cancelCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	if err := limiter.Acquire(cancelCtx); err == nil {
		t.Fatal("Acquire on empty bucket with short deadline should fail")
	}
}
