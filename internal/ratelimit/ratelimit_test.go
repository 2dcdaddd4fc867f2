package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait_FirstCallImmediate(t *testing.T) {
	limiter := New(1 * time.Second)

	start := time.Now()
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected first wait to be near-instant, got %v", elapsed)
	}
}

func TestWait_EnforcesMinDelay(t *testing.T) {
	limiter := New(100 * time.Millisecond)
	ctx := context.Background()

	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	elapsed := time.Since(start)

	// Should have waited at least ~100ms (allow 80ms for timer jitter).
	if elapsed < 80*time.Millisecond {
		t.Errorf("expected >= 80ms wait, got %v", elapsed)
	}
}

func TestWait_ZeroDelayNeverBlocks(t *testing.T) {
	limiter := New(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("wait %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("expected zero-delay waits to be near-instant, got %v", elapsed)
	}
}

func TestWait_ContextCancellation(t *testing.T) {
	limiter := New(5 * time.Second) // long delay

	// First call to seed the last-call time.
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // cancel immediately

	if err := limiter.Wait(ctx); err == nil {
		t.Fatal("expected error from cancelled context, got nil")
	}
}
