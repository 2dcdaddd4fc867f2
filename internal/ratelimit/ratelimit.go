package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a minimum delay between consecutive requests to the
// listing-source API. The pipeline is sequential, but the limiter is still
// safe for concurrent use.
type Limiter struct {
	mu       sync.Mutex
	last     time.Time
	minDelay time.Duration
}

// New creates a limiter that enforces minDelay between consecutive calls to
// Wait. A zero or negative minDelay disables waiting.
func New(minDelay time.Duration) *Limiter {
	return &Limiter{minDelay: minDelay}
}

// Wait blocks until enough time has passed since the previous request.
// Returns an error if the context is cancelled while waiting.
func (l *Limiter) Wait(ctx context.Context) error {
	l.mu.Lock()
	now := time.Now()

	if l.last.IsZero() || now.Sub(l.last) >= l.minDelay {
		// First request, or enough time has passed — proceed immediately.
		l.last = now
		l.mu.Unlock()
		return nil
	}

	// Need to wait for the remainder.
	remaining := l.minDelay - now.Sub(l.last)
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait: %w", ctx.Err())
	case <-time.After(remaining):
	}

	// Record the actual time after waiting.
	l.mu.Lock()
	l.last = time.Now()
	l.mu.Unlock()

	return nil
}
