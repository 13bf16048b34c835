package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces API calls with a token bucket. Tokens refill one
// per interval up to the burst size, so short bursts are free but the
// sustained rate stays bounded.
type RateLimiter struct {
	mu       sync.Mutex
	tokens   int
	burst    int
	interval time.Duration
	last     time.Time
}

// NewRateLimiter allows burst immediate calls, then one per interval.
func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:   burst,
		burst:    burst,
		interval: interval,
		last:     time.Now(),
	}
}

// Allow takes a token without blocking. Returns false when the bucket
// is empty.
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refillLocked(time.Now())
	if r.tokens == 0 {
		return false
	}
	r.tokens--
	return true
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.Allow() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.interval):
		}
	}
}

func (r *RateLimiter) refillLocked(now time.Time) {
	earned := int(now.Sub(r.last) / r.interval)
	if earned == 0 {
		return
	}
	r.tokens += earned
	if r.tokens > r.burst {
		r.tokens = r.burst
	}
	r.last = r.last.Add(time.Duration(earned) * r.interval)
}
