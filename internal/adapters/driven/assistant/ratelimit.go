package assistant

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond keeps a whole analysis (three calls) within
// typical free-tier quotas.
const DefaultRequestsPerSecond = 1.0

// defaultBackoff applies when a 429 carries no usable retry hint.
const defaultBackoff = 30 * time.Second

// RateLimiter is a token bucket with a backoff window set after the
// provider answers 429.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// NewRateLimiter allows requestsPerSecond sustained calls with a burst of
// one call per analysis stage. Non-positive rates use the default.
func NewRateLimiter(requestsPerSecond float64) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultRequestsPerSecond
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 3),
		now:     time.Now,
	}
}

// Wait blocks until the backoff window has passed and a token is available.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	wait := r.retryAt.Sub(r.now())
	r.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return r.limiter.Wait(ctx)
}

// Backoff holds further calls for d, or defaultBackoff when d is not positive.
func (r *RateLimiter) Backoff(d time.Duration) {
	if d <= 0 {
		d = defaultBackoff
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if until := r.now().Add(d); until.After(r.retryAt) {
		r.retryAt = until
	}
}
