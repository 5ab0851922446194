package pdf

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds the conversion throttle settings.
type RateLimitConfig struct {
	// PerMinute is the sustained number of conversions per minute.
	// Zero or less disables throttling.
	PerMinute int
	// Burst is the maximum number of conversions started back to back.
	Burst int
}

// RateLimiter throttles conversions with a token bucket.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter from cfg.
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.PerMinute <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.PerMinute)), burst),
	}
}

// Wait blocks until a conversion may start or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Allow reports whether a conversion may start immediately, consuming a token if so.
func (r *RateLimiter) Allow() bool {
	return r.limiter.Allow()
}
