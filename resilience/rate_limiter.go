package resilience

import (
	"context"
	"math"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket refilling at a fixed rate up to burst.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a full bucket. A non-positive burst defaults to
// the rate rounded up, and at least one.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = max(1, int(math.Ceil(perSecond)))
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Allow takes a token if one is available.
func (rl *RateLimiter) Allow() bool {
	return rl.limiter.Allow()
}

// Wait takes a token, blocking until one is due. It fails without waiting
// when ctx would expire first.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// Tokens returns the number of tokens available now.
func (rl *RateLimiter) Tokens() float64 {
	return rl.limiter.Tokens()
}

func (rl *RateLimiter) allowAt(t time.Time) bool {
	return rl.limiter.AllowN(t, 1)
}
