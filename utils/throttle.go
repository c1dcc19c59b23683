package utils

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Throttle spaces out browser actions so consecutive listing clicks are at
// least the configured interval apart. A zero interval disables pacing.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a Throttle allowing one action per rateLimitMs.
func NewThrottle(rateLimitMs int) *Throttle {
	if rateLimitMs <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	interval := time.Duration(rateLimitMs) * time.Millisecond
	return &Throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next action is allowed or ctx is done.
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
