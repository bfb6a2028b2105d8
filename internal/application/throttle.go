package application

import (
	"time"

	"golang.org/x/time/rate"
)

// Redraw throttle defaults
const (
	DefaultRedrawInterval = 300 * time.Millisecond
	DefaultRedrawDelay    = 60 * time.Millisecond
)

// Throttle lets at most one redraw request through per interval. Requests
// inside the interval are dropped; the caller runs an allowed request after
// Delay.
type Throttle struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// NewThrottle creates a throttle. Non-positive values select the defaults.
func NewThrottle(interval, delay time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultRedrawInterval
	}
	if delay <= 0 {
		delay = DefaultRedrawDelay
	}
	return &Throttle{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		delay:   delay,
	}
}

// Allow reports whether a request at now may proceed
func (t *Throttle) Allow(now time.Time) bool {
	return t.limiter.AllowN(now, 1)
}

// Delay returns how long an allowed request waits before running
func (t *Throttle) Delay() time.Duration {
	return t.delay
}
