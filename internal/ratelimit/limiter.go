// Package ratelimit caps the rate of tool calls accepted from the host.
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token bucket refilled evenly across each minute.
// A nil *Limiter allows everything.
type Limiter struct {
	limiter *rate.Limiter
	now     func() time.Time
}

// PerMinute returns a limiter allowing n calls per minute with a burst of n.
// n <= 0 disables limiting and returns nil.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		return nil
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(float64(n)/60.0), n),
		now:     time.Now,
	}
}

// Allow reports whether one more call may proceed now, consuming a token if so.
func (l *Limiter) Allow() bool {
	if l == nil {
		return true
	}
	return l.limiter.AllowN(l.now(), 1)
}
