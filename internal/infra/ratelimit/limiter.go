package ratelimit

import (
	"context"
	"time"

	"travel-booking/internal/pkg/clock"
)

// Counter records a hit for key and returns the number of hits inside the
// trailing window, the new one included.
type Counter interface {
	Record(ctx context.Context, key string, now time.Time, window time.Duration) (int, error)
}

type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

type Limiter struct {
	counter Counter
	clock   clock.Clock
	window  time.Duration
	max     int
}

func NewLimiter(counter Counter, clk clock.Clock, window time.Duration, max int) *Limiter {
	return &Limiter{counter: counter, clock: clk, window: window, max: max}
}

func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	hits, err := l.counter.Record(ctx, key, l.clock.Now(), l.window)
	if err != nil {
		return Decision{Allowed: true, Limit: l.max, Remaining: l.max}, err
	}

	d := Decision{Allowed: hits <= l.max, Limit: l.max, Remaining: l.max - hits}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if !d.Allowed {
		d.RetryAfter = l.window
	}
	return d, nil
}

func (l *Limiter) Window() time.Duration { return l.window }
