package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces calls per key (e.g. "judge", "generate") so that two calls on
// the same key start at least the configured delay apart. Spacing is measured
// start to start, and the first call on a key goes out immediately.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultDelay time.Duration
}

// NewLimiter creates a limiter with the given default spacing per key.
// A zero delay disables pacing.
func NewLimiter(delay time.Duration) *Limiter {
	if delay < 0 {
		delay = 0
	}
	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultDelay: delay,
	}
}

// Wait blocks until a call on key may start
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.getLimiter(key).Wait(ctx)
}

// Allow reports whether a call on key may start now, consuming the slot if so
func (l *Limiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

func (l *Limiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = newPacer(l.defaultDelay)
	l.limiters[key] = limiter

	return limiter
}

// SetDelay overrides the spacing for one key
func (l *Limiter) SetDelay(key string, delay time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[key] = newPacer(delay)
}

func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}
