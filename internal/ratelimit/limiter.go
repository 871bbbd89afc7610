// Package ratelimit caps the number of requests a client key may make within
// a fixed window that starts at the key's first request.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Store counts hits per key. Hit records one request for key and returns the
// count inside the current window together with the moment the window ends.
type Store interface {
	Hit(ctx context.Context, key string, window time.Duration, now time.Time) (count int, resetAt time.Time, err error)
}

// Decision is the outcome of a single Allow call
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter returns how long the caller should wait before the window resets
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.ResetAt.Before(now) {
		return 0
	}
	return d.ResetAt.Sub(now)
}

// Config defines the window policy
type Config struct {
	Window time.Duration
	Max    int
}

// Limiter applies a Config on top of a Store
type Limiter struct {
	store  Store
	config Config
	now    func() time.Time
}

// Option customizes a Limiter
type Option func(*Limiter)

// WithClock replaces time.Now, used by tests to move through windows
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// NewLimiter creates a new limiter
func NewLimiter(store Store, config Config, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, fmt.Errorf("rate limit store is required")
	}
	if config.Window <= 0 || config.Max <= 0 {
		return nil, fmt.Errorf("invalid rate limit config: window=%s max=%d", config.Window, config.Max)
	}

	l := &Limiter{
		store:  store,
		config: config,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Config returns the window policy of the limiter
func (l *Limiter) Config() Config {
	return l.config
}

// Now returns the limiter's current time
func (l *Limiter) Now() time.Time {
	return l.now()
}

// Allow records a request for key and reports whether it fits in the window.
// Once the count exceeds Max the key is rejected until the window elapses.
func (l *Limiter) Allow(ctx context.Context, key string) (Decision, error) {
	count, resetAt, err := l.store.Hit(ctx, key, l.config.Window, l.now())
	if err != nil {
		return Decision{Allowed: true, Limit: l.config.Max, Remaining: l.config.Max}, fmt.Errorf("rate limit store: %w", err)
	}

	remaining := l.config.Max - count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   count <= l.config.Max,
		Limit:     l.config.Max,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
