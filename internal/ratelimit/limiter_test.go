package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T, clock *fakeClock) *Limiter {
	t.Helper()
	l, err := NewLimiter(NewMemoryStore(), Config{Window: 15 * time.Minute, Max: 5}, WithClock(clock.Now))
	require.NoError(t, err)
	return l
}

func TestLimiter_RejectsAfterMaxWithinWindow(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, clock)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		dec, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, dec.Allowed, "request %d should be allowed", i)
		assert.Equal(t, 5-i, dec.Remaining)
	}

	dec, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, dec.Allowed)
	assert.Equal(t, 0, dec.Remaining)
	assert.Equal(t, 15*time.Minute, dec.RetryAfter(clock.Now()))
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, clock)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _ = l.Allow(ctx, "10.0.0.1")
	}

	dec, err := l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
}

func TestLimiter_ResetsAfterWindowElapses(t *testing.T) {
	clock := newFakeClock()
	l := newTestLimiter(t, clock)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _ = l.Allow(ctx, "10.0.0.1")
	}

	clock.Advance(14 * time.Minute)
	dec, _ := l.Allow(ctx, "10.0.0.1")
	assert.False(t, dec.Allowed, "still inside the window")
	assert.Equal(t, time.Minute, dec.RetryAfter(clock.Now()))

	clock.Advance(time.Minute)
	dec, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, dec.Allowed)
	assert.Equal(t, 4, dec.Remaining)
}

func TestLimiter_ConcurrentHitsAreCounted(t *testing.T) {
	clock := newFakeClock()
	l, err := NewLimiter(NewMemoryStore(), Config{Window: time.Minute, Max: 50}, WithClock(clock.Now))
	require.NoError(t, err)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dec, _ := l.Allow(context.Background(), "shared")
			if dec.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

type failingStore struct{}

func (failingStore) Hit(context.Context, string, time.Duration, time.Time) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("connection refused")
}

func TestLimiter_StoreErrorFailsOpen(t *testing.T) {
	l, err := NewLimiter(failingStore{}, Config{Window: time.Minute, Max: 1})
	require.NoError(t, err)

	dec, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.True(t, dec.Allowed)
}

func TestNewLimiter_RejectsInvalidConfig(t *testing.T) {
	_, err := NewLimiter(NewMemoryStore(), Config{Window: 0, Max: 5})
	assert.Error(t, err)

	_, err = NewLimiter(NewMemoryStore(), Config{Window: time.Minute, Max: 0})
	assert.Error(t, err)

	_, err = NewLimiter(nil, Config{Window: time.Minute, Max: 1})
	assert.Error(t, err)
}
