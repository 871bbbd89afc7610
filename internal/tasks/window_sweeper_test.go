package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/osa911/portfolio-backend/internal/logging"
	"github.com/osa911/portfolio-backend/internal/ratelimit"

	"github.com/stretchr/testify/assert"
)

func TestWindowSweeper_EvictsElapsedWindows(t *testing.T) {
	store := ratelimit.NewMemoryStore()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, _ = store.Hit(context.Background(), "203.0.113.1", time.Minute, start)
	_, _, _ = store.Hit(context.Background(), "203.0.113.2", time.Hour, start)

	sweeper := NewWindowSweeper(store, time.Millisecond, func() time.Time { return start.Add(2 * time.Minute) }, logging.Discard())
	sweeper.Start()
	defer sweeper.Stop()

	assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 2*time.Millisecond)
}

func TestWindowSweeper_StopIsIdempotent(t *testing.T) {
	sweeper := NewWindowSweeper(ratelimit.NewMemoryStore(), time.Millisecond, nil, logging.Discard())
	sweeper.Start()
	sweeper.Stop()
	sweeper.Stop()
}

func TestWindowSweeper_DisabledWithoutInterval(t *testing.T) {
	sweeper := NewWindowSweeper(ratelimit.NewMemoryStore(), 0, nil, logging.Discard())
	sweeper.Start()
	sweeper.Stop()
}
