package tasks

import (
	"sync"
	"time"

	"github.com/osa911/portfolio-backend/internal/logging"
)

// Sweeper drops state that expired before now and returns how much it removed
type Sweeper interface {
	Sweep(now time.Time) int
}

// WindowSweeper periodically evicts elapsed rate-limit windows
type WindowSweeper struct {
	store    Sweeper
	interval time.Duration
	now      func() time.Time
	logger   *logging.Logger
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWindowSweeper creates a new sweeper task. now defaults to time.Now.
func NewWindowSweeper(store Sweeper, interval time.Duration, now func() time.Time, logger *logging.Logger) *WindowSweeper {
	if now == nil {
		now = time.Now
	}
	return &WindowSweeper{
		store:    store,
		interval: interval,
		now:      now,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins the sweeper task in the background
func (ws *WindowSweeper) Start() {
	if ws.interval <= 0 {
		ws.logger.Warn("WindowSweeper: interval not set, elapsed windows are only reset on the next hit")
		return
	}
	ws.wg.Add(1)
	go ws.runPeriodically()
}

// Stop gracefully stops the sweeper task
func (ws *WindowSweeper) Stop() {
	ws.stopOnce.Do(func() {
		close(ws.done)
	})
	ws.wg.Wait()
}

func (ws *WindowSweeper) runPeriodically() {
	defer ws.wg.Done()

	ticker := time.NewTicker(ws.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ws.sweep()
		case <-ws.done:
			ws.logger.Debug("WindowSweeper stopped")
			return
		}
	}
}

func (ws *WindowSweeper) sweep() {
	if removed := ws.store.Sweep(ws.now()); removed > 0 {
		ws.logger.Debug("WindowSweeper: evicted %d elapsed windows", removed)
	}
}
