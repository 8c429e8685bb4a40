package vault

import (
	"context"
	"sync"
	"time"

	"github.com/claudia-app/claudia-vault/internal/logger"
)

// DefaultSweepInterval is the AutoLocker tick when none is configured.
const DefaultSweepInterval = 30 * time.Second

// IdleSweeper is anything that can lock itself after inactivity.
type IdleSweeper interface {
	CheckIdle() bool
}

// AutoLocker periodically asks sweepers to lock themselves when idle.
// Sessions already expire lazily on access; the sweeper only shortens the
// time an expired secret stays resident in memory.
type AutoLocker struct {
	sweepers []IdleSweeper
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewAutoLocker creates an idle AutoLocker. interval <= 0 selects
// DefaultSweepInterval.
func NewAutoLocker(interval time.Duration, log *logger.Logger, sweepers ...IdleSweeper) *AutoLocker {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &AutoLocker{
		sweepers: sweepers,
		interval: interval,
		log:      log.WithComponent("autolock"),
	}
}

// Start launches the sweep loop, replacing any loop already running. The
// loop exits when ctx is cancelled or Stop is called.
func (a *AutoLocker) Start(ctx context.Context) {
	a.Stop()

	a.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.wg.Add(1)
	a.mu.Unlock()

	go func() {
		defer a.wg.Done()
		t := time.NewTicker(a.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				a.Sweep()
			}
		}
	}()

	a.log.Debug().Dur("interval", a.interval).Msg("auto-lock sweeper started")
}

// Sweep runs one pass over all sweepers and returns how many locked.
func (a *AutoLocker) Sweep() int {
	locked := 0
	for _, s := range a.sweepers {
		if s.CheckIdle() {
			locked++
		}
	}
	return locked
}

// Stop cancels the loop and waits for it to exit. Safe to call when the
// loop is not running.
func (a *AutoLocker) Stop() {
	a.mu.Lock()
	cancel := a.cancel
	a.cancel = nil
	a.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	a.wg.Wait()
}
