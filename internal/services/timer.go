package services

import (
	"sync"
	"time"
)

// Timer drives display refreshes while an activity is running. It carries no
// state the ledger depends on: recorded durations are always recomputed from
// wall-clock time at stop, so late or missed ticks never corrupt totals.
type Timer struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewTimer() *Timer {
	return &Timer{}
}

// Start begins ticking with the given period, invoking onTick with the time
// elapsed since startedAt. A running tick loop is replaced.
func (timer *Timer) Start(period time.Duration, startedAt time.Time, onTick func(elapsed time.Duration)) {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if timer.stop != nil {
		close(timer.stop)
	}
	stop := make(chan struct{})
	timer.stop = stop

	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				onTick(now.Sub(startedAt))
			}
		}
	}()
}

// Stop halts the tick loop. Stopping an idle timer is a no-op.
func (timer *Timer) Stop() {
	timer.mu.Lock()
	defer timer.mu.Unlock()

	if timer.stop != nil {
		close(timer.stop)
		timer.stop = nil
	}
}

func (timer *Timer) Running() bool {
	timer.mu.Lock()
	defer timer.mu.Unlock()
	return timer.stop != nil
}
