package ui

import (
	"context"
	"sync"
	"time"
)

// Refresher calls a function at a fixed interval until its context ends.
// The function must not change stopwatch state.
type Refresher struct {
	mu       sync.Mutex
	interval time.Duration
	changed  chan struct{}
}

func NewRefresher(interval time.Duration) *Refresher {
	return &Refresher{
		interval: interval,
		changed:  make(chan struct{}, 1),
	}
}

func (r *Refresher) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// SetInterval changes the period, taking effect on a running Refresher
// from its next tick.
func (r *Refresher) SetInterval(d time.Duration) {
	r.mu.Lock()
	r.interval = d
	r.mu.Unlock()

	select {
	case r.changed <- struct{}{}:
	default:
	}
}

// Run blocks until ctx is done. Ticks missed while tick is running are
// dropped rather than queued.
func (r *Refresher) Run(ctx context.Context, tick func()) {
	ticker := time.NewTicker(r.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.changed:
			ticker.Reset(r.Interval())
		case <-ticker.C:
			tick()
		}
	}
}
