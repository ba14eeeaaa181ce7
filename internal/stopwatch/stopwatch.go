// Package stopwatch implements the start/pause/reset/split state machine.
//
// All operations are guarded no-ops when their precondition does not hold:
// pausing a stopped watch or splitting while stopped changes nothing.
package stopwatch

import (
	"sync"
	"time"

	"github.com/klu2300033421/StopWatch/internal/clock"
	"github.com/klu2300033421/StopWatch/internal/models"
)

// Stopwatch tracks elapsed running time across start/pause cycles and the
// splits recorded while running. It is safe for concurrent use.
type Stopwatch struct {
	mu          sync.Mutex
	clock       clock.Clock
	running     bool
	start       time.Time     // start of the current running interval
	accumulated time.Duration // sum of completed running intervals
	laps        []models.Lap
}

// Snapshot is a consistent view of the stopwatch at one instant.
type Snapshot struct {
	State   models.TimerState
	Elapsed time.Duration
	Laps    []models.Lap
}

// New returns a stopped stopwatch reading zero. A nil clock means the
// system clock.
func New(c clock.Clock) *Stopwatch {
	if c == nil {
		c = clock.Real{}
	}
	return &Stopwatch{clock: c}
}

// Start begins a running interval. It does nothing if already running.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.start = s.clock.Now()
	s.running = true
}

// Pause folds the current interval into the accumulated total and stops.
// It does nothing if not running.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.accumulated += s.sinceStart()
	s.running = false
}

// Reset stops the stopwatch, zeroes it and drops all laps.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.running = false
	s.start = time.Time{}
	s.accumulated = 0
	s.laps = nil
}

// Split records the current elapsed time as a new lap. It reports false and
// records nothing when the stopwatch is stopped.
func (s *Stopwatch) Split() (models.Lap, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return models.Lap{}, false
	}

	elapsed := s.elapsed()
	lap := models.Lap{
		Index: len(s.laps) + 1,
		Split: elapsed,
		Delta: elapsed,
	}
	if n := len(s.laps); n > 0 {
		lap.Delta = elapsed - s.laps[n-1].Split
	}
	s.laps = append(s.laps, lap)
	return lap, true
}

// Elapsed returns the total running time since the last reset.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed()
}

func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Stopwatch) State() models.TimerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Laps returns a copy of the recorded laps in recording order.
func (s *Stopwatch) Laps() []models.Lap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyLaps()
}

func (s *Stopwatch) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:   s.state(),
		Elapsed: s.elapsed(),
		Laps:    s.copyLaps(),
	}
}

func (s *Stopwatch) elapsed() time.Duration {
	if s.running {
		return s.accumulated + s.sinceStart()
	}
	return s.accumulated
}

// sinceStart never goes negative, even if the clock steps backwards.
func (s *Stopwatch) sinceStart() time.Duration {
	d := s.clock.Now().Sub(s.start)
	if d < 0 {
		return 0
	}
	return d
}

func (s *Stopwatch) state() models.TimerState {
	if s.running {
		return models.StateRunning
	}
	return models.StateStopped
}

func (s *Stopwatch) copyLaps() []models.Lap {
	if len(s.laps) == 0 {
		return nil
	}
	laps := make([]models.Lap, len(s.laps))
	copy(laps, s.laps)
	return laps
}
