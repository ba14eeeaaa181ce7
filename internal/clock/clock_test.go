package clock

import (
	"testing"
	"time"
)

func TestManualAdvance(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)

	if got := m.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	m.Advance(1500 * time.Millisecond)
	if got := m.Now().Sub(start); got != 1500*time.Millisecond {
		t.Fatalf("after Advance, elapsed = %v, want 1.5s", got)
	}

	later := start.Add(time.Hour)
	m.Set(later)
	if got := m.Now(); !got.Equal(later) {
		t.Fatalf("after Set, Now() = %v, want %v", got, later)
	}
}

func TestRealMonotonic(t *testing.T) {
	var c Real
	a := c.Now()
	b := c.Now()
	if b.Sub(a) < 0 {
		t.Fatalf("real clock went backwards: %v then %v", a, b)
	}
}
