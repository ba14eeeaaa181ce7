package models

import (
	"time"
)

type TimerState int

const (
	StateStopped TimerState = iota
	StateRunning
)

func (s TimerState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Lap is one recorded split.
type Lap struct {
	Index int           // 1-based, in recording order
	Split time.Duration // elapsed time when the split was taken
	Delta time.Duration // time since the previous split
}
