package stopwatch

import (
	"fmt"
	"math"
	"time"
)

// FormatTime renders d as HH:MM:SS.mmm. Milliseconds are truncated.
// Negative durations render as zero; the hour field grows past two digits
// once d reaches 100 hours.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := d / time.Hour
	minutes := (d % time.Hour) / time.Minute
	seconds := (d % time.Minute) / time.Second
	millis := (d % time.Second) / time.Millisecond
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}

// FormatSeconds formats a duration given in floating point seconds.
func FormatSeconds(seconds float64) string {
	return FormatTime(secondsToDuration(seconds))
}

func secondsToDuration(seconds float64) time.Duration {
	if math.IsNaN(seconds) || seconds <= 0 {
		return 0
	}
	ns := math.Round(seconds * float64(time.Second))
	if ns >= math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ns)
}
