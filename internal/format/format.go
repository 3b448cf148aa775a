// Package format holds small helpers for human-facing CLI output.
package format

import (
	"fmt"
	"time"
)

// DurationHuman formats a duration for human display.
// Examples: "1h30m", "2m", "1m30s", "45s", "1.5s", "250ms"
func DurationHuman(d time.Duration) string {
	if d >= time.Hour {
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes > 0 {
			return fmt.Sprintf("%dh%dm", hours, minutes)
		}
		return fmt.Sprintf("%dh", hours)
	}
	if d >= time.Minute {
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	if d >= time.Second {
		if d%time.Second == 0 {
			return fmt.Sprintf("%ds", d/time.Second)
		}
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dms", d/time.Millisecond)
}

// Attempt formats a 1-based attempt number as "n/max".
func Attempt(n, maxAttempts int) string {
	return fmt.Sprintf("%d/%d", n, maxAttempts)
}

// Day formats t as YYYY-MM-DD in t's location.
func Day(t time.Time) string {
	return t.Format(time.DateOnly)
}
