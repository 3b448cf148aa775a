package format_test

// Notes:
// - Negative durations are not tested: backoff waits are never negative.

import (
	"testing"
	"time"

	"github.com/alnah/go-wotd/internal/format"
)

// ---------------------------------------------------------------------------
// TestDurationHuman - Formats duration for human display
// ---------------------------------------------------------------------------

func TestDurationHuman(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input time.Duration
		want  string
	}{
		{name: "zero", input: 0, want: "0ms"},
		{name: "sub-second", input: 250 * time.Millisecond, want: "250ms"},
		{name: "whole seconds", input: 3 * time.Second, want: "3s"},
		{name: "fractional seconds", input: 1500 * time.Millisecond, want: "1.5s"},
		{name: "just under a minute", input: 59 * time.Second, want: "59s"},
		{name: "one minute", input: time.Minute, want: "1m"},
		{name: "minutes and seconds", input: 2*time.Minute + 30*time.Second, want: "2m30s"},
		{name: "doubled 45s base", input: 90 * time.Second, want: "1m30s"},
		{name: "sub-second remainder dropped", input: 2*time.Minute + 59*time.Second + 500*time.Millisecond, want: "2m59s"},
		{name: "one hour", input: time.Hour, want: "1h"},
		{name: "hour and minutes", input: time.Hour + 30*time.Minute, want: "1h30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := format.DurationHuman(tt.input); got != tt.want {
				t.Errorf("DurationHuman(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestAttempt
// ---------------------------------------------------------------------------

func TestAttempt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attempt, max int
		want         string
	}{
		{1, 3, "1/3"},
		{3, 3, "3/3"},
		{1, 1, "1/1"},
	}

	for _, tt := range tests {
		if got := format.Attempt(tt.attempt, tt.max); got != tt.want {
			t.Errorf("Attempt(%d, %d) = %q, want %q", tt.attempt, tt.max, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDay
// ---------------------------------------------------------------------------

func TestDay(t *testing.T) {
	t.Parallel()

	warsaw := time.FixedZone("CEST", 2*60*60)
	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"utc", time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC), "2026-10-15"},
		{"local day differs from utc", time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC).In(warsaw), "2026-10-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := format.Day(tt.input); got != tt.want {
				t.Errorf("Day() = %q, want %q", got, tt.want)
			}
		})
	}
}
