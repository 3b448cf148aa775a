package apierr_test

// Coverage Notes:
// - Delay growth is linear (base × attempt), not exponential.
// - Sleep is tested with short real durations and with cancelled contexts.

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alnah/go-wotd/internal/apierr"
)

// ---------------------------------------------------------------------------
// TestRetryConfig - normalization, delays, budget
// ---------------------------------------------------------------------------

func TestRetryConfig_Normalized(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  apierr.RetryConfig
		want apierr.RetryConfig
	}{
		{"valid unchanged", apierr.RetryConfig{MaxAttempts: 3, BaseDelay: time.Second}, apierr.RetryConfig{MaxAttempts: 3, BaseDelay: time.Second}},
		{"zero attempts becomes 1", apierr.RetryConfig{MaxAttempts: 0, BaseDelay: time.Second}, apierr.RetryConfig{MaxAttempts: 1, BaseDelay: time.Second}},
		{"negative attempts becomes 1", apierr.RetryConfig{MaxAttempts: -4}, apierr.RetryConfig{MaxAttempts: 1}},
		{"negative delay becomes 0", apierr.RetryConfig{MaxAttempts: 2, BaseDelay: -time.Second}, apierr.RetryConfig{MaxAttempts: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.cfg.Normalized(); got != tt.want {
				t.Errorf("Normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRetryConfig_DelayIsLinear(t *testing.T) {
	t.Parallel()

	cfg := apierr.RetryConfig{MaxAttempts: 5, BaseDelay: 3 * time.Second}

	want := []time.Duration{3 * time.Second, 6 * time.Second, 9 * time.Second, 12 * time.Second}
	for i, w := range want {
		if got := cfg.Delay(i); got != w {
			t.Errorf("Delay(%d) = %v, want %v", i, got, w)
		}
	}

	if got := cfg.Delay(-1); got != 3*time.Second {
		t.Errorf("Delay(-1) = %v, want %v", got, 3*time.Second)
	}
}

func TestRetryConfig_IsLastAttempt(t *testing.T) {
	t.Parallel()

	cfg := apierr.RetryConfig{MaxAttempts: 3}

	tests := []struct {
		attempt int
		want    bool
	}{
		{0, false},
		{1, false},
		{2, true},
		{3, true},
	}
	for _, tt := range tests {
		if got := cfg.IsLastAttempt(tt.attempt); got != tt.want {
			t.Errorf("IsLastAttempt(%d) = %v, want %v", tt.attempt, got, tt.want)
		}
	}

	single := apierr.RetryConfig{MaxAttempts: 0}
	if !single.IsLastAttempt(0) {
		t.Error("IsLastAttempt(0) with MaxAttempts 0 = false, want true (normalized to 1)")
	}
}

// ---------------------------------------------------------------------------
// TestSleep - context-aware wait
// ---------------------------------------------------------------------------

func TestSleep(t *testing.T) {
	t.Parallel()

	t.Run("waits for duration", func(t *testing.T) {
		t.Parallel()

		start := time.Now()
		if err := apierr.Sleep(context.Background(), 10*time.Millisecond); err != nil {
			t.Fatalf("Sleep() unexpected error: %v", err)
		}
		if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
			t.Errorf("Sleep() returned after %v, want >= 10ms", elapsed)
		}
	})

	t.Run("zero duration returns immediately", func(t *testing.T) {
		t.Parallel()

		if err := apierr.Sleep(context.Background(), 0); err != nil {
			t.Errorf("Sleep(0) unexpected error: %v", err)
		}
	})

	t.Run("cancelled context returns early", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		err := apierr.Sleep(ctx, time.Minute)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Sleep() error = %v, want context.Canceled", err)
		}
		if elapsed := time.Since(start); elapsed > time.Second {
			t.Errorf("Sleep() took %v after cancellation", elapsed)
		}
	})

	t.Run("cancellation during wait", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(5 * time.Millisecond)
			cancel()
		}()

		if err := apierr.Sleep(ctx, time.Minute); !errors.Is(err, context.Canceled) {
			t.Errorf("Sleep() error = %v, want context.Canceled", err)
		}
	})

	t.Run("zero duration with cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if err := apierr.Sleep(ctx, 0); !errors.Is(err, context.Canceled) {
			t.Errorf("Sleep(0) error = %v, want context.Canceled", err)
		}
	})
}
