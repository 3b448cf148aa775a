package apierr

import (
	"context"
	"time"
)

// RetryConfig holds the per-backend retry budget.
//
// Invalid values are normalized:
//   - MaxAttempts < 1 becomes 1 (single attempt, no retry)
//   - BaseDelay < 0 becomes 0 (retry without waiting)
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Normalized returns a copy of c with invalid values replaced.
func (c RetryConfig) Normalized() RetryConfig {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 1
	}
	if c.BaseDelay < 0 {
		c.BaseDelay = 0
	}
	return c
}

// Delay returns the wait after the failed attempt with 0-based index attempt.
// Growth is linear: BaseDelay × (attempt+1).
func (c RetryConfig) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return c.BaseDelay * time.Duration(attempt+1)
}

// IsLastAttempt reports whether the 0-based attempt exhausts the budget.
func (c RetryConfig) IsLastAttempt(attempt int) bool {
	return attempt >= c.Normalized().MaxAttempts-1
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep blocks for d, returning ctx.Err() early if ctx is cancelled.
// A non-positive d returns immediately (still honouring a cancelled ctx).
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
