// Package fetch implements the resilient completion fetcher: an ordered list
// of candidate backends, each tried with its own retry budget.
//
// Per candidate, quota failures stop the loop at once, server-unavailable
// failures are retried with linear backoff, anything else is fatal and is never
// masked by a later candidate.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-wotd/internal/apierr"
)

// Default retry budget, per candidate.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 3 * time.Second
)

// ErrNilBackend indicates a candidate was configured without a backend.
var ErrNilBackend = errors.New("candidate has no backend")

// RetryHook is called before each backoff wait. attempt is the 1-based number
// of the attempt that just failed.
type RetryHook func(c Candidate, attempt int, wait time.Duration, err error)

// FallbackHook is called when Fetch moves from one candidate to the next.
type FallbackHook func(from, to Candidate, err error)

// Fetcher runs one logical request against ordered candidates.
// It holds only immutable configuration and is safe for concurrent use;
// concurrent fetches do not coordinate with each other.
type Fetcher struct {
	retry      apierr.RetryConfig
	logger     *zap.Logger
	sleep      apierr.SleepFunc
	newID      func() string
	onRetry    RetryHook
	onFallback FallbackHook
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRetryConfig sets the per-candidate retry budget.
func WithRetryConfig(cfg apierr.RetryConfig) Option {
	return func(f *Fetcher) {
		f.retry = cfg.Normalized()
	}
}

// WithMaxAttempts sets the number of calls allowed per candidate.
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(f *Fetcher) {
		if n >= 1 {
			f.retry.MaxAttempts = n
		}
	}
}

// WithBaseDelay sets the backoff base. The wait after failed attempt k
// (1-based) is k × base. Negative values are ignored.
func WithBaseDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.retry.BaseDelay = d
		}
	}
}

// WithLogger sets the diagnostic logger. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithRetryHook registers a callback invoked before each backoff wait.
func WithRetryHook(h RetryHook) Option {
	return func(f *Fetcher) {
		f.onRetry = h
	}
}

// WithFallbackHook registers a callback invoked when switching candidates.
func WithFallbackHook(h FallbackHook) Option {
	return func(f *Fetcher) {
		f.onFallback = h
	}
}

// withSleep replaces the backoff wait (for testing).
func withSleep(fn apierr.SleepFunc) Option {
	return func(f *Fetcher) {
		f.sleep = fn
	}
}

// withIDGenerator replaces the fetch id generator (for testing).
func withIDGenerator(fn func() string) Option {
	return func(f *Fetcher) {
		f.newID = fn
	}
}

// New creates a Fetcher with DefaultMaxAttempts and DefaultBaseDelay unless
// overridden by options.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		retry: apierr.RetryConfig{
			MaxAttempts: DefaultMaxAttempts,
			BaseDelay:   DefaultBaseDelay,
		},
		logger: zap.NewNop(),
		sleep:  apierr.Sleep,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RetryConfig returns the per-candidate retry budget.
func (f *Fetcher) RetryConfig() apierr.RetryConfig {
	return f.retry
}

// Fetch tries candidates in order and returns the first text produced.
//
// A candidate that ends with quota or retry exhaustion hands over to the next
// one, which starts with a fresh budget. A fatal failure is returned at once.
// When every candidate is exhausted the last candidate's *Error is returned.
// Candidate B's first call never starts before candidate A is done.
func (f *Fetcher) Fetch(ctx context.Context, prompt string, candidates []Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	for _, c := range candidates {
		if c.Backend == nil {
			return "", fmt.Errorf("candidate %q: %w", c.Name, ErrNilBackend)
		}
	}

	log := f.logger.With(zap.String("fetch_id", f.newID()))

	var lastErr error
	for i, c := range candidates {
		if i > 0 {
			prev := candidates[i-1]
			log.Warn("switching candidate",
				zap.String("from", prev.Name),
				zap.String("to", c.Name),
				zap.Error(lastErr))
			if f.onFallback != nil {
				f.onFallback(prev, c, lastErr)
			}
		}

		text, err := f.runWithRetries(ctx, log, c, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		var fe *Error
		if !errors.As(err, &fe) || !fe.Outcome.Recoverable() {
			return "", err
		}
	}

	log.Error("all candidates exhausted", zap.Int("candidates", len(candidates)), zap.Error(lastErr))
	return "", lastErr
}

// runWithRetries calls one candidate up to MaxAttempts times.
// Failures are always returned as *Error.
func (f *Fetcher) runWithRetries(ctx context.Context, log *zap.Logger, c Candidate, prompt string) (string, error) {
	cfg := f.retry.Normalized()
	log = log.With(zap.String("candidate", c.Name), zap.String("model", c.Model))

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		text, err := c.Backend.Generate(ctx, prompt)
		if err == nil {
			log.Info("model response",
				zap.Int("attempt", attempt+1),
				zap.String("response", text))
			return text, nil
		}

		kind := apierr.Classify(err)
		log.Debug("call failed",
			zap.Int("attempt", attempt+1),
			zap.Stringer("kind", kind),
			zap.Error(err))

		switch kind {
		case apierr.KindQuotaExhausted:
			return "", candidateError(c, OutcomeQuotaExhausted, attempt+1, err)

		case apierr.KindServerUnavailable:
			if cfg.IsLastAttempt(attempt) {
				return "", candidateError(c, OutcomeRetriesExhausted, attempt+1, err)
			}
			wait := cfg.Delay(attempt)
			log.Info("retrying after delay",
				zap.Int("attempt", attempt+1),
				zap.Duration("wait", wait))
			if f.onRetry != nil {
				f.onRetry(c, attempt+1, wait, err)
			}
			if sleepErr := f.sleep(ctx, wait); sleepErr != nil {
				return "", candidateError(c, OutcomeFatal, attempt+1, sleepErr)
			}

		default:
			return "", candidateError(c, OutcomeFatal, attempt+1, err)
		}
	}

	// Unreachable: the last attempt always returns above.
	return "", candidateError(c, OutcomeRetriesExhausted, cfg.MaxAttempts, apierr.ErrServerUnavailable)
}

func candidateError(c Candidate, outcome Outcome, attempts int, err error) *Error {
	return &Error{
		Candidate: c.Name,
		Model:     c.Model,
		Outcome:   outcome,
		Attempts:  attempts,
		Err:       err,
	}
}
