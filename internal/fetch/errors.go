package fetch

import (
	"errors"
	"fmt"

	"github.com/alnah/go-wotd/internal/apierr"
)

// Outcome is the terminal result of one candidate's retry loop.
type Outcome int

const (
	// OutcomeQuotaExhausted: the candidate's quota was hit; the loop stopped
	// after that single call.
	OutcomeQuotaExhausted Outcome = iota + 1
	// OutcomeRetriesExhausted: the server stayed unavailable for the whole
	// retry budget.
	OutcomeRetriesExhausted
	// OutcomeFatal: a non-retryable failure; no further candidate is tried.
	OutcomeFatal
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeQuotaExhausted:
		return "quota exhausted"
	case OutcomeRetriesExhausted:
		return "retries exhausted"
	case OutcomeFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Recoverable reports whether the next candidate should be tried.
func (o Outcome) Recoverable() bool {
	return o == OutcomeQuotaExhausted || o == OutcomeRetriesExhausted
}

var (
	// ErrNoCandidates indicates Fetch was called without any candidate.
	ErrNoCandidates = errors.New("no candidates configured")

	// ErrRetriesExhausted matches an *Error with OutcomeRetriesExhausted.
	ErrRetriesExhausted = errors.New("retries exhausted")

	// ErrFatal matches an *Error with OutcomeFatal.
	ErrFatal = errors.New("non-retryable failure")
)

// Error is the failure of one candidate. The original backend error is kept
// as the cause.
type Error struct {
	Candidate string
	Model     string
	Outcome   Outcome
	Attempts  int
	Err       error
}

func (e *Error) Error() string {
	name := e.Candidate
	if e.Model != "" {
		name = fmt.Sprintf("%s (%s)", e.Candidate, e.Model)
	}
	if e.Attempts > 1 {
		return fmt.Sprintf("%s: %s after %d attempts: %v", name, e.Outcome, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", name, e.Outcome, e.Err)
}

// Unwrap returns the backend error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel that corresponds to the outcome, so callers can test
// errors.Is(err, fetch.ErrRetriesExhausted) without caring about the cause.
func (e *Error) Is(target error) bool {
	switch target {
	case apierr.ErrQuotaExhausted:
		return e.Outcome == OutcomeQuotaExhausted
	case ErrRetriesExhausted:
		return e.Outcome == OutcomeRetriesExhausted
	case ErrFatal:
		return e.Outcome == OutcomeFatal
	}
	return false
}
