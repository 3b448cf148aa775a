package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates the provider's API key environment variable is not set.
	ErrAPIKeyMissing = errors.New("API key environment variable not set")

	// ErrInvalidDuration indicates a duration string could not be parsed.
	ErrInvalidDuration = errors.New("invalid duration format")

	// ErrInvalidAttempts indicates a non-positive attempt budget.
	ErrInvalidAttempts = errors.New("max attempts out of range")

	// ErrOutputExists indicates the output file already exists.
	ErrOutputExists = errors.New("output file already exists")

	// ErrWordUnavailable indicates no candidate model produced a word of the day.
	ErrWordUnavailable = errors.New("word of the day unavailable")
)
