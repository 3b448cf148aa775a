// Package apierr provides shared error sentinels, failure classification and
// retry budgets for LLM backend clients. Provider-specific errors are mapped
// to these sentinels at the adapter boundary.
//
// Adapters wrap with fmt.Errorf("%s: %w", msg, sentinel).
// Callers check with errors.Is(err, apierr.ErrQuotaExhausted) etc.
package apierr

import "errors"

// Sentinel errors for backend call failures.
var (
	// ErrQuotaExhausted indicates the caller's usage allowance for a backend is
	// used up (HTTP 429, RESOURCE_EXHAUSTED, billing). Retrying the same backend
	// is pointless; switching backend may help.
	ErrQuotaExhausted = errors.New("quota exhausted")

	// ErrServerUnavailable indicates a transient backend-side fault (5xx,
	// overloaded model). Expected to self-resolve.
	ErrServerUnavailable = errors.New("server unavailable")

	// ErrAuthFailed indicates backend authentication failed (invalid key).
	ErrAuthFailed = errors.New("authentication failed")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")

	// ErrEmptyResponse indicates the backend answered without any text.
	ErrEmptyResponse = errors.New("empty response")
)
