package fetch

import "context"

// Backend generates text for a prompt. Implementations return errors that
// apierr.Classify can map: adapters should wrap apierr sentinels, but plain
// messages carrying status markers work too.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BackendFunc adapts a function to the Backend interface.
type BackendFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f(ctx, prompt).
func (f BackendFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Candidate is one backend the fetcher may call, in priority order.
type Candidate struct {
	// Name identifies the candidate in logs and errors ("primary", "fallback").
	Name string
	// Model is a diagnostic label for the model behind the backend.
	Model string
	// Backend performs the call.
	Backend Backend
}

// Compile-time interface compliance check.
var _ Backend = BackendFunc(nil)
