package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-wotd/internal/config"
	"github.com/alnah/go-wotd/internal/fetch"
	"github.com/alnah/go-wotd/internal/llm"
	"github.com/alnah/go-wotd/internal/logging"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	ConfigLoader   ConfigLoader
	BackendFactory BackendFactory
	LoggerFactory  LoggerFactory
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// BackendFactory creates the model backend for one candidate.
type BackendFactory interface {
	NewBackend(ctx context.Context, provider Provider, apiKey, model string) (fetch.Backend, error)
}

// LoggerFactory creates the diagnostics logger.
type LoggerFactory interface {
	NewLogger(w io.Writer, level string) (*zap.Logger, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithBackendFactory sets the backend factory.
func WithBackendFactory(f BackendFactory) EnvOption {
	return func(e *Env) {
		e.BackendFactory = f
	}
}

// WithLoggerFactory sets the logger factory.
func WithLoggerFactory(f LoggerFactory) EnvOption {
	return func(e *Env) {
		e.LoggerFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Getenv:         os.Getenv,
		Now:            time.Now,
		ConfigLoader:   &defaultConfigLoader{},
		BackendFactory: &defaultBackendFactory{},
		LoggerFactory:  &defaultLoggerFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultBackendFactory implements BackendFactory with the llm adapters.
type defaultBackendFactory struct{}

func (defaultBackendFactory) NewBackend(ctx context.Context, provider Provider, apiKey, model string) (fetch.Backend, error) {
	switch provider.OrDefault() {
	case GeminiProvider:
		b, err := llm.NewGeminiBackend(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return b, nil
	case OpenAIProvider:
		b, err := llm.NewOpenAIBackend(apiKey, model)
		if err != nil {
			return nil, err
		}
		return b, nil
	case DeepSeekProvider:
		b, err := llm.NewDeepSeekBackend(apiKey, model)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown provider %q: %w", provider, ErrInvalidProvider)
	}
}

// defaultLoggerFactory implements LoggerFactory with the logging package.
type defaultLoggerFactory struct{}

func (defaultLoggerFactory) NewLogger(w io.Writer, level string) (*zap.Logger, error) {
	return logging.New(w, level)
}
