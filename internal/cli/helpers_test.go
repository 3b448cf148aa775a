package cli

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/alnah/go-wotd/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	stdout        *syncBuffer
	stderr        *syncBuffer
	configLoader  *mockConfigLoader
	backends      *mockBackendFactory
	loggerFactory *mockLoggerFactory
}

func newTestMocks() *testMocks {
	return &testMocks{
		stdout:        &syncBuffer{},
		stderr:        &syncBuffer{},
		configLoader:  &mockConfigLoader{},
		backends:      &mockBackendFactory{},
		loggerFactory: &mockLoggerFactory{},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	getenv func(string) string
	now    func() time.Time
	mocks  *testMocks
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) {
		o.getenv = fn
	}
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *testMocks) {
	options := &testEnvOptions{
		getenv: defaultTestEnv,
		now:    fixedTime(time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC)),
		mocks:  newTestMocks(),
	}

	for _, opt := range opts {
		opt(options)
	}

	env := &Env{
		Stdout:         options.mocks.stdout,
		Stderr:         options.mocks.stderr,
		Getenv:         options.getenv,
		Now:            options.now,
		ConfigLoader:   options.mocks.configLoader,
		BackendFactory: options.mocks.backends,
		LoggerFactory:  options.mocks.loggerFactory,
	}

	return env, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// defaultTestEnv returns an API key for every provider.
func defaultTestEnv(key string) string {
	switch key {
	case "GEMINI_API_KEY":
		return "test-gemini-key"
	case "OPENAI_API_KEY":
		return "test-openai-key"
	case "DEEPSEEK_API_KEY":
		return "test-deepseek-key"
	default:
		return ""
	}
}

// configWith returns a ConfigLoader serving defaults modified by mutate.
func configWith(mutate func(*config.Config)) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			cfg := config.Defaults()
			mutate(&cfg)
			return cfg, nil
		},
	}
}

// flagsSet returns a changed func reporting the given flag names as set.
func flagsSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}
