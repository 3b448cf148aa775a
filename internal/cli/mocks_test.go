package cli

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/alnah/go-wotd/internal/config"
	"github.com/alnah/go-wotd/internal/fetch"
)

// wordReply is the canonical successful model answer used by tests.
const wordReply = "Słówko dnia na dziś:\n\n### Haus 🇩🇪"

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Defaults(), nil
}

func (m *mockConfigLoader) LoadCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadCalls
}

// ---------------------------------------------------------------------------
// Mock Backend
// ---------------------------------------------------------------------------

type reply struct {
	text string
	err  error
}

// mockBackend replays its replies in order, repeating the last one.
type mockBackend struct {
	replies []reply

	mu      sync.Mutex
	prompts []string
}

func (m *mockBackend) Generate(_ context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	if len(m.replies) == 0 {
		return wordReply, nil
	}
	if idx >= len(m.replies) {
		idx = len(m.replies) - 1
	}
	return m.replies[idx].text, m.replies[idx].err
}

func (m *mockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockBackend) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// ---------------------------------------------------------------------------
// Mock BackendFactory
// ---------------------------------------------------------------------------

type backendCall struct {
	Provider Provider
	APIKey   string
	Model    string
}

type mockBackendFactory struct {
	// Backends maps a model name to its backend. Unknown models get a
	// backend answering wordReply.
	Backends map[string]*mockBackend
	Err      error

	mu    sync.Mutex
	calls []backendCall
}

func (m *mockBackendFactory) NewBackend(_ context.Context, provider Provider, apiKey, model string) (fetch.Backend, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, backendCall{Provider: provider, APIKey: apiKey, Model: model})
	if m.Err != nil {
		return nil, m.Err
	}
	if b, ok := m.Backends[model]; ok {
		return b, nil
	}
	return &mockBackend{}, nil
}

func (m *mockBackendFactory) Calls() []backendCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]backendCall(nil), m.calls...)
}

// ---------------------------------------------------------------------------
// Mock LoggerFactory
// ---------------------------------------------------------------------------

type mockLoggerFactory struct {
	Logger *zap.Logger
	Err    error

	mu     sync.Mutex
	levels []string
}

func (m *mockLoggerFactory) NewLogger(_ io.Writer, level string) (*zap.Logger, error) {
	m.mu.Lock()
	m.levels = append(m.levels, level)
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Logger != nil {
		return m.Logger, nil
	}
	return zap.NewNop(), nil
}

func (m *mockLoggerFactory) Levels() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.levels...)
}
