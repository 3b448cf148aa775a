package cli

import (
	"errors"
	"fmt"

	"github.com/alnah/go-wotd/internal/llm"
)

// Provider name constants.
const (
	ProviderGemini   = "gemini"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
)

// Provider represents a validated LLM provider.
// Zero value is invalid and must not be used.
// Use ParseProvider to create from user input, or the pre-parsed constants.
type Provider struct {
	name string
}

// Compile-time interface compliance check.
var _ fmt.Stringer = Provider{}

// ErrInvalidProvider indicates an invalid provider name was specified.
var ErrInvalidProvider = errors.New("invalid provider")

// Pre-parsed provider constants for use in code.
var (
	GeminiProvider   = Provider{name: ProviderGemini}
	OpenAIProvider   = Provider{name: ProviderOpenAI}
	DeepSeekProvider = Provider{name: ProviderDeepSeek}
)

type providerInfo struct {
	keyEnvs       []string
	primaryModel  string
	fallbackModel string
}

var providers = map[string]providerInfo{
	ProviderGemini: {
		keyEnvs:       []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"},
		primaryModel:  llm.GeminiProModel,
		fallbackModel: llm.GeminiFlashModel,
	},
	ProviderOpenAI: {
		keyEnvs:       []string{"OPENAI_API_KEY"},
		primaryModel:  llm.OpenAIPrimaryModel,
		fallbackModel: llm.OpenAIFallbackModel,
	},
	ProviderDeepSeek: {
		keyEnvs:       []string{"DEEPSEEK_API_KEY"},
		primaryModel:  llm.DeepSeekPrimaryModel,
		fallbackModel: llm.DeepSeekFallbackModel,
	},
}

// ParseProvider validates and parses a provider name string.
// Returns ErrInvalidProvider if the name is not recognized.
func ParseProvider(s string) (Provider, error) {
	if s == "" {
		return Provider{}, fmt.Errorf("provider cannot be empty: %w", ErrInvalidProvider)
	}
	if _, ok := providers[s]; !ok {
		return Provider{}, fmt.Errorf("unknown provider %q (use 'gemini', 'openai' or 'deepseek'): %w", s, ErrInvalidProvider)
	}
	return Provider{name: s}, nil
}

// MustParseProvider parses a provider name, panicking if invalid.
// Use only for compile-time constants and tests.
func MustParseProvider(s string) Provider {
	p, err := ParseProvider(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the provider name string.
// Returns empty string for zero value.
func (p Provider) String() string {
	return p.name
}

// IsZero returns true if this is the zero value (no provider set).
func (p Provider) IsZero() bool {
	return p.name == ""
}

// OrDefault returns the provider, or GeminiProvider if zero.
func (p Provider) OrDefault() Provider {
	if p.IsZero() {
		return GeminiProvider
	}
	return p
}

// APIKeyEnvs returns the environment variables holding the provider's API
// key, in lookup order.
func (p Provider) APIKeyEnvs() []string {
	return providers[p.OrDefault().name].keyEnvs
}

// DefaultModels returns the provider's primary and fallback model names.
func (p Provider) DefaultModels() (primary, fallback string) {
	info := providers[p.OrDefault().name]
	return info.primaryModel, info.fallbackModel
}
