package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/alnah/go-wotd/internal/apierr"
	"github.com/alnah/go-wotd/internal/fetch"
)

// OpenAI-compatible model names used by default.
const (
	OpenAIPrimaryModel    = "gpt-4o"
	OpenAIFallbackModel   = "gpt-4o-mini"
	DeepSeekPrimaryModel  = "deepseek-reasoner"
	DeepSeekFallbackModel = "deepseek-chat"

	// DeepSeekBaseURL is DeepSeek's OpenAI-compatible endpoint.
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
)

// chatCompleter is an internal interface for OpenAI chat completion.
// *openai.Client implements this implicitly.
// This allows injecting mocks in tests.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Compile-time interface compliance check.
var _ fetch.Backend = (*OpenAIBackend)(nil)

// OpenAIBackend generates text with one model of an OpenAI-compatible API
// (OpenAI itself or DeepSeek).
type OpenAIBackend struct {
	client  chatCompleter
	model   string
	baseURL string
}

// OpenAIOption configures an OpenAIBackend.
type OpenAIOption func(*OpenAIBackend)

// WithBaseURL sets a custom base URL (for proxies, DeepSeek, or testing).
func WithBaseURL(url string) OpenAIOption {
	return func(b *OpenAIBackend) {
		b.baseURL = strings.TrimSuffix(url, "/")
	}
}

// withChatCompleter sets a custom chat completer (for testing).
func withChatCompleter(cc chatCompleter) OpenAIOption {
	return func(b *OpenAIBackend) {
		b.client = cc
	}
}

// NewOpenAIBackend creates a backend for model.
// The HTTP client is created after options are applied (base URL may be customized).
func NewOpenAIBackend(apiKey, model string, opts ...OpenAIOption) (*OpenAIBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrEmptyAPIKey)
	}
	if model == "" {
		return nil, fmt.Errorf("openai: %w", ErrEmptyModel)
	}

	b := &OpenAIBackend{model: model}
	for _, opt := range opts {
		opt(b)
	}

	if b.client == nil {
		cfg := openai.DefaultConfig(apiKey)
		if b.baseURL != "" {
			cfg.BaseURL = b.baseURL
		}
		b.client = openai.NewClientWithConfig(cfg)
	}
	return b, nil
}

// NewDeepSeekBackend creates an OpenAIBackend pointed at DeepSeek.
func NewDeepSeekBackend(apiKey, model string, opts ...OpenAIOption) (*OpenAIBackend, error) {
	return NewOpenAIBackend(apiKey, model, append([]OpenAIOption{WithBaseURL(DeepSeekBaseURL)}, opts...)...)
}

// Model returns the model name.
func (b *OpenAIBackend) Model() string {
	return b.model
}

// Generate sends prompt as a single user message and returns the reply.
func (b *OpenAIBackend) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: b.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := b.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices: %w", b.model, apierr.ErrEmptyResponse)
	}
	if resp.Choices[0].FinishReason == openai.FinishReasonContentFilter {
		return "", fmt.Errorf("%s: %w", b.model, ErrContentBlocked)
	}

	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s returned no text: %w", b.model, apierr.ErrEmptyResponse)
	}
	return text, nil
}

// classifyOpenAIError maps go-openai errors to apierr sentinels.
// Uses errors.As for typed API errors; untyped errors pass through.
func classifyOpenAIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return wrapStatus(apiErr.HTTPStatusCode, apiErr.Error(), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return wrapStatus(reqErr.HTTPStatusCode, reqErr.Error(), err)
	}

	return err
}
