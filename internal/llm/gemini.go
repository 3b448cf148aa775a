package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/alnah/go-wotd/internal/apierr"
	"github.com/alnah/go-wotd/internal/fetch"
)

// Gemini model names used by default.
const (
	GeminiProModel   = "gemini-2.5-pro"
	GeminiFlashModel = "gemini-2.5-flash"
)

// contentGenerator is an internal interface for Gemini content generation.
// *genai.Models implements this implicitly.
// This allows injecting mocks in tests.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Compile-time interface compliance check.
var _ fetch.Backend = (*GeminiBackend)(nil)

// GeminiBackend generates text with one Gemini model.
// It makes exactly one API call per Generate; retries belong to the fetcher.
type GeminiBackend struct {
	client contentGenerator
	model  string
}

// NewGeminiBackend creates a backend for model using the Gemini Developer API.
func NewGeminiBackend(ctx context.Context, apiKey, model string) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrEmptyAPIKey)
	}
	if model == "" {
		return nil, fmt.Errorf("gemini: %w", ErrEmptyModel)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return newGeminiBackend(client.Models, model), nil
}

func newGeminiBackend(client contentGenerator, model string) *GeminiBackend {
	return &GeminiBackend{client: client, model: model}
}

// Model returns the model name.
func (b *GeminiBackend) Model() string {
	return b.model
}

// Generate sends prompt as a single user turn and returns the response text.
func (b *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.GenerateContent(ctx, b.model, genai.Text(prompt), nil)
	if err != nil {
		return "", classifyGeminiError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%s returned no candidates: %w", b.model, apierr.ErrEmptyResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%s: %w", b.model, ErrContentBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%s returned no text: %w", b.model, apierr.ErrEmptyResponse)
	}
	return text, nil
}

// classifyGeminiError maps genai API errors to apierr sentinels.
// The genai message already carries the HTTP code and status
// (e.g. "Error 503, Message: ..., Status: UNAVAILABLE"), which is kept.
func classifyGeminiError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return wrapStatus(apiErr.Code, apiErr.Error(), err)
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return wrapStatus(apiErrPtr.Code, apiErrPtr.Error(), err)
	}

	return err
}
