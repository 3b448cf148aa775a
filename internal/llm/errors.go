package llm

import "errors"

var (
	// ErrEmptyAPIKey indicates that the API key was not provided.
	ErrEmptyAPIKey = errors.New("API key is required")

	// ErrEmptyModel indicates that no model name was provided.
	ErrEmptyModel = errors.New("model name is required")

	// ErrContentBlocked indicates the model refused to answer (safety filters).
	ErrContentBlocked = errors.New("content blocked by safety filters")
)
