package llm

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

var (
	NewGeminiBackendWithClient = newGeminiBackend
	WithChatCompleter          = withChatCompleter

	ClassifyGeminiError = classifyGeminiError
	ClassifyOpenAIError = classifyOpenAIError
	SentinelForStatus   = sentinelForStatus
)
