package fetch

// Exports for testing. These allow black-box tests to inject dependencies
// without modifying the public API.

var (
	WithSleep       = withSleep
	WithIDGenerator = withIDGenerator
)
