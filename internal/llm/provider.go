package llm

import "context"

// Provider defines the interface for language-understanding backends.
// Claim extraction and stance classification both talk to the oracle through
// this interface; nothing in the scoring logic depends on which provider is
// configured.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one prompt and returns the raw model output
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one oracle call.
type CompletionRequest struct {
	// System is the system prompt framing the task
	System string

	// Prompt is the user prompt
	Prompt string

	// Model overrides the configured model for this call (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling randomness
	Temperature float64

	// JSONResponse asks the provider for a JSON object response where the
	// backend supports enforcing it
	JSONResponse bool
}

// CompletionResponse contains the oracle's raw output.
type CompletionResponse struct {
	// Text is the model output, whitespace-trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption where the backend reports it
	TokensUsed int
}

// Config holds oracle provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:  "",
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}
