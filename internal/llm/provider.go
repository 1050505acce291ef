package llm

import (
	"context"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a single-turn prompt and returns the model's text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is one single-turn prompt
type CompletionRequest struct {
	Prompt string

	// System is an optional system instruction
	System string

	// Model overrides the provider's configured model when set
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature defaults to 0 for reproducible headlines and verdicts
	Temperature float64
}

// CompletionResponse contains the model output
type CompletionResponse struct {
	// Text is the trimmed response text
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens when a request leaves it unset
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "anthropic",
		Model:     "claude-sonnet-4-20250514",
		Timeout:   60,
		MaxTokens: 1024,
	}
}

func (c Config) model(req CompletionRequest, fallback string) string {
	if req.Model != "" {
		return req.Model
	}
	if c.Model != "" {
		return c.Model
	}
	return fallback
}

func (c Config) maxTokens(req CompletionRequest) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 1024
}
