package llm

import "context"

// Provider abstracts a chat-completion backend. Implementations own the
// protocol details: request formatting, authentication, response parsing.
type Provider interface {
	// Complete sends a chat completion request and returns the full response.
	Complete(ctx context.Context, messages []Message, tools []Tool) (*Response, error)

	// Stream sends a chat completion request and returns a channel of
	// incremental deltas, closed when the response is complete.
	Stream(ctx context.Context, messages []Message, tools []Tool) (<-chan Delta, error)
}

// Config holds common provider configuration.
type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Configured reports whether the config names a reachable endpoint and
// model. Used by capability probes, which must never fail hard.
func (c *Config) Configured() bool {
	return c != nil && c.BaseURL != "" && c.Model != ""
}
