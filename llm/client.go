// Package llm provides hand-rolled HTTP clients for hosted model APIs.
package llm

import "context"

// Client generates prose from a system/user prompt pair.
type Client interface {
	Chat(ctx context.Context, model string, system, user string) (*ChatResponse, error)
}

// EmbeddingClient converts text into fixed-length embedding vectors.
// Failures satisfy errors.Is(err, core.ErrProviderUnavailable).
type EmbeddingClient interface {
	Embed(ctx context.Context, model, input string) (*EmbeddingResponse, error)
	EmbedBatch(ctx context.Context, model string, inputs []string) ([]EmbeddingResponse, error)
}

// ClientConfig configures an HTTP API client.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout int // seconds; 0 means the default
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{Timeout: 60}
}
