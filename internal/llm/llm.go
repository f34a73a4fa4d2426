package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts generative providers for keyword content suggestions.
type Client interface {
	GenerateContent(ctx context.Context, input ContentInput) (json.RawMessage, error)
}

// ContentInput captures the inputs needed to generate content suggestions.
type ContentInput struct {
	Keyword       string
	Model         string
	PromptVersion string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not configured")

// PlaceholderClient is used when no provider is configured. Every call fails,
// so analyses fall back to templated content.
type PlaceholderClient struct{}

// GenerateContent returns ErrNotImplemented.
func (PlaceholderClient) GenerateContent(ctx context.Context, input ContentInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}
