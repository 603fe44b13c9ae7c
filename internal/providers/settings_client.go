package providers

import (
	"context"

	"github.com/mfeller/vitalog/internal/chat"
	"github.com/mfeller/vitalog/internal/models"
)

// KeySource supplies the current AI settings. The stored key can change
// between calls, so the client resolves it per request.
type KeySource interface {
	Settings(ctx context.Context) (models.AISettings, error)
}

// SettingsClient is a chat.ModelClient that reads the API key from
// settings on every call instead of binding it at construction.
type SettingsClient struct {
	source KeySource
}

// NewSettingsClient creates a client backed by the given settings source.
func NewSettingsClient(source KeySource) *SettingsClient {
	return &SettingsClient{source: source}
}

// Complete resolves the current key and delegates to the Anthropic client.
func (c *SettingsClient) Complete(ctx context.Context, req chat.ModelRequest) (*chat.ModelResponse, error) {
	cfg, err := c.source.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, chat.ErrNoAPIKey
	}
	return NewAnthropicClient(cfg.APIKey).Complete(ctx, req)
}
