// Package providers implements chat.ModelClient against real model APIs.
package providers

import (
	"context"
	"errors"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/mfeller/vitalog/internal/chat"
	"github.com/mfeller/vitalog/internal/models"
)

// AnthropicClient implements chat.ModelClient using the Anthropic SDK.
type AnthropicClient struct {
	client *anthropic.Client
}

// NewAnthropicClient creates a client for the given API key.
func NewAnthropicClient(apiKey string) *AnthropicClient {
	return &AnthropicClient{client: anthropic.NewClient(apiKey)}
}

// Complete sends one stateless messages request and normalizes the
// response. API and transport failures come back as *chat.ModelError.
func (c *AnthropicClient) Complete(ctx context.Context, req chat.ModelRequest) (*chat.ModelResponse, error) {
	msgs := make([]anthropic.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		role := anthropic.RoleUser
		if m.Role == models.RoleAssistant {
			role = anthropic.RoleAssistant
		}
		msgs = append(msgs, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(m.Content)},
		})
	}

	areq := anthropic.MessagesRequest{
		Model:     anthropic.Model(req.Model),
		Messages:  msgs,
		MaxTokens: req.MaxTokens,
	}
	if req.System != "" {
		areq.MultiSystem = []anthropic.MessageSystemPart{{Type: "text", Text: req.System}}
	}

	resp, err := c.client.CreateMessages(ctx, areq)
	if err != nil {
		return nil, mapError(err)
	}

	var blocks []string
	for _, block := range resp.Content {
		if block.Type == anthropic.MessagesContentTypeText && block.Text != nil {
			blocks = append(blocks, *block.Text)
		}
	}

	return &chat.ModelResponse{
		TextBlocks: blocks,
		Usage: chat.Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}, nil
}

// mapError translates SDK errors into the typed taxonomy the chat core
// propagates to callers.
func mapError(err error) error {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		kind := chat.KindUnknown
		switch apiErr.Type {
		case "authentication_error", "permission_error":
			kind = chat.KindAuthentication
		case "rate_limit_error":
			kind = chat.KindRateLimited
		case "invalid_request_error", "not_found_error", "request_too_large":
			kind = chat.KindBadRequest
		case "overloaded_error", "api_error":
			kind = chat.KindServerUnavailable
		}
		return &chat.ModelError{Kind: kind, Message: apiErr.Message, Err: err}
	}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		return &chat.ModelError{
			Kind:       chat.ClassifyStatus(reqErr.StatusCode),
			StatusCode: reqErr.StatusCode,
			Message:    reqErr.Error(),
			Err:        err,
		}
	}

	// Transport-level failure (DNS, connection reset, timeout).
	return &chat.ModelError{Kind: chat.KindUnknown, Message: err.Error(), Err: err}
}
