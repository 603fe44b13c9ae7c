package chat

import (
	"context"

	"github.com/mfeller/vitalog/internal/models"
)

// ModelMessage is one role/content pair in a model request.
type ModelMessage struct {
	Role    models.ChatRole
	Content string
}

// ModelRequest is a single stateless request to the language model.
type ModelRequest struct {
	Model     string
	MaxTokens int
	System    string // optional system context, empty to omit
	Messages  []ModelMessage
}

// Usage holds token accounting returned by the provider.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// ModelResponse is a normalized result of one model call. TextBlocks are
// concatenated in order by the caller to form the assistant content.
type ModelResponse struct {
	TextBlocks []string
	Usage      Usage
}

// ModelClient abstracts the remote language model. Implementations map
// transport and API failures to *ModelError.
type ModelClient interface {
	Complete(ctx context.Context, req ModelRequest) (*ModelResponse, error)
}

// Text returns the response's text blocks concatenated in order.
func (r *ModelResponse) Text() string {
	switch len(r.TextBlocks) {
	case 0:
		return ""
	case 1:
		return r.TextBlocks[0]
	}
	var out []byte
	for _, b := range r.TextBlocks {
		out = append(out, b...)
	}
	return string(out)
}
