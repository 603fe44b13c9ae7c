package chat

import (
	"fmt"

	"github.com/mfeller/vitalog/internal/models"
)

const (
	// messageWindowSize bounds how many raw messages one request carries.
	messageWindowSize = 20
	// tokenWindowSize bounds the summed token estimate of those messages.
	tokenWindowSize = 8000
)

// buildWindow assembles the bounded message list for one model request:
// an optional summary preamble followed by a contiguous suffix of the
// conversation's messages in chronological order. Output size is bounded
// regardless of how long the conversation has grown.
func buildWindow(conv *models.Conversation) []ModelMessage {
	var out []ModelMessage

	// A prior summary is re-anchored as a synthetic exchange instead of
	// re-sending the raw history it stands in for.
	if conv.Summary != "" {
		out = append(out,
			ModelMessage{
				Role:    models.RoleUser,
				Content: fmt.Sprintf("[Previous conversation summary: %s]", conv.Summary),
			},
			ModelMessage{
				Role:    models.RoleAssistant,
				Content: "I understand the context from our previous conversation. How can I help you?",
			},
		)
	}

	// Walk newest to oldest, accumulating while both ceilings hold. The
	// most recent message is always included even if it alone exceeds the
	// token ceiling: the budget bounds growth, not individual messages.
	start := len(conv.Messages)
	tokens := 0
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		msg := conv.Messages[i]
		count := len(conv.Messages) - start
		if count >= messageWindowSize {
			break
		}
		if count > 0 && tokens+msg.TokenEstimate > tokenWindowSize {
			break
		}
		start = i
		tokens += msg.TokenEstimate
	}

	for _, msg := range conv.Messages[start:] {
		out = append(out, ModelMessage{Role: msg.Role, Content: msg.Content})
	}

	return out
}
