package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mfeller/vitalog/internal/models"
)

const (
	// summarizeSlack keeps the scheduler from firing on every turn right
	// at the window boundary.
	summarizeSlack = 5

	// summaryMaxTokens caps the summarization response independently of
	// the conversation's configured budget: a summary must stay short.
	summaryMaxTokens = 1024

	summarizationPrompt = "Summarize this conversation preserving key facts, goals, decisions, and specific numbers. Keep under 200 words."
)

// summarizeRange computes the message range to compress, or ok=false when
// not enough unsummarized history has accumulated. The range covers
// everything that has fallen outside the current window and has not yet
// been folded into the running summary.
func summarizeRange(conv *models.Conversation) (lo, hi int, ok bool) {
	total := len(conv.Messages)
	unsummarized := total - conv.SummarizedMessageCount
	if unsummarized <= messageWindowSize+summarizeSlack {
		return 0, 0, false
	}

	lo = conv.SummarizedMessageCount
	hi = total - messageWindowSize
	if hi <= lo {
		return 0, 0, false
	}
	return lo, hi, true
}

// renderTranscript flattens messages into "role: content" lines.
func renderTranscript(msgs []models.ChatMessage) string {
	var b strings.Builder
	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(string(m.Role))
		b.WriteString(": ")
		b.WriteString(m.Content)
	}
	return b.String()
}

// maybeSummarize compresses older history into the running summary when
// enough has accumulated. Each call folds the prior summary into its
// input, so the result replaces the old summary rather than extending it.
// Re-invoking with no new messages is a no-op: the trigger re-evaluates
// against the updated summarized count.
func (s *Service) maybeSummarize(ctx context.Context, conversationID string, conv models.Conversation, model string, maxTokens int) error {
	lo, hi, ok := summarizeRange(&conv)
	if !ok {
		return nil
	}

	var prompt strings.Builder
	prompt.WriteString(summarizationPrompt)
	prompt.WriteString("\n\n")
	if conv.Summary != "" {
		prompt.WriteString("Previous summary: ")
		prompt.WriteString(conv.Summary)
		prompt.WriteString("\n\nNew messages:\n")
	}
	prompt.WriteString(renderTranscript(conv.Messages[lo:hi]))

	budget := maxTokens
	if budget <= 0 || budget > summaryMaxTokens {
		budget = summaryMaxTokens
	}

	resp, err := s.client.Complete(ctx, ModelRequest{
		Model:     model,
		MaxTokens: budget,
		Messages: []ModelMessage{
			{Role: models.RoleUser, Content: prompt.String()},
		},
	})
	if err != nil {
		return fmt.Errorf("summarization call failed: %w", err)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	idx := findConversation(doc, conversationID)
	if idx < 0 {
		// Deleted while summarizing; nothing to update.
		return nil
	}

	c := &doc.Conversations[idx]
	if hi <= c.SummarizedMessageCount {
		// A concurrent compaction already covered this range; the
		// summarized count never moves backwards.
		return nil
	}
	c.Summary = resp.Text()
	c.SummarizedMessageCount = hi
	c.UpdatedAt = time.Now().UTC()

	return s.store.Save(ctx, doc)
}
