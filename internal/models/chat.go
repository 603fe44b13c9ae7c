package models

import "time"

// ChatRole is the author of a chat message. The assistant never stores
// system or tool turns; those are synthesized at request time.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single turn in a conversation. Messages are immutable
// once created and are only ever appended, never edited or reordered.
type ChatMessage struct {
	ID            string    `json:"id"`
	Role          ChatRole  `json:"role"`
	Content       string    `json:"content"`
	TokenEstimate int       `json:"token_estimate"`
	CreatedAt     time.Time `json:"created_at"`
}

// Conversation is one chat thread. SummarizedMessageCount is the boundary
// index up to which history has been folded into Summary: the summary,
// when present, stands in for exactly Messages[0:SummarizedMessageCount].
type Conversation struct {
	ID                     string        `json:"id"`
	Title                  string        `json:"title"`
	Messages               []ChatMessage `json:"messages"`
	Summary                string        `json:"summary,omitempty"`
	SummarizedMessageCount int           `json:"summarized_message_count"`
	CreatedAt              time.Time     `json:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at"`
}

// AISettings holds the user's model configuration.
type AISettings struct {
	APIKey            string `json:"api_key,omitempty"`
	Model             string `json:"model,omitempty"`
	MaxResponseTokens int    `json:"max_response_tokens"`
}

// ClaudeModel describes a selectable model for settings validation and UI.
type ClaudeModel struct {
	Value         string
	Label         string
	ContextWindow int
}

// ClaudeModels are the models the settings service accepts.
var ClaudeModels = []ClaudeModel{
	{Value: "claude-sonnet-4-5-20250929", Label: "Claude Sonnet 4.5", ContextWindow: 200000},
	{Value: "claude-haiku-4-5-20251001", Label: "Claude Haiku 4.5", ContextWindow: 200000},
	{Value: "claude-opus-4-20250514", Label: "Claude Opus 4", ContextWindow: 200000},
}

// DefaultAISettings returns the settings used before the user configures anything.
func DefaultAISettings() AISettings {
	return AISettings{MaxResponseTokens: 4096}
}
