package chat

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mfeller/vitalog/internal/models"
)

// Store is the durable document store the conversation service writes
// through. Every Load returns fresh state; Save is a whole-document
// replace. The service never holds a lock across a model call; it
// re-reads immediately before each write instead.
type Store interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

// SettingsProvider supplies the user's AI configuration.
type SettingsProvider interface {
	Settings(ctx context.Context) (models.AISettings, error)
}

// ContextProvider builds the system prompt embedded in each request.
type ContextProvider interface {
	BuildSystemPrompt(ctx context.Context) (string, error)
}

// Service orchestrates conversations: persisting turns, assembling
// bounded context windows, calling the model, and scheduling summary
// compaction of older history.
type Service struct {
	store    Store
	client   ModelClient
	settings SettingsProvider
	sysctx   ContextProvider
	logger   *log.Logger
}

// NewService creates a conversation service. logger may be nil.
func NewService(store Store, client ModelClient, settings SettingsProvider, sysctx ContextProvider, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		store:    store,
		client:   client,
		settings: settings,
		sysctx:   sysctx,
		logger:   logger,
	}
}

// CreateConversation starts a new empty conversation and persists it.
// The title defaults to the current date when empty.
func (s *Service) CreateConversation(ctx context.Context, title string) (*models.Conversation, error) {
	now := time.Now().UTC()
	if title == "" {
		title = "Chat — " + now.Format("Jan 2, 2006")
	}

	conv := models.Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		Messages:  []models.ChatMessage{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Conversations = append(doc.Conversations, conv)
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns all conversations, most recently active first.
func (s *Service) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	convs := make([]models.Conversation, len(doc.Conversations))
	copy(convs, doc.Conversations)
	sort.Slice(convs, func(i, j int) bool {
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

// GetConversation returns one conversation or ErrNotFound.
func (s *Service) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findConversation(doc, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	conv := doc.Conversations[idx]
	return &conv, nil
}

// DeleteConversation removes a conversation whole. It reports false when
// the id did not exist. There are no cascading side effects.
func (s *Service) DeleteConversation(ctx context.Context, id string) (bool, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return false, err
	}
	idx := findConversation(doc, id)
	if idx < 0 {
		return false, nil
	}
	doc.Conversations = append(doc.Conversations[:idx], doc.Conversations[idx+1:]...)
	if err := s.store.Save(ctx, doc); err != nil {
		return false, err
	}
	return true, nil
}

// SendMessage runs one exchange: persist the user turn, build a bounded
// request, call the model, persist the assistant turn, then compact older
// history best-effort. The user message is durably saved before any
// network activity, so a failed send never drops what the user typed.
func (s *Service) SendMessage(ctx context.Context, conversationID, text string) (*models.ChatMessage, error) {
	now := time.Now().UTC()
	userMsg := models.ChatMessage{
		ID:            uuid.NewString(),
		Role:          models.RoleUser,
		Content:       text,
		TokenEstimate: EstimateTokens(text),
		CreatedAt:     now,
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := findConversation(doc, conversationID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	conv := doc.Conversations[idx]
	conv.Messages = append(conv.Messages, userMsg)
	conv.UpdatedAt = now
	doc.Conversations[idx] = conv

	// Persist the user turn before touching the network.
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}

	settings, err := s.settings.Settings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	model := settings.Model
	if model == "" {
		model = models.ClaudeModels[0].Value
	}
	maxTokens := settings.MaxResponseTokens
	if maxTokens <= 0 {
		maxTokens = models.DefaultAISettings().MaxResponseTokens
	}

	system, err := s.sysctx.BuildSystemPrompt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build system context: %w", err)
	}

	resp, err := s.client.Complete(ctx, ModelRequest{
		Model:     model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  buildWindow(&conv),
	})
	if err != nil {
		// The user message stays persisted; no assistant message is appended.
		return nil, err
	}

	assistantText := resp.Text()
	assistantMsg := models.ChatMessage{
		ID:            uuid.NewString(),
		Role:          models.RoleAssistant,
		Content:       assistantText,
		TokenEstimate: EstimateTokens(assistantText),
		CreatedAt:     time.Now().UTC(),
	}

	// Re-read instead of reusing the pre-call snapshot: a concurrent
	// writer that committed during the round trip keeps its write, and a
	// conversation deleted mid-flight is not resurrected.
	fresh, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx = findConversation(fresh, conversationID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	freshConv := fresh.Conversations[idx]
	freshConv.Messages = append(freshConv.Messages, assistantMsg)
	freshConv.UpdatedAt = assistantMsg.CreatedAt
	fresh.Conversations[idx] = freshConv

	if err := s.store.Save(ctx, fresh); err != nil {
		return nil, err
	}

	// Summarization is background compaction, not part of the turn: the
	// user already has their reply, so failures are logged and swallowed.
	if err := s.maybeSummarize(ctx, conversationID, freshConv, model, maxTokens); err != nil {
		s.logger.Printf("summarization failed for conversation %s: %v", conversationID, err)
	}

	return &assistantMsg, nil
}

func findConversation(doc *models.Document, id string) int {
	for i := range doc.Conversations {
		if doc.Conversations[i].ID == id {
			return i
		}
	}
	return -1
}
