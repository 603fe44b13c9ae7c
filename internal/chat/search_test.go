package chat

import (
	"context"
	"testing"

	"github.com/mfeller/vitalog/internal/models"
)

func TestSearchMessages(t *testing.T) {
	store := newFakeStore()
	seedConversation(store,
		msg(models.RoleUser, "how should I pace my marathon training"),
		msg(models.RoleAssistant, "build your weekly mileage gradually"),
		msg(models.RoleUser, "what about strength work"),
	)
	svc := newTestService(store, &mockClient{})

	hits, err := svc.SearchMessages(context.Background(), "marathon", 10)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("hits = %d, want 1", len(hits))
	}
	if hits[0].ConversationID != "conv-1" || hits[0].Role != "user" {
		t.Errorf("hit = %+v", hits[0])
	}
	if hits[0].Score <= 0 {
		t.Error("hits must carry a relevance score")
	}
}

func TestSearchMessagesNoMatches(t *testing.T) {
	store := newFakeStore()
	seedConversation(store, msg(models.RoleUser, "hello"))
	svc := newTestService(store, &mockClient{})

	hits, err := svc.SearchMessages(context.Background(), "quantum", 10)
	if err != nil {
		t.Fatalf("SearchMessages: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %d, want 0", len(hits))
	}
}
