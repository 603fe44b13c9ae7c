package chat

import (
	"strings"
	"testing"

	"github.com/mfeller/vitalog/internal/models"
)

func convWith(summary string, msgs ...models.ChatMessage) *models.Conversation {
	return &models.Conversation{ID: "c", Summary: summary, Messages: msgs}
}

func sized(role models.ChatRole, content string, tokens int) models.ChatMessage {
	return models.ChatMessage{Role: role, Content: content, TokenEstimate: tokens}
}

func TestBuildWindowEmptyConversation(t *testing.T) {
	if got := buildWindow(convWith("")); len(got) != 0 {
		t.Errorf("window for empty conversation has %d messages", len(got))
	}
}

func TestBuildWindowShortConversation(t *testing.T) {
	conv := convWith("",
		sized(models.RoleUser, "a", 1),
		sized(models.RoleAssistant, "b", 1),
		sized(models.RoleUser, "c", 1),
	)
	got := buildWindow(conv)
	if len(got) != 3 {
		t.Fatalf("window has %d messages, want all 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].Content != want {
			t.Errorf("window[%d] = %q, want %q", i, got[i].Content, want)
		}
	}
}

func TestBuildWindowMessageCap(t *testing.T) {
	var msgs []models.ChatMessage
	for i := 0; i < 30; i++ {
		msgs = append(msgs, sized(models.RoleUser, strings.Repeat("x", i+1), 1))
	}
	got := buildWindow(convWith("", msgs...))
	if len(got) != messageWindowSize {
		t.Fatalf("window has %d messages, want %d", len(got), messageWindowSize)
	}
	// The window is the most recent contiguous suffix.
	if got[0].Content != msgs[10].Content || got[len(got)-1].Content != msgs[29].Content {
		t.Error("window is not the newest suffix")
	}
}

func TestBuildWindowTokenCap(t *testing.T) {
	var msgs []models.ChatMessage
	for i := 0; i < 20; i++ {
		msgs = append(msgs, sized(models.RoleUser, "m", 1000))
	}
	got := buildWindow(convWith("", msgs...))
	if len(got) != 8 {
		t.Errorf("window has %d messages, want 8 under the token budget", len(got))
	}
}

func TestBuildWindowOversizedNewestMessageIncluded(t *testing.T) {
	conv := convWith("",
		sized(models.RoleUser, "old", 10),
		sized(models.RoleUser, "huge", tokenWindowSize+500),
	)
	got := buildWindow(conv)
	if len(got) != 1 || got[0].Content != "huge" {
		t.Fatalf("window = %v, want just the newest message", got)
	}
}

func TestBuildWindowSummaryPreamble(t *testing.T) {
	conv := convWith("we discussed marathon training",
		sized(models.RoleUser, "next question", 2),
	)
	got := buildWindow(conv)
	if len(got) != 3 {
		t.Fatalf("window has %d messages, want preamble + 1", len(got))
	}
	if got[0].Role != models.RoleUser || !strings.Contains(got[0].Content, "we discussed marathon training") {
		t.Errorf("preamble user turn = %+v", got[0])
	}
	if got[1].Role != models.RoleAssistant {
		t.Errorf("preamble ack role = %q", got[1].Role)
	}
	if got[2].Content != "next question" {
		t.Errorf("window tail = %q", got[2].Content)
	}
}

func TestBuildWindowNoPreambleWithoutSummary(t *testing.T) {
	got := buildWindow(convWith("", sized(models.RoleUser, "q", 1)))
	if len(got) != 1 {
		t.Fatalf("window has %d messages, want 1", len(got))
	}
}
