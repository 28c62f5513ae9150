//go:build !integration

package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
)

func TestRouterRoute_FilterIntentWithPatch(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: "```json\n{\"intent\": \"Filter\", \"replyText\": \"Showing remote roles only.\", \"filters\": {\"workMode\": [\"remote\"]}}\n```"}
	r := NewIntentRouter(chat, "test", "test-model", nil)

	res, err := r.Route(context.Background(), nil, "only remote jobs please")
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != adapter.IntentFilter {
		t.Errorf("Intent = %q, want %q", res.Intent, adapter.IntentFilter)
	}
	if res.Filters == nil || res.Filters.WorkModes == nil || (*res.Filters.WorkModes)[0] != model.WorkModeRemote {
		t.Errorf("expected a workMode patch, got %+v", res.Filters)
	}
	if res.Reply == "" {
		t.Error("expected a reply text")
	}
}

func TestRouterRoute_ClearPayload(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: `{"intent": "filter", "replyText": "Cleared.", "filters": {"clear": true}}`}
	r := NewIntentRouter(chat, "test", "test-model", nil)

	res, err := r.Route(context.Background(), nil, "reset my filters")
	if err != nil {
		t.Fatal(err)
	}
	if res.Filters == nil || !res.Filters.Clear {
		t.Errorf("expected a clear payload, got %+v", res.Filters)
	}
}

func TestRouterRoute_HistoryAndQueryForwarded(t *testing.T) {
	t.Parallel()

	chat := &fakeChat{reply: `{"intent": "search", "replyText": "Searching."}`}
	r := NewIntentRouter(chat, "test", "test-model", nil)

	history := []model.ChatMessage{
		{Role: model.RoleUser, Content: "show me python jobs"},
		{Role: model.RoleAssistant, Content: "Here are python jobs."},
	}
	if _, err := r.Route(context.Background(), history, "now only remote ones"); err != nil {
		t.Fatal(err)
	}
	// system prompt + 2 history turns + the query
	if len(chat.last) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(chat.last))
	}
	if chat.last[0].Role != "system" {
		t.Error("expected the system prompt first")
	}
	if got := chat.last[3]; got.Role != "user" || !strings.Contains(got.Content, "remote") {
		t.Errorf("expected the query last, got %+v", got)
	}
}

func TestRouterRoute_ProviderErrorSurfaces(t *testing.T) {
	t.Parallel()

	provErr := errors.New("timeout")
	r := NewIntentRouter(&fakeChat{err: provErr}, "test", "test-model", nil)
	if _, err := r.Route(context.Background(), nil, "help"); !errors.Is(err, provErr) {
		t.Fatalf("expected the provider error wrapped, got %v", err)
	}
}

func TestRouterRoute_ProseReplyIsAnError(t *testing.T) {
	t.Parallel()

	r := NewIntentRouter(&fakeChat{reply: "Sure, I can help with that!"}, "test", "test-model", nil)
	if _, err := r.Route(context.Background(), nil, "help"); err == nil {
		t.Fatal("expected a parse error for a prose reply")
	}
}
