package adapter

import (
	"context"

	"jobsearch-assistant/internal/domain/model"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Usage for a single chat call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatClient is the port for raw LLM chat. Both the scorer and the
// assistant router are built on top of it.
type ChatClient interface {
	// Chat returns only the assistant text.
	Chat(ctx context.Context, model string, messages []Message) (string, error)

	// ChatWithUsage returns assistant text + usage as reported by the provider.
	ChatWithUsage(ctx context.Context, model string, messages []Message) (string, Usage, error)
}

// Scorer is the scoring collaborator: given a resume and a job
// description it judges the match. resumeText may be empty; the
// implementation must still return a (low) score rather than fail.
type Scorer interface {
	Score(ctx context.Context, resumeText, jobDescription string) (model.MatchResult, error)
}

// Assistant intents.
const (
	IntentSearch = "search"
	IntentFilter = "filter"
	IntentHelp   = "help"
)

// IntentResult is the assistant collaborator's classification of one
// user utterance. Filters is set only for filter intents.
type IntentResult struct {
	Intent  string             `json:"intent"`
	Filters *model.FilterPatch `json:"filters,omitempty"`
	Reply   string             `json:"replyText"`
}

// Assistant classifies free-text chat input against the running
// transcript and, for filter intents, emits a filter-update payload.
type Assistant interface {
	Route(ctx context.Context, history []model.ChatMessage, query string) (IntentResult, error)
}
