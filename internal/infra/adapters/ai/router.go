// File: internal/infra/adapters/ai/router.go
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
	"jobsearch-assistant/internal/infra/metrics"
)

// Compile-time check
var _ adapter.Assistant = (*IntentRouter)(nil)

const routerSystemPrompt = `You are a job-search assistant. Classify the user's latest message as one of: "search", "filter", "help".
- "search": the user wants new job results.
- "filter": the user wants to narrow or reset the visible list. Emit a "filters" object with only the keys to change: "title" (string), "skills" (array of strings), "datePosted" ("any"|"24h"|"week"|"month"), "jobType" (array, e.g. ["full_time","contract","part_time"]), "workMode" (array of "remote"|"on-site"), "location" (string), "matchScore" ("all"|"high"|"medium"). To reset all filters emit {"clear": true}.
- "help": anything else, including questions about how this works.
Always answer with a single JSON object: {"intent": string, "replyText": string, "filters": object (filter intent only)}. replyText is a short friendly sentence for the user. No markdown, no prose outside the JSON.`

// IntentRouter implements adapter.Assistant on a ChatClient. It feeds
// the transcript back to the model so follow-ups like "only remote
// ones" resolve against earlier turns.
type IntentRouter struct {
	chat     adapter.ChatClient
	provider string
	model    string
	log      *zerolog.Logger
}

func NewIntentRouter(chat adapter.ChatClient, provider, model string, log *zerolog.Logger) *IntentRouter {
	return &IntentRouter{chat: chat, provider: provider, model: model, log: log}
}

func (r *IntentRouter) Route(ctx context.Context, history []model.ChatMessage, query string) (adapter.IntentResult, error) {
	msgs := make([]adapter.Message, 0, len(history)+2)
	msgs = append(msgs, adapter.Message{Role: "system", Content: routerSystemPrompt})
	for _, h := range history {
		msgs = append(msgs, adapter.Message{Role: h.Role, Content: h.Content})
	}
	msgs = append(msgs, adapter.Message{Role: "user", Content: query})

	start := time.Now()
	reply, usage, err := r.chat.ChatWithUsage(ctx, r.model, msgs)
	latency := int(time.Since(start).Milliseconds())
	metrics.ObserveChatUsage(r.provider, r.model, usage.PromptTokens, usage.CompletionTokens, usage.TotalTokens, latency, err == nil)
	if err != nil {
		return adapter.IntentResult{}, fmt.Errorf("route chat: %w", err)
	}

	res, err := parseIntentReply(reply)
	if err != nil {
		if r.log != nil {
			r.log.Warn().Err(err).Str("reply", truncateForLog(reply, 200)).Msg("unparseable intent reply")
		}
		return adapter.IntentResult{}, err
	}
	return res, nil
}

func parseIntentReply(raw string) (adapter.IntentResult, error) {
	cleaned := extractJSON(raw)

	var res adapter.IntentResult
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		return adapter.IntentResult{}, fmt.Errorf("parse intent reply: %w", err)
	}
	res.Intent = strings.ToLower(strings.TrimSpace(res.Intent))
	return res, nil
}
