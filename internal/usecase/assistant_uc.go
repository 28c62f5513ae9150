// File: internal/usecase/assistant_uc.go
package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/domain"
	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
)

// apologyReply is shown whenever routing fails or the collaborator
// returns something unusable. The transcript must never break.
const apologyReply = "Sorry, I couldn't work that out. Could you rephrase? I can search jobs, adjust your filters, or explain how this works."

// Compile-time check
var _ AssistantUseCase = (*assistantUC)(nil)

type AssistantUseCase interface {
	// Handle classifies the utterance against the transcript. It always
	// returns a displayable result: malformed or intent-less collaborator
	// responses degrade to an apology instead of an error.
	Handle(ctx context.Context, history []model.ChatMessage, query string) (adapter.IntentResult, error)
}

type assistantUC struct {
	router adapter.Assistant
	log    *zerolog.Logger
}

func NewAssistantUseCase(router adapter.Assistant, log *zerolog.Logger) *assistantUC {
	return &assistantUC{router: router, log: log}
}

func (a *assistantUC) Handle(ctx context.Context, history []model.ChatMessage, query string) (adapter.IntentResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return adapter.IntentResult{}, domain.ErrInvalidArgument
	}

	res, err := a.router.Route(ctx, history, query)
	if err != nil {
		if a.log != nil {
			a.log.Error().Err(err).Msg("assistant routing failed")
		}
		return fallbackResult(), nil
	}

	switch res.Intent {
	case adapter.IntentSearch, adapter.IntentFilter, adapter.IntentHelp:
	default:
		if a.log != nil {
			a.log.Warn().Str("intent", res.Intent).Msg("assistant returned unknown intent")
		}
		return fallbackResult(), nil
	}

	if res.Reply == "" {
		res.Reply = apologyReply
	}
	// A filter payload only makes sense for filter intents.
	if res.Intent != adapter.IntentFilter {
		res.Filters = nil
	}
	if res.Filters != nil && res.Filters.IsZero() {
		res.Filters = nil
	}
	return res, nil
}

func fallbackResult() adapter.IntentResult {
	return adapter.IntentResult{Intent: adapter.IntentHelp, Reply: apologyReply}
}
