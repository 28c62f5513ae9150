// File: internal/infra/adapters/ai/multi_adapter.go
package ai

import (
	"context"
	"errors"
	"strings"

	"jobsearch-assistant/internal/domain/ports/adapter"
)

var _ adapter.ChatClient = (*MultiChatClient)(nil)

// MultiChatClient routes each call to a provider by model name, so the
// scorer can run on a cheap fast model while the assistant uses a
// stronger one, each on its own backend.
type MultiChatClient struct {
	defaultProvider string // "openai" or "gemini"
	byProvider      map[string]adapter.ChatClient
	modelToProvider map[string]string
}

// NewMultiChatClient does not inject any default model; it only knows a
// default provider. Each provider client carries its own default model.
func NewMultiChatClient(
	defaultProvider string,
	byProvider map[string]adapter.ChatClient,
	modelToProvider map[string]string,
) *MultiChatClient {
	return &MultiChatClient{
		defaultProvider: strings.ToLower(defaultProvider),
		byProvider:      byProvider,
		modelToProvider: modelToProvider,
	}
}

func (m *MultiChatClient) resolveProvider(model string) string {
	if p := m.modelToProvider[model]; p != "" {
		return strings.ToLower(p)
	}
	l := strings.ToLower(model)
	switch {
	case strings.HasPrefix(l, "gemini"):
		return "gemini"
	case strings.HasPrefix(l, "gpt"):
		return "openai"
	default:
		return m.defaultProvider
	}
}

func (m *MultiChatClient) pick(model string) adapter.ChatClient {
	prov := m.resolveProvider(model)
	if c := m.byProvider[prov]; c != nil {
		return c
	}
	// last resort: first available
	for _, c := range m.byProvider {
		if c != nil {
			return c
		}
	}
	return nil
}

func (m *MultiChatClient) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	c := m.pick(model)
	if c == nil {
		return "", errors.New("multi: no provider configured")
	}
	return c.Chat(ctx, model, messages)
}

func (m *MultiChatClient) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	c := m.pick(model)
	if c == nil {
		return "", adapter.Usage{}, errors.New("multi: no provider configured")
	}
	return c.ChatWithUsage(ctx, model, messages)
}
