// File: internal/infra/adapters/ai/noop_ai.go
package ai

import (
	"context"
	"time"

	"jobsearch-assistant/internal/domain/ports/adapter"
)

var _ adapter.ChatClient = (*NoopChatClient)(nil)

// NoopChatClient is the local/dev stand-in used when no provider key is
// configured. It answers every call with a fixed zero-score payload so
// the rest of the pipeline keeps working without real AI requests.
type NoopChatClient struct{}

func NewNoopChatClient() *NoopChatClient {
	return &NoopChatClient{}
}

const noopReply = `{"score": 0, "explanation": "AI scoring is not configured."}`

func (a *NoopChatClient) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	select {
	case <-time.After(100 * time.Millisecond):
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return noopReply, nil
}

func (a *NoopChatClient) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	reply, err := a.Chat(ctx, model, messages)
	return reply, adapter.Usage{}, err
}
