// File: internal/infra/adapters/ai/limit_wrapper.go
package ai

import (
	"context"

	"jobsearch-assistant/internal/domain/ports/adapter"
)

// Compile-time check
var _ adapter.ChatClient = (*limitedChat)(nil)

// limitedChat bounds the number of in-flight provider calls. The
// matching fan-out can issue one call per posting; the semaphore keeps
// the provider from seeing the whole batch at once.
type limitedChat struct {
	inner adapter.ChatClient
	sem   chan struct{}
}

func NewLimitedChat(inner adapter.ChatClient, maxConcurrent int) adapter.ChatClient {
	if maxConcurrent <= 0 {
		return inner
	}
	return &limitedChat{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (l *limitedChat) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.Chat(ctx, model, messages)
}

func (l *limitedChat) ChatWithUsage(ctx context.Context, model string, messages []adapter.Message) (string, adapter.Usage, error) {
	l.sem <- struct{}{}
	defer func() { <-l.sem }()
	return l.inner.ChatWithUsage(ctx, model, messages)
}
