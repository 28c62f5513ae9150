//go:build !integration

package web

import (
	"context"
	"fmt"
	"sync"
	"time"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
)

// --- Mock usecases behind the facade ---

type mockJobsUC struct {
	mu        sync.Mutex
	jobs      []model.ScoredJob
	err       error
	calls     int
	lastWhat  string
	lastWhere string
}

func (m *mockJobsUC) FetchRanked(ctx context.Context, userID, what, where string) ([]model.ScoredJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastWhat, m.lastWhere = what, where
	if m.err != nil {
		return nil, m.err
	}
	return m.jobs, nil
}

type mockProfileUC struct {
	mu        sync.Mutex
	resumes   map[string]string
	apps      map[string][]model.Application
	uploadErr error
	recordErr error
	appsErr   error
	nextID    int
}

func newMockProfileUC() *mockProfileUC {
	return &mockProfileUC{
		resumes: make(map[string]string),
		apps:    make(map[string][]model.Application),
	}
}

func (m *mockProfileUC) UploadResume(ctx context.Context, userID, resumeText string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resumes[userID] = resumeText
	return nil
}

func (m *mockProfileUC) Resume(ctx context.Context, userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resumes[userID], nil
}

func (m *mockProfileUC) RecordApplication(ctx context.Context, userID, jobID string, status model.ApplicationStatus) (model.Application, error) {
	if m.recordErr != nil {
		return model.Application{}, m.recordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	app := model.Application{
		ID:        fmt.Sprintf("app-%d", m.nextID),
		JobID:     jobID,
		Status:    status,
		Timestamp: time.Now(),
	}
	m.apps[userID] = append(m.apps[userID], app)
	return app, nil
}

func (m *mockProfileUC) Applications(ctx context.Context, userID string) ([]model.Application, error) {
	if m.appsErr != nil {
		return nil, m.appsErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]model.Application{}, m.apps[userID]...)
	return out, nil
}

type mockAssistantUC struct {
	mu          sync.Mutex
	res         adapter.IntentResult
	err         error
	lastQuery   string
	historyLens []int
}

func (m *mockAssistantUC) Handle(ctx context.Context, history []model.ChatMessage, query string) (adapter.IntentResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuery = query
	m.historyLens = append(m.historyLens, len(history))
	if m.err != nil {
		return adapter.IntentResult{}, m.err
	}
	return m.res, nil
}

// --- In-memory redis for the rate-limit middleware ---

type memRedis struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newMemRedis() *memRedis { return &memRedis{counts: make(map[string]int64)} }

func (m *memRedis) Ping(ctx context.Context) error { return nil }

func (m *memRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return nil
}

func (m *memRedis) Get(ctx context.Context, key string) (string, error) { return "", nil }

func (m *memRedis) SAdd(ctx context.Context, key string, members ...interface{}) error { return nil }

func (m *memRedis) SMembers(ctx context.Context, key string) ([]string, error) { return nil, nil }

func (m *memRedis) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memRedis) Expire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func (m *memRedis) Del(ctx context.Context, keys ...string) error { return nil }

func (m *memRedis) Close() error { return nil }
