// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"fmt"
	"sync"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
)

// memProfileRepo is a small in-memory implementation used by unit tests.
type memProfileRepo struct {
	mu      sync.RWMutex
	store   map[string]*model.Profile
	saveErr error // used by tests to simulate save failures
	loadErr error
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{store: make(map[string]*model.Profile)}
}

func (m *memProfileRepo) Load(ctx context.Context, userID string) (*model.Profile, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[userID]
	if !ok {
		return &model.Profile{UserID: userID, Applications: []model.Application{}}, nil
	}
	cp := *p
	cp.Applications = append([]model.Application(nil), p.Applications...)
	return &cp, nil
}

func (m *memProfileRepo) SaveResume(ctx context.Context, userID, resumeText string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		p = &model.Profile{UserID: userID}
		m.store[userID] = p
	}
	p.ResumeText = resumeText
	return nil
}

func (m *memProfileRepo) AppendApplication(ctx context.Context, userID string, app model.Application) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[userID]
	if !ok {
		p = &model.Profile{UserID: userID}
		m.store[userID] = p
	}
	p.Applications = append(p.Applications, app)
	return nil
}

func (m *memProfileRepo) Applications(ctx context.Context, userID string) ([]model.Application, error) {
	p, err := m.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return p.Applications, nil
}

// fakeScorer returns canned scores per description, or per-item errors.
type fakeScorer struct {
	mu     sync.Mutex
	scores map[string]model.MatchResult
	errFor map[string]error
	calls  int
}

func newFakeScorer() *fakeScorer {
	return &fakeScorer{scores: map[string]model.MatchResult{}, errFor: map[string]error{}}
}

func (f *fakeScorer) Score(ctx context.Context, resumeText, jobDescription string) (model.MatchResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err := f.errFor[jobDescription]; err != nil {
		return model.MatchResult{}, err
	}
	if res, ok := f.scores[jobDescription]; ok {
		return res, nil
	}
	if resumeText == "" {
		return model.MatchResult{Score: 0, Explanation: "no resume provided"}, nil
	}
	return model.MatchResult{Score: 50, Explanation: "default"}, nil
}

func (f *fakeScorer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeJobSource serves a fixed page of postings.
type fakeJobSource struct {
	postings []model.JobPosting
	err      error
	lastQ    adapter.JobQuery
}

func (f *fakeJobSource) Search(ctx context.Context, q adapter.JobQuery) ([]model.JobPosting, error) {
	f.lastQ = q
	if f.err != nil {
		return nil, f.err
	}
	return f.postings, nil
}

// memJobCache records puts and serves gets. It also keeps the search
// index so invalidation paths can be exercised.
type rememberedSearch struct {
	userID, what, where string
}

type memJobCache struct {
	mu          sync.Mutex
	data        map[string][]model.ScoredJob
	searches    []rememberedSearch
	puts        int
	hits        int
	invalidated []string
}

func newMemJobCache() *memJobCache {
	return &memJobCache{data: map[string][]model.ScoredJob{}}
}

func (c *memJobCache) Get(ctx context.Context, key string) ([]model.ScoredJob, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if ok {
		c.hits++
	}
	return v, ok
}

func (c *memJobCache) Put(ctx context.Context, key string, jobs []model.ScoredJob) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.data[key] = jobs
}

func (c *memJobCache) RememberSearch(ctx context.Context, userID, what, where string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searches = append(c.searches, rememberedSearch{userID: userID, what: what, where: where})
}

func (c *memJobCache) InvalidateUserSearches(ctx context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
	for _, s := range c.searches {
		if s.userID == userID {
			delete(c.data, CacheKey(s.userID, s.what, s.where))
		}
	}
}

// fakeRouter returns a canned intent result.
type fakeRouter struct {
	result adapter.IntentResult
	err    error
}

func (f *fakeRouter) Route(ctx context.Context, history []model.ChatMessage, query string) (adapter.IntentResult, error) {
	if f.err != nil {
		return adapter.IntentResult{}, f.err
	}
	return f.result, nil
}

func posting(id, title, desc string) model.JobPosting {
	p := model.JobPosting{ID: id, Title: title, Company: "Acme", Location: "Bangalore", Description: desc}
	p.Normalize()
	return p
}

func postingN(n int) model.JobPosting {
	return posting(fmt.Sprintf("job-%d", n), fmt.Sprintf("Role %d", n), fmt.Sprintf("description %d", n))
}
