// File: internal/usecase/matching_uc.go
package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
	"jobsearch-assistant/internal/infra/metrics"
)

// Compile-time check
var _ MatchingUseCase = (*matchingUC)(nil)

type MatchingUseCase interface {
	// RankJobs scores every posting against the resume and returns the
	// batch ordered by descending score, ties kept in input order.
	// The output always has the same length as the input: a posting
	// whose scoring call fails degrades to score 0 with an explanatory
	// message instead of aborting the batch.
	RankJobs(ctx context.Context, resumeText string, postings []model.JobPosting) []model.ScoredJob
}

type matchingUC struct {
	scorer  adapter.Scorer
	limit   int
	timeout time.Duration
	log     *zerolog.Logger
}

func NewMatchingUseCase(scorer adapter.Scorer, concurrentLimit int, scoreTimeout time.Duration, log *zerolog.Logger) *matchingUC {
	if concurrentLimit <= 0 {
		concurrentLimit = 8
	}
	if scoreTimeout <= 0 {
		scoreTimeout = 30 * time.Second
	}
	return &matchingUC{scorer: scorer, limit: concurrentLimit, timeout: scoreTimeout, log: log}
}

func (m *matchingUC) RankJobs(ctx context.Context, resumeText string, postings []model.JobPosting) []model.ScoredJob {
	scored := make([]model.ScoredJob, len(postings))
	if len(postings) == 0 {
		return scored
	}

	start := time.Now()
	sem := make(chan struct{}, m.limit)
	var wg sync.WaitGroup

	for i := range postings {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			scored[i] = m.scoreOne(ctx, resumeText, postings[i])
		}(i)
	}
	wg.Wait()

	// Descending by score; the stable sort keeps ties in input order so
	// the UI stays deterministic across re-renders.
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })

	metrics.ObserveRankBatch(len(postings), time.Since(start))
	if m.log != nil {
		m.log.Debug().
			Int("postings", len(postings)).
			Dur("duration", time.Since(start)).
			Msg("ranked job batch")
	}
	return scored
}

func (m *matchingUC) scoreOne(ctx context.Context, resumeText string, p model.JobPosting) model.ScoredJob {
	callCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	res, err := m.scorer.Score(callCtx, resumeText, p.Description)
	if err != nil {
		// Recoverable per-item failure: report it, keep the posting.
		metrics.IncScoreFailure()
		if m.log != nil {
			m.log.Error().Err(err).Str("job_id", p.ID).Msg("scoring failed")
		}
		return model.ScoredJob{
			JobPosting:  p,
			Score:       0,
			Explanation: fmt.Sprintf("scoring unavailable: %v", err),
		}
	}

	res = res.Clamp()
	return model.ScoredJob{JobPosting: p, Score: res.Score, Explanation: res.Explanation}
}
