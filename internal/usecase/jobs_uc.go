// File: internal/usecase/jobs_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
	"jobsearch-assistant/internal/domain/ports/repository"
	"jobsearch-assistant/internal/infra/metrics"
)

// Defaults applied when the caller supplies no search terms, matching
// the job-board client's own fallback behavior.
const (
	DefaultSearchWhat  = "developer"
	DefaultSearchWhere = "india"
)

// Compile-time check
var _ JobsUseCase = (*jobsUC)(nil)

// ScoredJobCache caches ranked search results per user+query so a
// repeated search does not re-run the scoring fan-out.
type ScoredJobCache interface {
	Get(ctx context.Context, key string) ([]model.ScoredJob, bool)
	Put(ctx context.Context, key string, jobs []model.ScoredJob)
}

// SearchRecorder is an optional cache capability: caches that also
// keep an index of live searches implement it so the background
// refresher knows what to re-rank.
type SearchRecorder interface {
	RememberSearch(ctx context.Context, userID, what, where string)
}

// SearchInvalidator drops every cached ranking for one user. Rankings
// are computed against the stored resume, so a resume change must not
// leave results scored against the old text serveable.
type SearchInvalidator interface {
	InvalidateUserSearches(ctx context.Context, userID string)
}

type JobsUseCase interface {
	// FetchRanked queries the job source and returns the batch ranked
	// against the user's stored resume. An upstream job-source failure
	// is surfaced as an error; a partial list is never returned as
	// complete.
	FetchRanked(ctx context.Context, userID, what, where string) ([]model.ScoredJob, error)
}

type jobsUC struct {
	source   adapter.JobSource
	matching MatchingUseCase
	profiles repository.ProfileRepository
	cache    ScoredJobCache
	log      *zerolog.Logger
}

func NewJobsUseCase(source adapter.JobSource, matching MatchingUseCase, profiles repository.ProfileRepository, cache ScoredJobCache, log *zerolog.Logger) *jobsUC {
	return &jobsUC{source: source, matching: matching, profiles: profiles, cache: cache, log: log}
}

func (j *jobsUC) FetchRanked(ctx context.Context, userID, what, where string) ([]model.ScoredJob, error) {
	if strings.TrimSpace(what) == "" {
		what = DefaultSearchWhat
	}
	if strings.TrimSpace(where) == "" {
		where = DefaultSearchWhere
	}

	key := CacheKey(userID, what, where)
	if j.cache != nil {
		if hit, ok := j.cache.Get(ctx, key); ok {
			metrics.IncJobsCache(true)
			return hit, nil
		}
		metrics.IncJobsCache(false)
	}

	resume := ""
	if userID != "" {
		prof, err := j.profiles.Load(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("load profile: %w", err)
		}
		resume = prof.ResumeText
	}

	start := time.Now()
	postings, err := j.source.Search(ctx, adapter.JobQuery{What: what, Where: where})
	if err != nil {
		metrics.IncJobsFetch(false)
		return nil, fmt.Errorf("job source: %w", err)
	}
	metrics.IncJobsFetch(true)
	if j.log != nil {
		j.log.Info().
			Str("what", what).
			Str("where", where).
			Int("postings", len(postings)).
			Dur("fetch_duration", time.Since(start)).
			Msg("job search fetched")
	}

	ranked := j.matching.RankJobs(ctx, resume, postings)
	if j.cache != nil {
		j.cache.Put(ctx, key, ranked)
		if rec, ok := j.cache.(SearchRecorder); ok {
			rec.RememberSearch(ctx, userID, what, where)
		}
	}
	return ranked, nil
}

// CacheKey builds the cache key for one user+query combination.
func CacheKey(userID, what, where string) string {
	return fmt.Sprintf("scored_jobs:%s:%s:%s", userID, strings.ToLower(what), strings.ToLower(where))
}
