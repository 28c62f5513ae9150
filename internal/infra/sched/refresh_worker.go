// File: internal/infra/sched/refresh_worker.go
package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/infra/redis"
	"jobsearch-assistant/internal/infra/worker"
	"jobsearch-assistant/internal/usecase"
)

const refreshLockKey = "sched:refresh_jobs"

// searchIndex is what the worker needs from the jobs cache.
type searchIndex interface {
	Searches(ctx context.Context) ([]redis.CachedSearch, error)
	Invalidate(ctx context.Context, key string)
}

// RefreshWorker periodically re-runs every cached search so the feed
// stays warm and resume edits propagate without a manual refresh.
type RefreshWorker struct {
	interval time.Duration
	index    searchIndex
	jobs     usecase.JobsUseCase
	pool     *worker.Pool
	locker   redis.Locker
	log      *zerolog.Logger
}

func NewRefreshWorker(interval time.Duration, index searchIndex, jobs usecase.JobsUseCase, pool *worker.Pool, locker redis.Locker, logger *zerolog.Logger) *RefreshWorker {
	refreshLog := logger.With().Str("component", "RefreshWorker").Logger()
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &RefreshWorker{
		interval: interval,
		index:    index,
		jobs:     jobs,
		pool:     pool,
		locker:   locker,
		log:      &refreshLog,
	}
}

func (w *RefreshWorker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting refresh worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping refresh worker")
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *RefreshWorker) sweep(ctx context.Context) {
	if w.locker != nil {
		token, err := w.locker.TryLock(ctx, refreshLockKey, w.interval)
		if err != nil {
			// Another instance holds the sweep.
			return
		}
		defer func() { _ = w.locker.Unlock(ctx, refreshLockKey, token) }()
	}

	searches, err := w.index.Searches(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("list cached searches")
		return
	}

	for _, s := range searches {
		s := s
		err := w.pool.Submit(func(taskCtx context.Context) error {
			key := usecase.CacheKey(s.UserID, s.What, s.Where)
			w.index.Invalidate(taskCtx, key)
			_, err := w.jobs.FetchRanked(taskCtx, s.UserID, s.What, s.Where)
			return err
		})
		if err != nil {
			w.log.Warn().Err(err).Str("user_id", s.UserID).Msg("refresh task dropped")
		}
	}
	if len(searches) > 0 {
		w.log.Info().Int("searches", len(searches)).Msg("refresh sweep queued")
	}
}
