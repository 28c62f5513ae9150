package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/usecase"
)

// Compile-time checks
var (
	_ usecase.ScoredJobCache    = (*JobsCache)(nil)
	_ usecase.SearchRecorder    = (*JobsCache)(nil)
	_ usecase.SearchInvalidator = (*JobsCache)(nil)
)

const searchIndexKey = "scored_jobs:searches"

// CachedSearch identifies one user+query combination whose ranked
// results live in the cache. The refresh worker re-runs these.
type CachedSearch struct {
	UserID string `json:"userId"`
	What   string `json:"what"`
	Where  string `json:"where"`
}

// JobsCache stores ranked search results with a TTL so a repeated
// search skips the scoring fan-out. Cache failures are soft: a broken
// Redis degrades to fetching fresh, never to an error.
type JobsCache struct {
	client RedisClient
	ttl    time.Duration
	log    *zerolog.Logger
}

func NewJobsCache(client RedisClient, ttl time.Duration, log *zerolog.Logger) *JobsCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &JobsCache{client: client, ttl: ttl, log: log}
}

func (c *JobsCache) Get(ctx context.Context, key string) ([]model.ScoredJob, bool) {
	raw, err := c.client.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var jobs []model.ScoredJob
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		if c.log != nil {
			c.log.Warn().Err(err).Str("key", key).Msg("corrupt cache entry dropped")
		}
		_ = c.client.Del(ctx, key)
		return nil, false
	}
	return jobs, true
}

func (c *JobsCache) Put(ctx context.Context, key string, jobs []model.ScoredJob) {
	raw, err := json.Marshal(jobs)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl); err != nil && c.log != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache put failed")
	}
}

// RememberSearch records the query in the refresh index.
func (c *JobsCache) RememberSearch(ctx context.Context, userID, what, where string) {
	raw, err := json.Marshal(CachedSearch{UserID: userID, What: what, Where: where})
	if err != nil {
		return
	}
	if err := c.client.SAdd(ctx, searchIndexKey, raw); err != nil && c.log != nil {
		c.log.Warn().Err(err).Msg("search index add failed")
	}
}

// Searches lists every query currently in the refresh index.
func (c *JobsCache) Searches(ctx context.Context) ([]CachedSearch, error) {
	members, err := c.client.SMembers(ctx, searchIndexKey)
	if err != nil {
		return nil, err
	}
	out := make([]CachedSearch, 0, len(members))
	for _, m := range members {
		var s CachedSearch
		if err := json.Unmarshal([]byte(m), &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// Invalidate drops a cached result so the next fetch goes upstream.
func (c *JobsCache) Invalidate(ctx context.Context, key string) {
	_ = c.client.Del(ctx, key)
}

// InvalidateUserSearches drops every cached ranking remembered for the
// user. Called after a resume change; the index entries stay so the
// refresh worker re-scores those searches against the new resume.
func (c *JobsCache) InvalidateUserSearches(ctx context.Context, userID string) {
	searches, err := c.Searches(ctx)
	if err != nil {
		if c.log != nil {
			c.log.Warn().Err(err).Str("user_id", userID).Msg("search index read failed")
		}
		return
	}
	for _, s := range searches {
		if s.UserID != userID {
			continue
		}
		c.Invalidate(ctx, usecase.CacheKey(s.UserID, s.What, s.Where))
	}
}
