//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobsearch-assistant/internal/domain/model"
)

func newJobsFixture(source *fakeJobSource, cache ScoredJobCache) (*jobsUC, *memProfileRepo, *fakeScorer) {
	repo := newMemProfileRepo()
	scorer := newFakeScorer()
	matching := NewMatchingUseCase(scorer, 4, time.Second, nil)
	return NewJobsUseCase(source, matching, repo, cache, nil), repo, scorer
}

func TestFetchRanked_DefaultsSearchTerms(t *testing.T) {
	t.Parallel()

	source := &fakeJobSource{postings: []model.JobPosting{posting("a", "Dev", "work")}}
	uc, _, _ := newJobsFixture(source, nil)

	if _, err := uc.FetchRanked(context.Background(), "u1", "", "  "); err != nil {
		t.Fatal(err)
	}
	if source.lastQ.What != DefaultSearchWhat || source.lastQ.Where != DefaultSearchWhere {
		t.Errorf("expected default terms, got %+v", source.lastQ)
	}
}

func TestFetchRanked_RanksAgainstStoredResume(t *testing.T) {
	t.Parallel()

	source := &fakeJobSource{postings: []model.JobPosting{
		posting("low", "Dev", "low match"),
		posting("high", "Dev", "high match"),
	}}
	uc, repo, scorer := newJobsFixture(source, nil)
	scorer.scores["low match"] = model.MatchResult{Score: 20, Explanation: "weak overlap"}
	scorer.scores["high match"] = model.MatchResult{Score: 95, Explanation: "strong overlap"}

	ctx := context.Background()
	if err := repo.SaveResume(ctx, "u1", "Go developer"); err != nil {
		t.Fatal(err)
	}

	ranked, err := uc.FetchRanked(ctx, "u1", "golang", "remote")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected both postings back, got %d", len(ranked))
	}
	if ranked[0].ID != "high" || ranked[1].ID != "low" {
		t.Errorf("expected descending score order, got %s then %s", ranked[0].ID, ranked[1].ID)
	}
}

func TestFetchRanked_SourceFailureSurfaced(t *testing.T) {
	t.Parallel()

	srcErr := errors.New("upstream 502")
	source := &fakeJobSource{err: srcErr}
	uc, _, _ := newJobsFixture(source, nil)

	jobs, err := uc.FetchRanked(context.Background(), "u1", "dev", "india")
	if !errors.Is(err, srcErr) {
		t.Fatalf("expected the source error wrapped, got %v", err)
	}
	if jobs != nil {
		t.Errorf("expected no partial list on failure, got %d jobs", len(jobs))
	}
}

func TestFetchRanked_CacheHitSkipsScoring(t *testing.T) {
	t.Parallel()

	source := &fakeJobSource{postings: []model.JobPosting{posting("a", "Dev", "work")}}
	cache := newMemJobCache()
	uc, _, scorer := newJobsFixture(source, cache)

	ctx := context.Background()
	first, err := uc.FetchRanked(ctx, "u1", "dev", "india")
	if err != nil {
		t.Fatal(err)
	}
	callsAfterFirst := scorer.callCount()
	if callsAfterFirst == 0 {
		t.Fatal("expected the first fetch to score")
	}
	if cache.puts != 1 {
		t.Fatalf("expected one cache put, got %d", cache.puts)
	}

	second, err := uc.FetchRanked(ctx, "u1", "dev", "india")
	if err != nil {
		t.Fatal(err)
	}
	if scorer.callCount() != callsAfterFirst {
		t.Error("expected the cached fetch not to re-score")
	}
	if len(second) != len(first) {
		t.Errorf("expected equal results from cache, got %d vs %d", len(second), len(first))
	}
}

func TestFetchRanked_CacheKeyIsCaseInsensitiveOnTerms(t *testing.T) {
	t.Parallel()

	if CacheKey("u1", "DEV", "India") != CacheKey("u1", "dev", "india") {
		t.Error("expected term casing not to split the cache")
	}
	if CacheKey("u1", "dev", "india") == CacheKey("u2", "dev", "india") {
		t.Error("expected per-user cache keys")
	}
}

func TestFetchRanked_AnonymousUserScoresZero(t *testing.T) {
	t.Parallel()

	source := &fakeJobSource{postings: []model.JobPosting{posting("a", "Dev", "work")}}
	uc, _, _ := newJobsFixture(source, nil)

	ranked, err := uc.FetchRanked(context.Background(), "", "dev", "india")
	if err != nil {
		t.Fatal(err)
	}
	if len(ranked) != 1 || ranked[0].Score != 0 {
		t.Errorf("expected zero score without a resume, got %+v", ranked)
	}
}

func TestFetchRanked_ResumeChangeDropsCachedRanking(t *testing.T) {
	t.Parallel()

	source := &fakeJobSource{postings: []model.JobPosting{posting("a", "Dev", "backend work")}}
	cache := newMemJobCache()
	uc, repo, scorer := newJobsFixture(source, cache)
	profile := NewProfileUseCase(repo, 1024, cache)

	ctx := context.Background()
	first, err := uc.FetchRanked(ctx, "u1", "dev", "india")
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != 1 || first[0].Score != 0 {
		t.Fatalf("expected a zero score before any resume, got %+v", first)
	}
	callsBefore := scorer.callCount()

	if err := profile.UploadResume(ctx, "u1", "Go developer, five years of backend work"); err != nil {
		t.Fatal(err)
	}

	second, err := uc.FetchRanked(ctx, "u1", "dev", "india")
	if err != nil {
		t.Fatal(err)
	}
	if scorer.callCount() == callsBefore {
		t.Fatal("expected the fetch after a resume upload to re-score, not serve the cache")
	}
	if len(second) != 1 || second[0].Score == 0 {
		t.Fatalf("expected a fresh ranking against the new resume, got %+v", second)
	}
}
