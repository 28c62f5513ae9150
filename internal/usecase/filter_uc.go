// File: internal/usecase/filter_uc.go
package usecase

import (
	"sort"
	"strings"
	"time"

	"jobsearch-assistant/internal/domain/model"
)

// bestMatchesLimit caps the derived "best matches" view.
const bestMatchesLimit = 8

// ApplyFilters narrows jobs to those satisfying every active criterion.
// It is pure: no side effects, input order preserved, idempotent.
// Ranking is the matching engine's responsibility, never done here.
// now anchors the relative date-posted window.
func ApplyFilters(jobs []model.ScoredJob, c model.FilterCriteria, now time.Time) []model.ScoredJob {
	cutoff, hasCutoff := c.DateCutoff(now)

	out := make([]model.ScoredJob, 0, len(jobs))
	for _, j := range jobs {
		if c.TitleQuery != "" && !containsFold(j.Title, c.TitleQuery) {
			continue
		}
		if len(c.Skills) > 0 && !matchesAnySkill(j, c.Skills) {
			continue
		}
		if hasCutoff && j.PostedAt.Before(cutoff) {
			continue
		}
		if len(c.JobTypes) > 0 && !member(c.JobTypes, j.ContractType) {
			continue
		}
		if len(c.WorkModes) > 0 && !member(c.WorkModes, j.WorkMode) {
			continue
		}
		if c.Location != "" && !containsFold(j.Location, c.Location) {
			continue
		}
		if !tierMatches(c.MatchScoreTier, j.Score) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// BestMatches is a derived read over the current filtered set: jobs
// that actually scored, best first, capped at eight. Computed fresh on
// every call, never cached.
func BestMatches(jobs []model.ScoredJob) []model.ScoredJob {
	out := make([]model.ScoredJob, 0, bestMatchesLimit)
	for _, j := range jobs {
		if j.Score > 0 {
			out = append(out, j)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Score > out[b].Score })
	if len(out) > bestMatchesLimit {
		out = out[:bestMatchesLimit]
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// matchesAnySkill is an OR within the skill set: any selected skill
// appearing in the title or description qualifies the job.
func matchesAnySkill(j model.ScoredJob, skills []string) bool {
	for _, s := range skills {
		if s == "" {
			continue
		}
		if containsFold(j.Title, s) || containsFold(j.Description, s) {
			return true
		}
	}
	return false
}

func member(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func tierMatches(tier string, score int) bool {
	switch tier {
	case model.TierHigh:
		return score > 70
	case model.TierMedium:
		return score >= 40 && score <= 70
	default:
		return true
	}
}
