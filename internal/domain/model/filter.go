package model

import "time"

// DatePosted windows.
const (
	DateAny   = "any"
	Date24h   = "24h"
	DateWeek  = "week"
	DateMonth = "month"
)

// Match score tiers.
const (
	TierAll    = "all"
	TierHigh   = "high"   // score > 70
	TierMedium = "medium" // 40 <= score <= 70
)

// FilterCriteria is the current set of user-selected constraints
// narrowing the visible job list. Zero values mean "no constraint".
type FilterCriteria struct {
	TitleQuery     string   `json:"title"`
	Skills         []string `json:"skills"`
	DatePosted     string   `json:"datePosted"`
	JobTypes       []string `json:"jobType"`
	WorkModes      []string `json:"workMode"`
	Location       string   `json:"location"`
	MatchScoreTier string   `json:"matchScore"`
}

// DefaultFilters returns the unconstrained criteria.
func DefaultFilters() FilterCriteria {
	return FilterCriteria{
		Skills:         []string{},
		DatePosted:     DateAny,
		JobTypes:       []string{},
		WorkModes:      []string{},
		MatchScoreTier: TierAll,
	}
}

// FilterPatch is a partial criteria update. Nil fields are left
// untouched by Merge; Clear resets everything to defaults instead.
type FilterPatch struct {
	TitleQuery     *string   `json:"title,omitempty"`
	Skills         *[]string `json:"skills,omitempty"`
	DatePosted     *string   `json:"datePosted,omitempty"`
	JobTypes       *[]string `json:"jobType,omitempty"`
	WorkModes      *[]string `json:"workMode,omitempty"`
	Location       *string   `json:"location,omitempty"`
	MatchScoreTier *string   `json:"matchScore,omitempty"`
	Clear          bool      `json:"clear,omitempty"`
}

// IsZero reports whether the patch carries no change at all.
func (p FilterPatch) IsZero() bool {
	return !p.Clear && p.TitleQuery == nil && p.Skills == nil && p.DatePosted == nil &&
		p.JobTypes == nil && p.WorkModes == nil && p.Location == nil && p.MatchScoreTier == nil
}

// Merge applies the patch per key (shallow merge) and returns the
// updated criteria. The receiver is not modified.
func (c FilterCriteria) Merge(p FilterPatch) FilterCriteria {
	if p.Clear {
		return DefaultFilters()
	}
	if p.TitleQuery != nil {
		c.TitleQuery = *p.TitleQuery
	}
	if p.Skills != nil {
		c.Skills = append([]string(nil), (*p.Skills)...)
	}
	if p.DatePosted != nil {
		c.DatePosted = *p.DatePosted
	}
	if p.JobTypes != nil {
		c.JobTypes = append([]string(nil), (*p.JobTypes)...)
	}
	if p.WorkModes != nil {
		c.WorkModes = append([]string(nil), (*p.WorkModes)...)
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.MatchScoreTier != nil {
		c.MatchScoreTier = *p.MatchScoreTier
	}
	return c
}

// DateCutoff translates the DatePosted window into an absolute lower
// bound anchored at now. ok is false for "any" (no constraint).
func (c FilterCriteria) DateCutoff(now time.Time) (cutoff time.Time, ok bool) {
	switch c.DatePosted {
	case Date24h:
		return now.Add(-24 * time.Hour), true
	case DateWeek:
		return now.AddDate(0, 0, -7), true
	case DateMonth:
		return now.AddDate(0, -1, 0), true
	default:
		return time.Time{}, false
	}
}
