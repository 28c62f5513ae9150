package model

import (
	"strings"
	"time"
)

// Work modes derived from the posting location text.
const (
	WorkModeRemote = "remote"
	WorkModeOnSite = "on-site"
)

const defaultContractType = "full_time"

// JobPosting is a job listing as normalized from the external source.
// Immutable once fetched; the core never persists postings.
type JobPosting struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	ContractType string    `json:"type"`
	WorkMode     string    `json:"mode"`
	PostedAt     time.Time `json:"posted"`
	ApplyURL     string    `json:"applyUrl"`
}

// Normalize fills derived and defaulted fields after a raw fetch.
// The source exposes no explicit remote flag, so work mode comes from
// a substring check on the location text. The heuristic is approximate
// and intentionally kept as-is.
func (p *JobPosting) Normalize() {
	if p.ContractType == "" {
		p.ContractType = defaultContractType
	}
	p.WorkMode = DeriveWorkMode(p.Location)
}

// DeriveWorkMode returns "remote" when the location text mentions it,
// "on-site" otherwise.
func DeriveWorkMode(location string) string {
	if strings.Contains(strings.ToLower(location), WorkModeRemote) {
		return WorkModeRemote
	}
	return WorkModeOnSite
}

// MatchResult is the scoring collaborator's verdict for one posting.
type MatchResult struct {
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}

// Clamp forces the score into [0,100]; out-of-range values from the
// collaborator are clamped, not rejected.
func (m MatchResult) Clamp() MatchResult {
	if m.Score < 0 {
		m.Score = 0
	}
	if m.Score > 100 {
		m.Score = 100
	}
	return m
}

// ScoredJob is a posting annotated with its resume-match score.
// Score is 0 when scoring failed; Explanation then describes why.
type ScoredJob struct {
	JobPosting
	Score       int    `json:"score"`
	Explanation string `json:"explanation"`
}
