package adapter

import (
	"context"

	"jobsearch-assistant/internal/domain/model"
)

// JobQuery is a free-text search against the external job board.
type JobQuery struct {
	What  string // role / keywords
	Where string // location
}

// JobSource is the port for the external job-listing API. Implementations
// return normalized postings; an upstream failure surfaces as an error,
// never as a silently partial list.
type JobSource interface {
	Search(ctx context.Context, q JobQuery) ([]model.JobPosting, error)
}
