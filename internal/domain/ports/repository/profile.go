package repository

import (
	"context"

	"jobsearch-assistant/internal/domain/model"
)

// ProfileRepository persists per-user resume text and the append-only
// application history. Implementations must tolerate unknown users:
// Load returns an empty profile, never an error, for a user that has
// not written anything yet. Concurrent mutations for different users
// must not corrupt each other's records.
type ProfileRepository interface {
	Load(ctx context.Context, userID string) (*model.Profile, error)
	SaveResume(ctx context.Context, userID, resumeText string) error
	AppendApplication(ctx context.Context, userID string, app model.Application) error
	Applications(ctx context.Context, userID string) ([]model.Application, error)
}
