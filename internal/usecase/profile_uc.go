// File: internal/usecase/profile_uc.go
package usecase

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/oklog/ulid/v2"

	"jobsearch-assistant/internal/domain"
	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/repository"
)

// Compile-time check
var _ ProfileUseCase = (*profileUC)(nil)

type ProfileUseCase interface {
	// UploadResume validates and stores the resume text. Rejections
	// (oversized, non-text) happen synchronously, before any processing.
	UploadResume(ctx context.Context, userID, resumeText string) error

	// Resume returns the stored resume text, "" when none was uploaded.
	Resume(ctx context.Context, userID string) (string, error)

	// RecordApplication appends a status entry for the job. Prior
	// entries are never removed or merged.
	RecordApplication(ctx context.Context, userID, jobID string, status model.ApplicationStatus) (model.Application, error)

	// Applications returns the full status history, oldest first.
	Applications(ctx context.Context, userID string) ([]model.Application, error)
}

type profileUC struct {
	profiles repository.ProfileRepository
	maxBytes int
	searches SearchInvalidator // nil when no scored-job cache is configured
}

func NewProfileUseCase(profiles repository.ProfileRepository, maxResumeBytes int, searches SearchInvalidator) *profileUC {
	if maxResumeBytes <= 0 {
		maxResumeBytes = 512 * 1024
	}
	return &profileUC{profiles: profiles, maxBytes: maxResumeBytes, searches: searches}
}

func (p *profileUC) UploadResume(ctx context.Context, userID, resumeText string) error {
	if userID == "" {
		return domain.ErrNoUser
	}
	if strings.TrimSpace(resumeText) == "" {
		return domain.ErrInvalidArgument
	}
	if len(resumeText) > p.maxBytes {
		return domain.ErrUploadTooLarge
	}
	if !utf8.ValidString(resumeText) || strings.ContainsRune(resumeText, 0) {
		return domain.ErrUploadWrongType
	}
	if err := p.profiles.SaveResume(ctx, userID, resumeText); err != nil {
		return err
	}
	// Cached rankings were scored against the previous resume.
	if p.searches != nil {
		p.searches.InvalidateUserSearches(ctx, userID)
	}
	return nil
}

func (p *profileUC) Resume(ctx context.Context, userID string) (string, error) {
	if userID == "" {
		return "", domain.ErrNoUser
	}
	prof, err := p.profiles.Load(ctx, userID)
	if err != nil {
		return "", err
	}
	return prof.ResumeText, nil
}

func (p *profileUC) RecordApplication(ctx context.Context, userID, jobID string, status model.ApplicationStatus) (model.Application, error) {
	if userID == "" {
		return model.Application{}, domain.ErrNoUser
	}
	if jobID == "" || !model.ValidStatus(status) {
		return model.Application{}, domain.ErrInvalidArgument
	}
	app := model.Application{
		ID:        ulid.Make().String(),
		JobID:     jobID,
		Status:    status,
		Timestamp: time.Now(),
	}
	if err := p.profiles.AppendApplication(ctx, userID, app); err != nil {
		// Not-applied on persistence failure; the caller surfaces it.
		return model.Application{}, err
	}
	return app, nil
}

func (p *profileUC) Applications(ctx context.Context, userID string) ([]model.Application, error) {
	if userID == "" {
		return nil, domain.ErrNoUser
	}
	apps, err := p.profiles.Applications(ctx, userID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []model.Application{}
	}
	return apps, nil
}
