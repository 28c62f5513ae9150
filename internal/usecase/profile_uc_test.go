//go:build !integration

package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"jobsearch-assistant/internal/domain"
	"jobsearch-assistant/internal/domain/model"
)

func TestUploadResume(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		userID  string
		resume  string
		wantErr error
	}{
		{"valid", "u1", "Go developer with five years of backend work.", nil},
		{"no user", "", "text", domain.ErrNoUser},
		{"blank", "u1", "   \n\t", domain.ErrInvalidArgument},
		{"oversized", "u1", strings.Repeat("x", 1025), domain.ErrUploadTooLarge},
		{"binary", "u1", "PDF\x00binary blob", domain.ErrUploadWrongType},
		{"invalid utf8", "u1", string([]byte{0xff, 0xfe, 'a'}), domain.ErrUploadWrongType},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			repo := newMemProfileRepo()
			uc := NewProfileUseCase(repo, 1024, nil)

			err := uc.UploadResume(context.Background(), tc.userID, tc.resume)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("UploadResume() error = %v, want %v", err, tc.wantErr)
			}
			if tc.wantErr != nil {
				// Rejected uploads must leave nothing behind.
				got, _ := uc.Resume(context.Background(), "u1")
				if got != "" {
					t.Errorf("expected no stored resume after rejection, got %q", got)
				}
			}
		})
	}
}

func TestUploadResume_ReplacesPrevious(t *testing.T) {
	t.Parallel()

	repo := newMemProfileRepo()
	uc := NewProfileUseCase(repo, 0, nil) // 0 falls back to the default limit

	ctx := context.Background()
	if err := uc.UploadResume(ctx, "u1", "first version"); err != nil {
		t.Fatal(err)
	}
	if err := uc.UploadResume(ctx, "u1", "second version"); err != nil {
		t.Fatal(err)
	}
	got, err := uc.Resume(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if got != "second version" {
		t.Errorf("Resume() = %q, want %q", got, "second version")
	}
}

func TestRecordApplication(t *testing.T) {
	t.Parallel()

	repo := newMemProfileRepo()
	uc := NewProfileUseCase(repo, 1024, nil)
	ctx := context.Background()

	app, err := uc.RecordApplication(ctx, "u1", "job-1", model.StatusApplied)
	if err != nil {
		t.Fatal(err)
	}
	if app.ID == "" {
		t.Error("expected a generated application id")
	}
	if app.JobID != "job-1" || app.Status != model.StatusApplied {
		t.Errorf("unexpected application %+v", app)
	}

	// A later status for the same job appends, never rewrites.
	if _, err := uc.RecordApplication(ctx, "u1", "job-1", model.StatusInterview); err != nil {
		t.Fatal(err)
	}
	apps, err := uc.Applications(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(apps))
	}
	if got, ok := model.CurrentStatus(apps, "job-1"); !ok || got != model.StatusInterview {
		t.Errorf("CurrentStatus = %q (ok=%v), want %q", got, ok, model.StatusInterview)
	}
}

func TestRecordApplication_Validation(t *testing.T) {
	t.Parallel()

	repo := newMemProfileRepo()
	uc := NewProfileUseCase(repo, 1024, nil)
	ctx := context.Background()

	if _, err := uc.RecordApplication(ctx, "", "job-1", model.StatusApplied); !errors.Is(err, domain.ErrNoUser) {
		t.Errorf("missing user: got %v", err)
	}
	if _, err := uc.RecordApplication(ctx, "u1", "", model.StatusApplied); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("missing job: got %v", err)
	}
	if _, err := uc.RecordApplication(ctx, "u1", "job-1", model.ApplicationStatus("Ghosted")); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("unknown status: got %v", err)
	}
}

func TestRecordApplication_PersistenceFailure(t *testing.T) {
	t.Parallel()

	repo := newMemProfileRepo()
	repo.saveErr = errors.New("disk full")
	uc := NewProfileUseCase(repo, 1024, nil)

	if _, err := uc.RecordApplication(context.Background(), "u1", "job-1", model.StatusApplied); err == nil {
		t.Fatal("expected the persistence error to surface")
	}
	repo.saveErr = nil
	apps, err := uc.Applications(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 0 {
		t.Errorf("expected no recorded application after a failed save, got %d", len(apps))
	}
}

func TestApplications_EmptyHistory(t *testing.T) {
	t.Parallel()

	uc := NewProfileUseCase(newMemProfileRepo(), 1024, nil)
	apps, err := uc.Applications(context.Background(), "never-seen")
	if err != nil {
		t.Fatal(err)
	}
	if apps == nil || len(apps) != 0 {
		t.Errorf("expected an empty non-nil history, got %v", apps)
	}
}

func TestUploadResume_InvalidatesCachedSearches(t *testing.T) {
	t.Parallel()

	repo := newMemProfileRepo()
	cache := newMemJobCache()
	uc := NewProfileUseCase(repo, 1024, cache)
	ctx := context.Background()

	if err := uc.UploadResume(ctx, "u1", "Go developer"); err != nil {
		t.Fatal(err)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Fatalf("expected the user's cached searches dropped once, got %v", cache.invalidated)
	}

	// A rejected upload changes nothing, so the cache stays.
	if err := uc.UploadResume(ctx, "u1", "   "); err == nil {
		t.Fatal("expected the blank upload to be rejected")
	}
	if len(cache.invalidated) != 1 {
		t.Errorf("expected no invalidation on rejection, got %v", cache.invalidated)
	}
}
