//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"jobsearch-assistant/internal/domain/model"
)

func TestProfileRepo_LoadUnknownUser(t *testing.T) {
	cleanup(t)
	repo := NewPostgresProfileRepo(testPool)

	prof, err := repo.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if prof.ResumeText != "" {
		t.Errorf("expected empty resume, got %q", prof.ResumeText)
	}
	if prof.Applications == nil || len(prof.Applications) != 0 {
		t.Errorf("expected empty non-nil applications, got %v", prof.Applications)
	}
}

func TestProfileRepo_SaveResumeUpsert(t *testing.T) {
	cleanup(t)
	repo := NewPostgresProfileRepo(testPool)
	ctx := context.Background()

	if err := repo.SaveResume(ctx, "u1", "first"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SaveResume(ctx, "u1", "second"); err != nil {
		t.Fatal(err)
	}
	prof, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if prof.ResumeText != "second" {
		t.Errorf("ResumeText = %q, want %q", prof.ResumeText, "second")
	}
}

func TestProfileRepo_ApplicationsAppendOnlyAndOrdered(t *testing.T) {
	cleanup(t)
	repo := NewPostgresProfileRepo(testPool)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Millisecond)
	entries := []model.Application{
		{ID: ulid.Make().String(), JobID: "job-1", Status: model.StatusApplied, Timestamp: base},
		{ID: ulid.Make().String(), JobID: "job-1", Status: model.StatusInterview, Timestamp: base.Add(time.Minute)},
		{ID: ulid.Make().String(), JobID: "job-2", Status: model.StatusApplied, Timestamp: base.Add(2 * time.Minute)},
	}
	for _, e := range entries {
		if err := repo.AppendApplication(ctx, "u1", e); err != nil {
			t.Fatal(err)
		}
	}

	apps, err := repo.Applications(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(apps) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(apps))
	}
	for i := range entries {
		if apps[i].ID != entries[i].ID {
			t.Errorf("entry %d out of order: got %s want %s", i, apps[i].ID, entries[i].ID)
		}
	}
	if status, ok := model.CurrentStatus(apps, "job-1"); !ok || status != model.StatusInterview {
		t.Errorf("CurrentStatus = %q (ok=%v)", status, ok)
	}

	// Histories are per user.
	other, err := repo.Applications(ctx, "u2")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("expected no entries for another user, got %d", len(other))
	}
}

func TestProfileRepo_DuplicateApplicationID(t *testing.T) {
	cleanup(t)
	repo := NewPostgresProfileRepo(testPool)
	ctx := context.Background()

	app := model.Application{ID: ulid.Make().String(), JobID: "job-1", Status: model.StatusApplied, Timestamp: time.Now()}
	if err := repo.AppendApplication(ctx, "u1", app); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendApplication(ctx, "u1", app); err == nil {
		t.Fatal("expected a duplicate id to be rejected")
	}
}
