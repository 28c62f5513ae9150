// File: internal/application/facade.go
package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"jobsearch-assistant/internal/domain"
	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/adapter"
)

// ---- small interfaces to decouple the facade from concrete usecase structs ----
// These describe the minimal surface the facade needs; tests pass in
// light-weight mocks.

type JobsUseCaseIface interface {
	FetchRanked(ctx context.Context, userID, what, where string) ([]model.ScoredJob, error)
}

type ProfileUseCaseIface interface {
	UploadResume(ctx context.Context, userID, resumeText string) error
	Resume(ctx context.Context, userID string) (string, error)
	RecordApplication(ctx context.Context, userID, jobID string, status model.ApplicationStatus) (model.Application, error)
	Applications(ctx context.Context, userID string) ([]model.Application, error)
}

type AssistantUseCaseIface interface {
	Handle(ctx context.Context, history []model.ChatMessage, query string) (adapter.IntentResult, error)
}

// Facade composes the usecases into the session-level operations the
// web surface exposes. It owns one Session per user and keeps derived
// state consistent across asynchronous updates.
type Facade struct {
	JobsUC      JobsUseCaseIface
	ProfileUC   ProfileUseCaseIface
	AssistantUC AssistantUseCaseIface
	Log         *zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewFacade(jobsUC JobsUseCaseIface, profileUC ProfileUseCaseIface, assistantUC AssistantUseCaseIface, log *zerolog.Logger) *Facade {
	return &Facade{
		JobsUC:      jobsUC,
		ProfileUC:   profileUC,
		AssistantUC: assistantUC,
		Log:         log,
		sessions:    make(map[string]*Session),
	}
}

// SessionFor returns (creating on first use) the session for a user.
func (f *Facade) SessionFor(userID string) *Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[userID]
	if !ok {
		s = NewSession()
		f.sessions[userID] = s
	}
	return s
}

// Login sets the session user and loads the application history.
// Authentication itself is a stub boundary handled by the web layer.
func (f *Facade) Login(ctx context.Context, email string) (*model.User, error) {
	u, err := model.NewUser(email)
	if err != nil {
		return nil, err
	}
	resume, err := f.ProfileUC.Resume(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("load resume: %w", err)
	}
	u.ResumeText = resume

	sess := f.SessionFor(u.ID)
	sess.Dispatch(SetUser{User: u})

	apps, err := f.ProfileUC.Applications(ctx, u.ID)
	if err != nil {
		// History is non-fatal at login; the session starts empty.
		if f.Log != nil {
			f.Log.Warn().Err(err).Str("user_id", u.ID).Msg("could not load application history")
		}
		apps = []model.Application{}
	}
	sess.Dispatch(SetApplications{Applications: apps})
	return u, nil
}

// UploadResume stores the resume and enables the job feed.
func (f *Facade) UploadResume(ctx context.Context, userID, resumeText string) error {
	sess := f.SessionFor(userID)
	if sess.Snapshot().User.IsZero() {
		return domain.ErrNoUser
	}
	if err := f.ProfileUC.UploadResume(ctx, userID, resumeText); err != nil {
		return err
	}
	u := *sess.Snapshot().User
	u.ResumeText = resumeText
	sess.Dispatch(SetUser{User: &u})
	return nil
}

// RefreshJobs fetches and ranks the feed for the current search terms,
// then replaces the session job cache. A fetch superseded by a newer
// one is discarded by the session's generation check.
func (f *Facade) RefreshJobs(ctx context.Context, userID, what, where string) ([]model.ScoredJob, error) {
	sess := f.SessionFor(userID)
	gen := sess.BeginJobsFetch()
	sess.Dispatch(SetLoading{Loading: true})
	defer sess.Dispatch(SetLoading{Loading: false})

	ranked, err := f.JobsUC.FetchRanked(ctx, userID, what, where)
	if err != nil {
		return nil, err
	}
	sess.Dispatch(SetJobs{Generation: gen, Jobs: ranked})
	return sess.Snapshot().FilteredJobs, nil
}

// RecordApplication appends a status entry and mirrors it in session state.
func (f *Facade) RecordApplication(ctx context.Context, userID, jobID string, status model.ApplicationStatus) (model.Application, error) {
	sess := f.SessionFor(userID)
	if sess.Snapshot().User.IsZero() {
		return model.Application{}, domain.ErrNoUser
	}
	app, err := f.ProfileUC.RecordApplication(ctx, userID, jobID, status)
	if err != nil {
		return model.Application{}, err
	}
	sess.Dispatch(RecordApplication{Application: app})
	return app, nil
}

// Applications returns the persisted status history for a user.
func (f *Facade) Applications(ctx context.Context, userID string) ([]model.Application, error) {
	return f.ProfileUC.Applications(ctx, userID)
}

// Chat routes one utterance through the assistant. The user message
// and the reply always land in the transcript; a filter payload is
// applied and followed by a job re-fetch.
func (f *Facade) Chat(ctx context.Context, userID, query, what, where string) (adapter.IntentResult, error) {
	sess := f.SessionFor(userID)
	history := sess.Snapshot().ChatMessages

	res, err := f.AssistantUC.Handle(ctx, history, query)
	if err != nil {
		return adapter.IntentResult{}, err
	}

	sess.Dispatch(AppendChatMessage{Message: model.ChatMessage{Role: model.RoleUser, Content: query}})
	sess.Dispatch(AppendChatMessage{Message: model.ChatMessage{Role: model.RoleAssistant, Content: res.Reply}})

	if res.Filters != nil {
		if res.Filters.Clear {
			sess.Dispatch(ClearFilters{})
		} else {
			sess.Dispatch(UpdateFilters{Patch: *res.Filters})
		}
		if _, err := f.RefreshJobs(ctx, userID, what, where); err != nil && f.Log != nil {
			f.Log.Warn().Err(err).Str("user_id", userID).Msg("job refresh after filter update failed")
		}
	}
	return res, nil
}
