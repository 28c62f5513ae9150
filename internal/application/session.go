// File: internal/application/session.go
package application

import (
	"sync"
	"time"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/usecase"
)

// State is the single source of truth for one user session: user, job
// cache, filters, applications, chat transcript and UI-visibility
// flags. It is only ever mutated through a declared Action.
type State struct {
	User         *model.User
	Jobs         []model.ScoredJob
	FilteredJobs []model.ScoredJob
	Applications []model.Application
	Filters      model.FilterCriteria
	Loading      bool
	ChatOpen     bool
	ChatMessages []model.ChatMessage
	Popup        *model.ScoredJob

	// jobsGeneration is the generation of the last accepted SetJobs.
	jobsGeneration uint64
}

// NewState returns the initial, unauthenticated state.
func NewState() State {
	return State{
		Jobs:         []model.ScoredJob{},
		FilteredJobs: []model.ScoredJob{},
		Applications: []model.Application{},
		Filters:      model.DefaultFilters(),
		ChatMessages: []model.ChatMessage{},
	}
}

// Action is the closed set of state transitions. Every transition is
// total: undefined combinations reduce to a no-op, never a panic.
type Action interface{ isAction() }

type SetUser struct{ User *model.User }

// SetJobs replaces the cached job list. Generation comes from
// BeginJobsFetch; a stale generation is dropped before reduction so a
// superseded in-flight fetch can never stomp fresher state.
type SetJobs struct {
	Generation uint64
	Jobs       []model.ScoredJob
}

type SetApplications struct{ Applications []model.Application }

type RecordApplication struct{ Application model.Application }

type UpdateFilters struct{ Patch model.FilterPatch }

type ClearFilters struct{}

type SetLoading struct{ Loading bool }

type ToggleChat struct{}

type AppendChatMessage struct{ Message model.ChatMessage }

type ShowPopup struct{ Job model.ScoredJob }

type HidePopup struct{}

func (SetUser) isAction()           {}
func (SetJobs) isAction()           {}
func (SetApplications) isAction()   {}
func (RecordApplication) isAction() {}
func (UpdateFilters) isAction()     {}
func (ClearFilters) isAction()      {}
func (SetLoading) isAction()        {}
func (ToggleChat) isAction()        {}
func (AppendChatMessage) isAction() {}
func (ShowPopup) isAction()         {}
func (HidePopup) isAction()         {}

// reduce is the pure transition function (state, action) -> state.
// now anchors the relative date-posted filter for re-derivation.
func reduce(s State, a Action, now time.Time) State {
	switch act := a.(type) {
	case SetUser:
		s.User = act.User

	case SetJobs:
		s.Jobs = act.Jobs
		if s.Jobs == nil {
			s.Jobs = []model.ScoredJob{}
		}
		s.jobsGeneration = act.Generation
		s.FilteredJobs = usecase.ApplyFilters(s.Jobs, s.Filters, now)

	case SetApplications:
		s.Applications = act.Applications
		if s.Applications == nil {
			s.Applications = []model.Application{}
		}

	case RecordApplication:
		// Append-only history; prior entries stay.
		s.Applications = append(append([]model.Application{}, s.Applications...), act.Application)

	case UpdateFilters:
		s.Filters = s.Filters.Merge(act.Patch)
		s.FilteredJobs = usecase.ApplyFilters(s.Jobs, s.Filters, now)

	case ClearFilters:
		s.Filters = model.DefaultFilters()
		s.FilteredJobs = usecase.ApplyFilters(s.Jobs, s.Filters, now)

	case SetLoading:
		s.Loading = act.Loading

	case ToggleChat:
		s.ChatOpen = !s.ChatOpen

	case AppendChatMessage:
		// Transcript is append-only, never truncated.
		s.ChatMessages = append(append([]model.ChatMessage{}, s.ChatMessages...), act.Message)

	case ShowPopup:
		job := act.Job
		s.Popup = &job

	case HidePopup:
		s.Popup = nil
	}
	return s
}

// Session wraps the state behind a lock so concurrent re-renders read
// a consistent snapshot while transitions stay serialized.
type Session struct {
	mu     sync.RWMutex
	state  State
	issued uint64 // latest generation handed out by BeginJobsFetch
	clock  func() time.Time
}

func NewSession() *Session {
	return &Session{state: NewState(), clock: time.Now}
}

// NewSessionWithClock is for tests that need a deterministic filter
// evaluation time.
func NewSessionWithClock(clock func() time.Time) *Session {
	if clock == nil {
		clock = time.Now
	}
	return &Session{state: NewState(), clock: clock}
}

// Dispatch applies one transition. A SetJobs older than the latest
// issued generation is dropped (last-started-wins).
func (s *Session) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sj, ok := a.(SetJobs); ok && sj.Generation < s.issued {
		return
	}
	s.state = reduce(s.state, a, s.clock())
}

// BeginJobsFetch issues the generation tag for a job fetch about to
// start. The matching SetJobs must carry it back.
func (s *Session) BeginJobsFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Snapshot returns a copy of the current state for rendering. Slices
// are shared but treated as immutable by convention: every transition
// replaces rather than mutates them.
func (s *Session) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// BestMatches is the derived top-scored view over the filtered set.
func (s *Session) BestMatches() []model.ScoredJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return usecase.BestMatches(s.state.FilteredJobs)
}
