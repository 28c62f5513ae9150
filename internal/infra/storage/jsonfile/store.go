// File: internal/infra/storage/jsonfile/store.go

// Package jsonfile is the zero-dependency profile store: one JSON file
// on disk, read-modify-write under a process-wide lock. It is the
// default storage driver for local runs; deployments point the config
// at postgres instead.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"jobsearch-assistant/internal/domain/model"
	"jobsearch-assistant/internal/domain/ports/repository"
)

// Compile-time check
var _ repository.ProfileRepository = (*Store)(nil)

type fileData struct {
	Users map[string]*userRecord `json:"users"`
}

type userRecord struct {
	Resume       string              `json:"resume"`
	Applications []model.Application `json:"applications,omitempty"`
}

// Store persists profiles in a single JSON document.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonfile: empty path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("jsonfile: create dir: %w", err)
		}
	}
	return &Store{path: path}, nil
}

func (s *Store) Load(ctx context.Context, userID string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}
	prof := &model.Profile{UserID: userID, Applications: []model.Application{}}
	if rec, ok := data.Users[userID]; ok {
		prof.ResumeText = rec.Resume
		prof.Applications = append(prof.Applications, rec.Applications...)
	}
	return prof, nil
}

func (s *Store) SaveResume(ctx context.Context, userID, resumeText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	rec := data.Users[userID]
	if rec == nil {
		rec = &userRecord{}
		data.Users[userID] = rec
	}
	rec.Resume = resumeText
	return s.write(data)
}

func (s *Store) AppendApplication(ctx context.Context, userID string, app model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	rec := data.Users[userID]
	if rec == nil {
		rec = &userRecord{}
		data.Users[userID] = rec
	}
	rec.Applications = append(rec.Applications, app)
	return s.write(data)
}

func (s *Store) Applications(ctx context.Context, userID string) ([]model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return nil, err
	}
	rec := data.Users[userID]
	if rec == nil {
		return []model.Application{}, nil
	}
	return append([]model.Application{}, rec.Applications...), nil
}

// read loads the whole document. A missing file means a fresh store.
func (s *Store) read() (*fileData, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &fileData{Users: map[string]*userRecord{}}, nil
		}
		return nil, fmt.Errorf("jsonfile: read: %w", err)
	}
	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", s.path, err)
	}
	if data.Users == nil {
		data.Users = map[string]*userRecord{}
	}
	return &data, nil
}

// write replaces the document atomically via a temp file rename.
func (s *Store) write(data *fileData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write temp: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("jsonfile: rename: %w", err)
	}
	return nil
}
