package model

import (
	"strings"
	"time"

	"jobsearch-assistant/internal/domain"

	"github.com/google/uuid"
)

// User is a domain entity representing a logged-in job seeker.
// ResumeText stays empty until the user uploads a resume; the job feed
// is gated on it being set.
type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	ResumeText   string `json:"resume_text,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewUser derives a stable ID from the email so repeated logins map to
// the same stored profile.
func NewUser(email string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &User{
		ID:           uuid.NewSHA1(uuid.NameSpaceOID, []byte(email)).String(),
		Email:        email,
		RegisteredAt: time.Now(),
	}, nil
}

func (u *User) IsZero() bool    { return u == nil || u.ID == "" }
func (u *User) HasResume() bool { return u != nil && strings.TrimSpace(u.ResumeText) != "" }

// Profile is the persisted slice of a user: the resume plus the
// append-only application history.
type Profile struct {
	UserID       string        `json:"user_id"`
	ResumeText   string        `json:"resume_text"`
	Applications []Application `json:"applications"`
}
