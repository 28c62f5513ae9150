package model

import "time"

type ApplicationStatus string

const (
	StatusApplied        ApplicationStatus = "Applied"
	StatusAppliedEarlier ApplicationStatus = "Applied Earlier"
	StatusInterview      ApplicationStatus = "Interview"
	StatusOffer          ApplicationStatus = "Offer"
	StatusRejected       ApplicationStatus = "Rejected"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s ApplicationStatus) bool {
	switch s {
	case StatusApplied, StatusAppliedEarlier, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// Application is one entry in a user's status history for a job.
// Entries are never merged or removed; the list is append-only and the
// latest entry per job is the authoritative current status.
type Application struct {
	ID        string            `json:"id"`
	JobID     string            `json:"jobId"`
	Status    ApplicationStatus `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
}

// CurrentStatus derives the current status for jobID from the history:
// the entry with the latest timestamp wins. ok is false when the job
// has no entries.
func CurrentStatus(apps []Application, jobID string) (ApplicationStatus, bool) {
	var (
		best  Application
		found bool
	)
	for _, a := range apps {
		if a.JobID != jobID {
			continue
		}
		if !found || !a.Timestamp.Before(best.Timestamp) {
			best = a
			found = true
		}
	}
	return best.Status, found
}
