package domain

import "time"

// StatusFilter narrows task listings by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = ""
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// ParseStatusFilter interprets the ?status= query value. Anything other than
// "completed" or "pending" means no filtering, matching how unknown values
// have always been ignored rather than rejected.
func ParseStatusFilter(s string) StatusFilter {
	switch s {
	case "completed":
		return StatusCompleted
	case "pending":
		return StatusPending
	default:
		return StatusAll
	}
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PendingSummary is one row of the daily digest: a user and how many
// of their tasks are still open.
type PendingSummary struct {
	UserID  string
	Name    string
	Email   string
	Pending int
}
