package event

import (
	"time"

	"crewline/internal/common"
)

type Status string

const (
	StatusRequested Status = "requested"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusCompleted Status = "completed"
)

// Event windows are immutable once the event is approved; the decision engine
// relies on that when it reads them outside its critical section.
type Event struct {
	ID        common.UUID `json:"id"`
	Title     string      `json:"title"`
	Location  string      `json:"location"`
	Venue     string      `json:"venue,omitempty"`
	StartsAt  time.Time   `json:"starts_at"`
	EndsAt    time.Time   `json:"ends_at"`
	HostCount int         `json:"host_count"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// HasWindow reports whether the event carries a resolved time window.
func (e Event) HasWindow() bool {
	return !e.StartsAt.IsZero() && !e.EndsAt.IsZero() && e.StartsAt.Before(e.EndsAt)
}
