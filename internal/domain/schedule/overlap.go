// Package schedule holds the interval arithmetic behind the no-double-booking
// rule. It is pure: no storage, no side effects, safe to call speculatively.
package schedule

import (
	"time"

	"crewline/internal/common"
	"crewline/internal/domain/application"
)

// Window is a closed time interval [StartsAt, EndsAt].
type Window struct {
	StartsAt time.Time
	EndsAt   time.Time
}

// Overlaps reports whether two closed intervals share at least one instant.
// Boundaries are inclusive: an event ending exactly when another starts counts
// as a conflict. Agency policy; narrow to Before on both sides to allow
// back-to-back bookings.
func Overlaps(a, b Window) bool {
	return !a.StartsAt.After(b.EndsAt) && !b.StartsAt.After(a.EndsAt)
}

// Conflict describes one accepted assignment that collides with a candidate
// window, with enough detail to render a human-readable rejection.
type Conflict struct {
	EventID  common.UUID `json:"event_id"`
	Title    string      `json:"title"`
	StartsAt time.Time   `json:"starts_at"`
	EndsAt   time.Time   `json:"ends_at"`
}

// FindConflicts filters the applicant's accepted assignments down to those
// whose event windows overlap the candidate window.
func FindConflicts(accepted []application.AcceptedAssignment, candidate Window) []Conflict {
	var conflicts []Conflict
	for _, a := range accepted {
		if Overlaps(candidate, Window{StartsAt: a.StartsAt, EndsAt: a.EndsAt}) {
			conflicts = append(conflicts, Conflict{
				EventID:  a.EventID,
				Title:    a.Title,
				StartsAt: a.StartsAt,
				EndsAt:   a.EndsAt,
			})
		}
	}
	return conflicts
}
