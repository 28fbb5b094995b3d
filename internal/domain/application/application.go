package application

import (
	"time"

	"crewline/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether the status admits no further transition.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Role string

const (
	RoleHost       Role = "host"
	RoleTeamLeader Role = "team_leader"
)

func ValidRole(r Role) bool {
	return r == RoleHost || r == RoleTeamLeader
}

// Application is a host's or team leader's request to work one event.
// EventID, ApplicantID and RequestedRole are fixed at creation; AssignedRole,
// DecidedAt and DecidedBy are written exactly once, when the application
// leaves pending.
type Application struct {
	ID            common.UUID  `json:"id"`
	EventID       common.UUID  `json:"event_id"`
	ApplicantID   common.UUID  `json:"applicant_id"`
	RequestedRole Role         `json:"requested_role"`
	AssignedRole  *Role        `json:"assigned_role,omitempty"`
	Status        Status       `json:"status"`
	Notes         string       `json:"notes,omitempty"`
	DecidedAt     *time.Time   `json:"decided_at,omitempty"`
	DecidedBy     *common.UUID `json:"decided_by,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Decision is the terminal write applied to a pending application.
// AssignedRole is set only when Status is accepted.
type Decision struct {
	Status       Status
	AssignedRole Role
	DecidedBy    common.UUID
	DecidedAt    time.Time
}
