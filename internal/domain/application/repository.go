package application

import (
	"context"
	"time"

	"crewline/internal/common"
)

// AcceptedAssignment is an accepted application joined with its event window,
// the raw material for the overlap check.
type AcceptedAssignment struct {
	ApplicationID common.UUID `json:"application_id"`
	EventID       common.UUID `json:"event_id"`
	Title         string      `json:"title"`
	StartsAt      time.Time   `json:"starts_at"`
	EndsAt        time.Time   `json:"ends_at"`
}

type Repository interface {
	Create(ctx context.Context, app Application) (*Application, error)
	GetByID(ctx context.Context, id common.UUID) (*Application, error)
	List(ctx context.Context, status Status) ([]Application, error)
	ListByApplicant(ctx context.Context, applicantID common.UUID) ([]Application, error)
	FindByEventAndApplicant(ctx context.Context, eventID, applicantID common.UUID) (*Application, error)

	// ListAcceptedByApplicant returns the applicant's accepted assignments with
	// their event windows, excluding the given application id.
	ListAcceptedByApplicant(ctx context.Context, applicantID, excluding common.UUID) ([]AcceptedAssignment, error)

	// ApplyDecision writes the decision if and only if the application is still
	// pending. If the row is gone it returns CodeNotFound; if it was decided in
	// the meantime, CodeValidation. State is never partially written.
	ApplyDecision(ctx context.Context, id common.UUID, d Decision) (*Application, error)

	// UpdateAssignedRole amends the role of an accepted application.
	UpdateAssignedRole(ctx context.Context, id common.UUID, role Role) (*Application, error)

	// UpdateNotes rewrites notes while the application is pending.
	UpdateNotes(ctx context.Context, id common.UUID, notes string) (*Application, error)

	// Delete withdraws a pending application.
	Delete(ctx context.Context, id common.UUID) error
}
