package app

import (
	"context"
	"strings"

	"crewline/internal/common"
	"crewline/internal/domain/application"
	"crewline/internal/domain/event"
)

type ApplicationService struct {
	repo   application.Repository
	events event.Repository
}

func NewApplicationService(repo application.Repository, events event.Repository) *ApplicationService {
	return &ApplicationService{repo: repo, events: events}
}

// Apply files a pending application against an approved event. One
// application per (event, applicant) pair.
func (s *ApplicationService) Apply(ctx context.Context, eventID, applicantID common.UUID, requestedRole application.Role, notes string) (*application.Application, error) {
	requestedRole = application.Role(strings.ToLower(strings.TrimSpace(string(requestedRole))))
	if !application.ValidRole(requestedRole) {
		return nil, common.NewValidationError("invalid role", map[string]string{"requested_role": "role must be host or team_leader"})
	}
	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if ev.Status != event.StatusApproved {
		return nil, common.NewValidationError("event is not open for applications", nil)
	}
	if _, err := s.repo.FindByEventAndApplicant(ctx, eventID, applicantID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this event", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	app := application.Application{
		EventID:       eventID,
		ApplicantID:   applicantID,
		RequestedRole: requestedRole,
		Status:        application.StatusPending,
		Notes:         strings.TrimSpace(notes),
	}
	return s.repo.Create(ctx, app)
}

func (s *ApplicationService) Get(ctx context.Context, id common.UUID) (*application.Application, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ApplicationService) List(ctx context.Context, status application.Status) ([]application.Application, error) {
	if status != "" && status != application.StatusPending && !status.IsTerminal() {
		return nil, common.NewValidationError("invalid status filter", map[string]string{"status": "status must be pending, accepted, or rejected"})
	}
	return s.repo.List(ctx, status)
}

func (s *ApplicationService) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	return s.repo.ListByApplicant(ctx, applicantID)
}

// UpdateNotes rewrites the applicant's notes. Only the owner may edit, and
// only while the application is pending.
func (s *ApplicationService) UpdateNotes(ctx context.Context, id, applicantID common.UUID, notes string) (*application.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.ApplicantID != applicantID {
		return nil, common.NewError(common.CodeForbidden, "application belongs to another applicant", nil)
	}
	if app.Status != application.StatusPending {
		return nil, common.NewValidationError("notes can only be edited while the application is pending", nil)
	}
	return s.repo.UpdateNotes(ctx, id, strings.TrimSpace(notes))
}

// Withdraw deletes the applicant's own pending application.
func (s *ApplicationService) Withdraw(ctx context.Context, id, applicantID common.UUID) error {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if app.ApplicantID != applicantID {
		return common.NewError(common.CodeForbidden, "application belongs to another applicant", nil)
	}
	if app.Status != application.StatusPending {
		return common.NewValidationError("only pending applications can be withdrawn", nil)
	}
	return s.repo.Delete(ctx, id)
}
