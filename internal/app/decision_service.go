package app

import (
	"context"
	"strings"
	"time"

	"crewline/internal/common"
	"crewline/internal/domain/application"
	"crewline/internal/domain/event"
	"crewline/internal/domain/schedule"
)

// DecideRequest is the closed shape of one admin decision: a desired terminal
// status plus an optional assigned-role override.
type DecideRequest struct {
	Status       application.Status
	AssignedRole application.Role // empty means default to the requested role
}

// DecisionService moves applications out of pending. Decisions are final:
// there is no transition away from accepted or rejected, and the decision
// timestamp and deciding admin are written exactly once.
type DecisionService struct {
	repo   application.Repository
	events event.Repository
	locks  *applicantLocks
	now    func() time.Time
}

func NewDecisionService(repo application.Repository, events event.Repository) *DecisionService {
	return &DecisionService{
		repo:   repo,
		events: events,
		locks:  newApplicantLocks(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Decide validates and applies a pending → accepted/rejected transition.
// Accepting runs the overlap check against the applicant's other accepted
// assignments inside a per-applicant critical section, so two racing accepts
// for the same person cannot both commit.
func (s *DecisionService) Decide(ctx context.Context, applicationID common.UUID, req DecideRequest, decidedBy common.UUID) (*application.Application, error) {
	desired := application.Status(strings.ToLower(strings.TrimSpace(string(req.Status))))
	if desired != application.StatusAccepted && desired != application.StatusRejected {
		return nil, common.NewValidationError("invalid status", map[string]string{"status": "status must be accepted or rejected"})
	}

	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(app.ApplicantID)
	defer unlock()

	// Re-read inside the critical section; a concurrent decision may have
	// landed while we waited for the lock.
	app, err = s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != application.StatusPending {
		return nil, common.NewValidationError("invalid transition: application is already "+string(app.Status), nil)
	}

	decision := application.Decision{
		Status:    desired,
		DecidedBy: decidedBy,
		DecidedAt: s.now(),
	}

	if desired == application.StatusAccepted {
		role, err := resolveRole(app.RequestedRole, req.AssignedRole)
		if err != nil {
			return nil, err
		}
		if err := s.checkSchedule(ctx, app); err != nil {
			return nil, err
		}
		decision.AssignedRole = role
	}

	return s.repo.ApplyDecision(ctx, applicationID, decision)
}

// UpdateAssignedRole amends the role on an already-accepted application. The
// event window is unchanged, so no overlap check is needed.
func (s *DecisionService) UpdateAssignedRole(ctx context.Context, applicationID common.UUID, role application.Role) (*application.Application, error) {
	role = application.Role(strings.ToLower(strings.TrimSpace(string(role))))
	if !application.ValidRole(role) {
		return nil, common.NewValidationError("invalid role", map[string]string{"assigned_role": "role must be host or team_leader"})
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != application.StatusAccepted {
		return nil, common.NewValidationError("assigned role can only be changed on an accepted application", nil)
	}
	return s.repo.UpdateAssignedRole(ctx, applicationID, role)
}

func (s *DecisionService) checkSchedule(ctx context.Context, app *application.Application) error {
	ev, err := s.events.GetByID(ctx, app.EventID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewValidationError("event is unavailable", nil)
		}
		return err
	}
	if ev.Status != event.StatusApproved || !ev.HasWindow() {
		return common.NewValidationError("event is unavailable", nil)
	}
	accepted, err := s.repo.ListAcceptedByApplicant(ctx, app.ApplicantID, app.ID)
	if err != nil {
		return err
	}
	conflicts := schedule.FindConflicts(accepted, schedule.Window{StartsAt: ev.StartsAt, EndsAt: ev.EndsAt})
	if len(conflicts) > 0 {
		return common.NewConflictError("applicant is already booked for an overlapping event", map[string]any{"conflicts": conflicts})
	}
	return nil
}

func resolveRole(requested, override application.Role) (application.Role, error) {
	role := application.Role(strings.ToLower(strings.TrimSpace(string(override))))
	if role == "" {
		role = requested
	}
	if !application.ValidRole(role) {
		return "", common.NewValidationError("invalid role", map[string]string{"assigned_role": "role must be host or team_leader"})
	}
	return role, nil
}
