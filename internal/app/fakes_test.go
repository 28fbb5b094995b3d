package app

import (
	"context"
	"sync"
	"time"

	"crewline/internal/common"
	"crewline/internal/domain/application"
	"crewline/internal/domain/event"
)

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[common.UUID]*event.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[common.UUID]*event.Event)}
}

func (r *fakeEventRepo) add(ev event.Event) event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == "" {
		ev.ID = common.NewUUID()
	}
	stored := ev
	r.events[ev.ID] = &stored
	return ev
}

func (r *fakeEventRepo) Create(ctx context.Context, ev event.Event) (*event.Event, error) {
	created := r.add(ev)
	return &created, nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, id common.UUID) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "event not found", nil)
	}
	copied := *ev
	return &copied, nil
}

func (r *fakeEventRepo) List(ctx context.Context, status event.Status) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []event.Event
	for _, ev := range r.events {
		if status == "" || ev.Status == status {
			items = append(items, *ev)
		}
	}
	return items, nil
}

type fakeApplicationRepo struct {
	mu     sync.Mutex
	apps   map[common.UUID]*application.Application
	events *fakeEventRepo
}

func newFakeApplicationRepo(events *fakeEventRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[common.UUID]*application.Application), events: events}
}

func (r *fakeApplicationRepo) add(app application.Application) application.Application {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == "" {
		app.ID = common.NewUUID()
	}
	if app.Status == "" {
		app.Status = application.StatusPending
	}
	stored := app
	r.apps[app.ID] = &stored
	return app
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	created := r.add(app)
	return &created, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) List(ctx context.Context, status application.Status) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if status == "" || app.Status == status {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.Application
	for _, app := range r.apps {
		if app.ApplicantID == applicantID {
			items = append(items, *app)
		}
	}
	return items, nil
}

func (r *fakeApplicationRepo) FindByEventAndApplicant(ctx context.Context, eventID, applicantID common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.EventID == eventID && app.ApplicantID == applicantID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "application not found", nil)
}

func (r *fakeApplicationRepo) ListAcceptedByApplicant(ctx context.Context, applicantID, excluding common.UUID) ([]application.AcceptedAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.AcceptedAssignment
	for _, app := range r.apps {
		if app.ApplicantID != applicantID || app.Status != application.StatusAccepted || app.ID == excluding {
			continue
		}
		ev, ok := r.events.events[app.EventID]
		if !ok {
			continue
		}
		items = append(items, application.AcceptedAssignment{
			ApplicationID: app.ID,
			EventID:       ev.ID,
			Title:         ev.Title,
			StartsAt:      ev.StartsAt,
			EndsAt:        ev.EndsAt,
		})
	}
	return items, nil
}

func (r *fakeApplicationRepo) ApplyDecision(ctx context.Context, id common.UUID, d application.Decision) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if app.Status != application.StatusPending {
		return nil, common.NewValidationError("invalid transition: application is already "+string(app.Status), nil)
	}
	app.Status = d.Status
	if d.AssignedRole != "" {
		role := d.AssignedRole
		app.AssignedRole = &role
	}
	at := d.DecidedAt
	by := d.DecidedBy
	app.DecidedAt = &at
	app.DecidedBy = &by
	app.UpdatedAt = d.DecidedAt
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) UpdateAssignedRole(ctx context.Context, id common.UUID, role application.Role) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok || app.Status != application.StatusAccepted {
		return nil, common.NewError(common.CodeNotFound, "accepted application not found", nil)
	}
	app.AssignedRole = &role
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) UpdateNotes(ctx context.Context, id common.UUID, notes string) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Notes = notes
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	delete(r.apps, id)
	return nil
}
