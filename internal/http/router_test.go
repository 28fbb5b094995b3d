package http

import (
	"bytes"
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"crewline/internal/app"
	"crewline/internal/common"
	"crewline/internal/domain/application"
	"crewline/internal/domain/event"
	"crewline/internal/domain/user"
	"crewline/internal/http/handlers"
	"crewline/internal/http/metrics"
	httpmw "crewline/internal/http/middleware"
	"crewline/internal/security"
)

type memEventRepo struct {
	mu     sync.Mutex
	events map[common.UUID]*event.Event
}

func (r *memEventRepo) add(ev event.Event) event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ev.ID == "" {
		ev.ID = common.NewUUID()
	}
	stored := ev
	r.events[ev.ID] = &stored
	return ev
}

func (r *memEventRepo) Create(ctx context.Context, ev event.Event) (*event.Event, error) {
	created := r.add(ev)
	return &created, nil
}

func (r *memEventRepo) GetByID(ctx context.Context, id common.UUID) (*event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ev, ok := r.events[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "event not found", nil)
	}
	copied := *ev
	return &copied, nil
}

func (r *memEventRepo) List(ctx context.Context, status event.Status) ([]event.Event, error) {
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

type memApplicationRepo struct {
	mu     sync.Mutex
	apps   map[common.UUID]*application.Application
	events *memEventRepo
}

func (r *memApplicationRepo) add(app application.Application) application.Application {
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

func (r *memApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	created := r.add(app)
	return &created, nil
}

func (r *memApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *memApplicationRepo) List(ctx context.Context, status application.Status) ([]application.Application, error) {
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

func (r *memApplicationRepo) ListByApplicant(ctx context.Context, applicantID common.UUID) ([]application.Application, error) {
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

func (r *memApplicationRepo) FindByEventAndApplicant(ctx context.Context, eventID, applicantID common.UUID) (*application.Application, error) {
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

func (r *memApplicationRepo) ListAcceptedByApplicant(ctx context.Context, applicantID, excluding common.UUID) ([]application.AcceptedAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []application.AcceptedAssignment
	for _, app := range r.apps {
		if app.ApplicantID != applicantID || app.Status != application.StatusAccepted || app.ID == excluding {
			continue
		}
		if ev, ok := r.events.events[app.EventID]; ok {
			items = append(items, application.AcceptedAssignment{
				ApplicationID: app.ID,
				EventID:       ev.ID,
				Title:         ev.Title,
				StartsAt:      ev.StartsAt,
				EndsAt:        ev.EndsAt,
			})
		}
	}
	return items, nil
}

func (r *memApplicationRepo) ApplyDecision(ctx context.Context, id common.UUID, d application.Decision) (*application.Application, error) {
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
	copied := *app
	return &copied, nil
}

func (r *memApplicationRepo) UpdateAssignedRole(ctx context.Context, id common.UUID, role application.Role) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.apps[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "accepted application not found", nil)
	}
	app.AssignedRole = &role
	copied := *app
	return &copied, nil
}

func (r *memApplicationRepo) UpdateNotes(ctx context.Context, id common.UUID, notes string) (*application.Application, error) {
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

func (r *memApplicationRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[id]; !ok {
		return common.NewError(common.CodeNotFound, "application not found", nil)
	}
	delete(r.apps, id)
	return nil
}

type routerFixture struct {
	handler nethttp.Handler
	apps    *memApplicationRepo
	events  *memEventRepo
	jwt     *security.JWTProvider
}

func newRouterFixture() *routerFixture {
	events := &memEventRepo{events: make(map[common.UUID]*event.Event)}
	apps := &memApplicationRepo{apps: make(map[common.UUID]*application.Application), events: events}

	jwtProvider := security.NewJWTProvider("test-secret")
	applicationService := app.NewApplicationService(apps, events)
	decisionService := app.NewDecisionService(apps, events)
	eventService := app.NewEventService(events)

	handler := NewRouter(RouterDependencies{
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, decisionService, nil),
		EventHandler:       handlers.NewEventHandler(eventService),
		AuthMiddleware:     httpmw.NewAuthMiddleware(jwtProvider),
		Metrics:            metrics.NewCollector(),
		RequestTimeout:     5 * time.Second,
	})
	return &routerFixture{handler: handler, apps: apps, events: events, jwt: jwtProvider}
}

func (f *routerFixture) token(t *testing.T, id common.UUID, role user.Role) string {
	t.Helper()
	token, _, err := f.jwt.Generate(id, string(role), time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		payload = bytes.NewBuffer(encoded)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	req := httptest.NewRequest(method, path, payload)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	f.handler.ServeHTTP(recorder, req)
	return recorder
}

func mustWindow(t *testing.T, start, end string) (time.Time, time.Time) {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	e, err := time.Parse(time.RFC3339, end)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return s, e
}

func TestDecisionEndpointRequiresAuth(t *testing.T) {
	f := newRouterFixture()
	rec := f.do(t, nethttp.MethodPut, "/applications/"+common.NewUUID().String(), "", map[string]string{"status": "accepted"})
	if rec.Code != nethttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestDecisionEndpointRequiresAdminRole(t *testing.T) {
	f := newRouterFixture()
	token := f.token(t, common.NewUUID(), user.RoleHost)
	rec := f.do(t, nethttp.MethodPut, "/applications/"+common.NewUUID().String(), token, map[string]string{"status": "accepted"})
	if rec.Code != nethttp.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestDecisionEndpointAccepts(t *testing.T) {
	f := newRouterFixture()
	start, end := mustWindow(t, "2026-06-01T10:00:00Z", "2026-06-01T14:00:00Z")
	ev := f.events.add(event.Event{Title: "Launch", StartsAt: start, EndsAt: end, Status: event.StatusApproved})
	app := f.apps.add(application.Application{EventID: ev.ID, ApplicantID: common.NewUUID(), RequestedRole: application.RoleHost})

	admin := common.NewUUID()
	token := f.token(t, admin, user.RoleAdmin)
	rec := f.do(t, nethttp.MethodPut, "/applications/"+app.ID.String(), token, map[string]string{"status": "accepted"})
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated application.Application
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Status != application.StatusAccepted {
		t.Fatalf("expected accepted, got %s", updated.Status)
	}
	if updated.AssignedRole == nil || *updated.AssignedRole != application.RoleHost {
		t.Fatalf("expected default role host, got %v", updated.AssignedRole)
	}
	if updated.DecidedBy == nil || *updated.DecidedBy != admin {
		t.Fatalf("expected decided_by %s, got %v", admin, updated.DecidedBy)
	}
}

func TestDecisionEndpointSchedulingConflictBody(t *testing.T) {
	f := newRouterFixture()
	applicant := common.NewUUID()
	startA, endA := mustWindow(t, "2026-06-01T10:00:00Z", "2026-06-01T14:00:00Z")
	eventA := f.events.add(event.Event{Title: "Event A", StartsAt: startA, EndsAt: endA, Status: event.StatusApproved})
	now := time.Now().UTC()
	admin := common.NewUUID()
	f.apps.add(application.Application{
		EventID:       eventA.ID,
		ApplicantID:   applicant,
		RequestedRole: application.RoleHost,
		Status:        application.StatusAccepted,
		DecidedAt:     &now,
		DecidedBy:     &admin,
	})

	startB, endB := mustWindow(t, "2026-06-01T12:00:00Z", "2026-06-01T16:00:00Z")
	eventB := f.events.add(event.Event{Title: "Event B", StartsAt: startB, EndsAt: endB, Status: event.StatusApproved})
	pending := f.apps.add(application.Application{EventID: eventB.ID, ApplicantID: applicant, RequestedRole: application.RoleHost})

	token := f.token(t, admin, user.RoleAdmin)
	rec := f.do(t, nethttp.MethodPut, "/applications/"+pending.ID.String(), token, map[string]string{"status": "accepted"})
	if rec.Code != nethttp.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Details struct {
			Conflicts []struct {
				Title    string `json:"title"`
				StartsAt string `json:"starts_at"`
				EndsAt   string `json:"ends_at"`
			} `json:"conflicts"`
		} `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Details.Conflicts) != 1 || body.Details.Conflicts[0].Title != "Event A" {
		t.Fatalf("expected Event A conflict, got %s", rec.Body.String())
	}
}

func TestDecisionEndpointAlreadyDecided(t *testing.T) {
	f := newRouterFixture()
	now := time.Now().UTC()
	admin := common.NewUUID()
	app := f.apps.add(application.Application{
		EventID:       common.NewUUID(),
		ApplicantID:   common.NewUUID(),
		RequestedRole: application.RoleHost,
		Status:        application.StatusRejected,
		DecidedAt:     &now,
		DecidedBy:     &admin,
	})

	token := f.token(t, admin, user.RoleAdmin)
	rec := f.do(t, nethttp.MethodPut, "/applications/"+app.ID.String(), token, map[string]string{"status": "accepted"})
	if rec.Code != nethttp.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDecisionEndpointUnknownApplication(t *testing.T) {
	f := newRouterFixture()
	token := f.token(t, common.NewUUID(), user.RoleAdmin)
	rec := f.do(t, nethttp.MethodPut, "/applications/"+common.NewUUID().String(), token, map[string]string{"status": "accepted"})
	if rec.Code != nethttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	f := newRouterFixture()
	rec := f.do(t, nethttp.MethodGet, "/health", "", nil)
	if rec.Code != nethttp.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
