package app

import (
	"context"
	"strings"

	"crewline/internal/common"
	"crewline/internal/domain/event"
)

type EventService struct {
	repo event.Repository
}

func NewEventService(repo event.Repository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) Create(ctx context.Context, ev event.Event) (*event.Event, error) {
	ev.Title = strings.TrimSpace(ev.Title)
	if ev.Title == "" {
		return nil, common.NewValidationError("invalid event", map[string]string{"title": "title is required"})
	}
	if !ev.HasWindow() {
		return nil, common.NewValidationError("invalid event", map[string]string{"starts_at": "starts_at must precede ends_at"})
	}
	if ev.HostCount < 0 {
		return nil, common.NewValidationError("invalid event", map[string]string{"host_count": "host_count must not be negative"})
	}
	if ev.Status == "" {
		ev.Status = event.StatusRequested
	}
	return s.repo.Create(ctx, ev)
}

func (s *EventService) Get(ctx context.Context, id common.UUID) (*event.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) List(ctx context.Context, status event.Status) ([]event.Event, error) {
	return s.repo.List(ctx, status)
}
