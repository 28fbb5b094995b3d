package app

import (
	"context"
	"strings"

	"crewline/internal/common"
	"crewline/internal/domain/application"
	"crewline/internal/domain/transportation"
)

type TransportationService struct {
	repo         transportation.Repository
	applications application.Repository
}

func NewTransportationService(repo transportation.Repository, applications application.Repository) *TransportationService {
	return &TransportationService{repo: repo, applications: applications}
}

// Save creates or replaces the transport record for an accepted application.
func (s *TransportationService) Save(ctx context.Context, t transportation.Transportation) (*transportation.Transportation, error) {
	if t.VehicleCapacity < 1 {
		return nil, common.NewValidationError("invalid transportation", map[string]string{"vehicle_capacity": "vehicle_capacity must be at least 1"})
	}
	t.PickupLocation = strings.TrimSpace(t.PickupLocation)
	if t.PickupLocation == "" {
		return nil, common.NewValidationError("invalid transportation", map[string]string{"pickup_location": "pickup_location is required"})
	}
	if t.DepartureTime.IsZero() {
		return nil, common.NewValidationError("invalid transportation", map[string]string{"departure_time": "departure_time is required"})
	}
	app, err := s.applications.GetByID(ctx, t.ApplicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != application.StatusAccepted {
		return nil, common.NewValidationError("transportation requires an accepted application", nil)
	}
	t.EventID = app.EventID
	return s.repo.Upsert(ctx, t)
}

func (s *TransportationService) Get(ctx context.Context, applicationID common.UUID) (*transportation.Transportation, error) {
	return s.repo.GetByApplication(ctx, applicationID)
}

func (s *TransportationService) Delete(ctx context.Context, applicationID common.UUID) error {
	return s.repo.Delete(ctx, applicationID)
}
