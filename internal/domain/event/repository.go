package event

import (
	"context"

	"crewline/internal/common"
)

type Repository interface {
	Create(ctx context.Context, e Event) (*Event, error)
	GetByID(ctx context.Context, id common.UUID) (*Event, error)
	List(ctx context.Context, status Status) ([]Event, error)
}
