package transportation

import (
	"context"

	"crewline/internal/common"
)

type Repository interface {
	Upsert(ctx context.Context, t Transportation) (*Transportation, error)
	GetByApplication(ctx context.Context, applicationID common.UUID) (*Transportation, error)
	Delete(ctx context.Context, applicationID common.UUID) error
}
