package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// DemandRepository defines demand data operations
type DemandRepository interface {
	Create(ctx context.Context, demand *entities.Demand) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Demand, error)
	// GetByIDWithFarmer loads the demand with its owning farmer joined.
	GetByIDWithFarmer(ctx context.Context, id uuid.UUID) (*entities.Demand, error)
	List(ctx context.Context, filter entities.DemandFilter) ([]*entities.Demand, error)
	Update(ctx context.Context, demand *entities.Demand) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.DemandStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
