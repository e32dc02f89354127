package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// MachineTemplateRepository defines machine template data operations
type MachineTemplateRepository interface {
	Create(ctx context.Context, template *entities.MachineTemplate) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.MachineTemplate, error)
	GetByName(ctx context.Context, name string) (*entities.MachineTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]*entities.MachineTemplate, error)
	Update(ctx context.Context, template *entities.MachineTemplate) error
	Delete(ctx context.Context, id uuid.UUID) error
}
