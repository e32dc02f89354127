package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// VIPRequestRepository defines legacy upgrade-request data operations
type VIPRequestRepository interface {
	Create(ctx context.Context, request *entities.VIPUpgradeRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.VIPUpgradeRequest, error)
	GetPendingByUser(ctx context.Context, userID uuid.UUID) (*entities.VIPUpgradeRequest, error)
	List(ctx context.Context, filter entities.VIPRequestFilter) ([]*entities.VIPUpgradeRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VIPRequestStatus) error
}
