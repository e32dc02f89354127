package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByPhone(ctx context.Context, phone string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, role *entities.UserRole, approval *entities.ApprovalStatus) ([]*entities.User, error)
	SearchByName(ctx context.Context, query string, limit int) ([]*entities.User, error)
	// FindNearby returns approved users inside a latitude/longitude
	// bounding box, optionally filtered by role (dual-role accounts always
	// match a role filter).
	FindNearby(ctx context.Context, minLat, maxLat, minLon, maxLon float64, role *entities.UserRole) ([]*entities.NearbyUser, error)
}
