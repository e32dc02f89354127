package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
	"ykri.backend/pkg/geo"
)

// UserUsecase handles user profile and directory business logic
type UserUsecase struct {
	userRepo repositories.UserRepository
}

// NewUserUsecase creates a new user usecase
func NewUserUsecase(userRepo repositories.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

// GetByID returns a user by id
func (u *UserUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// List returns users, optionally filtered by role and approval status
func (u *UserUsecase) List(ctx context.Context, role *entities.UserRole, approval *entities.ApprovalStatus) ([]*entities.User, error) {
	return u.userRepo.List(ctx, role, approval)
}

// Search finds approved users by partial name match
func (u *UserUsecase) Search(ctx context.Context, query string, limit int) ([]*entities.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.BadRequest("query is required")
	}
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	return u.userRepo.SearchByName(ctx, query, limit)
}

// Update applies a profile update. Only admins may change approval status
// or role.
func (u *UserUsecase) Update(ctx context.Context, actorID, targetID uuid.UUID, actorRole entities.UserRole, input *entities.UpdateUserInput) (*entities.User, error) {
	isAdmin := actorRole == entities.UserRoleAdmin
	if actorID != targetID && !isAdmin {
		return nil, domainerrors.Forbidden("cannot update another user")
	}

	user, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Phone != nil {
		user.Phone = null.NewString(*input.Phone, *input.Phone != "")
	}
	if input.Lat != nil {
		user.LocationLat = *input.Lat
	}
	if input.Lon != nil {
		user.LocationLon = *input.Lon
	}
	if input.ActiveMode != "" {
		if user.Role != entities.UserRoleBoth {
			return nil, domainerrors.BadRequest("active mode only applies to dual-role accounts")
		}
		switch input.ActiveMode {
		case entities.ActiveModeFarmer, entities.ActiveModeProvider:
			user.ActiveMode = null.StringFrom(string(input.ActiveMode))
		default:
			return nil, domainerrors.BadRequest("invalid active mode")
		}
	}
	if input.Role != "" {
		if !isAdmin {
			return nil, domainerrors.Forbidden("only admins may change roles")
		}
		user.Role = input.Role
	}
	if input.ApprovalStatus != "" {
		if !isAdmin {
			return nil, domainerrors.Forbidden("only admins may change approval status")
		}
		switch input.ApprovalStatus {
		case entities.ApprovalStatusPending, entities.ApprovalStatusApproved, entities.ApprovalStatusDenied:
			user.ApprovalStatus = input.ApprovalStatus
		default:
			return nil, domainerrors.BadRequest("invalid approval status")
		}
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete soft deletes a user. Admin accounts cannot be deleted.
func (u *UserUsecase) Delete(ctx context.Context, actorID, targetID uuid.UUID, actorRole entities.UserRole) error {
	if actorID != targetID && actorRole != entities.UserRoleAdmin {
		return domainerrors.Forbidden("cannot delete another user")
	}

	target, err := u.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role == entities.UserRoleAdmin {
		return domainerrors.Forbidden("admin accounts cannot be deleted")
	}

	return u.userRepo.SoftDelete(ctx, targetID)
}

// FindNearby returns approved users within radiusKm of the given point,
// optionally filtered by role. The search is a coarse bounding box; callers
// wanting exact distances filter the result themselves.
func (u *UserUsecase) FindNearby(ctx context.Context, lat, lon, radiusKm float64, role *entities.UserRole) ([]*entities.NearbyUser, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, domainerrors.BadRequest("invalid coordinates")
	}
	if radiusKm <= 0 {
		return nil, domainerrors.BadRequest("radius must be positive")
	}

	box := geo.BoxAround(lat, lon, radiusKm)
	users, err := u.userRepo.FindNearby(ctx, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, role)
	if err != nil {
		return nil, err
	}
	return users, nil
}
