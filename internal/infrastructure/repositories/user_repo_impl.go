package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/infrastructure/models"
	"ykri.backend/pkg/utils"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = utils.GenerateUUIDv7()
	}
	m := userToModel(user)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.conn(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// GetByPhone gets a user by phone number
func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entities.User, error) {
	var m models.User
	if err := r.conn(ctx).Where("phone = ?", phone).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return userToEntity(&m), nil
}

// Update updates mutable profile fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"name":            user.Name,
		"role":            string(user.Role),
		"approval_status": string(user.ApprovalStatus),
		"location_lat":    user.LocationLat,
		"location_lon":    user.LocationLon,
		"updated_at":      time.Now(),
	}
	if user.Phone.Valid {
		updates["phone"] = user.Phone.String
	}
	if user.ActiveMode.Valid {
		updates["active_mode"] = user.ActiveMode.String
	}

	result := r.conn(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete soft deletes a user
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with optional role and approval filters
func (r *UserRepository) List(ctx context.Context, role *entities.UserRole, approval *entities.ApprovalStatus) ([]*entities.User, error) {
	var userModels []models.User
	query := r.conn(ctx).Order("created_at DESC")
	if role != nil {
		query = query.Where("role = ?", string(*role))
	}
	if approval != nil {
		query = query.Where("approval_status = ?", string(*approval))
	}
	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// SearchByName searches approved users by name substring
func (r *UserRepository) SearchByName(ctx context.Context, query string, limit int) ([]*entities.User, error) {
	var userModels []models.User
	term := "%" + query + "%"
	err := r.conn(ctx).
		Where("name LIKE ? AND approval_status = ?", term, string(entities.ApprovalStatusApproved)).
		Limit(limit).
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userToEntity(&userModels[i]))
	}
	return users, nil
}

// FindNearby returns approved users inside the bounding box, optionally
// filtered by role. Dual-role accounts match any role filter.
func (r *UserRepository) FindNearby(ctx context.Context, minLat, maxLat, minLon, maxLon float64, role *entities.UserRole) ([]*entities.NearbyUser, error) {
	var userModels []models.User
	query := r.conn(ctx).
		Where("approval_status = ?", string(entities.ApprovalStatusApproved)).
		Where("location_lat BETWEEN ? AND ?", minLat, maxLat).
		Where("location_lon BETWEEN ? AND ?", minLon, maxLon)
	if role != nil {
		query = query.Where("role IN ?", []string{string(*role), string(entities.UserRoleBoth)})
	}
	if err := query.Find(&userModels).Error; err != nil {
		return nil, err
	}

	nearby := make([]*entities.NearbyUser, 0, len(userModels))
	for i := range userModels {
		m := &userModels[i]
		nearby = append(nearby, &entities.NearbyUser{
			ID:   m.ID,
			Name: m.Name,
			Role: entities.UserRole(m.Role),
		})
	}
	return nearby, nil
}

func userToModel(u *entities.User) *models.User {
	m := &models.User{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Role:           string(u.Role),
		ApprovalStatus: string(u.ApprovalStatus),
		LocationLat:    u.LocationLat,
		LocationLon:    u.LocationLon,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
	if u.Phone.Valid {
		m.Phone = &u.Phone.String
	}
	if u.ActiveMode.Valid {
		m.ActiveMode = &u.ActiveMode.String
	}
	return m
}

func userToEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:             m.ID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Phone:          null.StringFromPtr(m.Phone),
		Role:           entities.UserRole(m.Role),
		ApprovalStatus: entities.ApprovalStatus(m.ApprovalStatus),
		ActiveMode:     null.StringFromPtr(m.ActiveMode),
		LocationLat:    m.LocationLat,
		LocationLon:    m.LocationLon,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
