package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/infrastructure/models"
	"ykri.backend/pkg/utils"
)

// VIPRequestRepository implements legacy upgrade-request data operations
type VIPRequestRepository struct {
	db *gorm.DB
}

// NewVIPRequestRepository creates a new VIP request repository
func NewVIPRequestRepository(db *gorm.DB) *VIPRequestRepository {
	return &VIPRequestRepository{db: db}
}

func (r *VIPRequestRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new upgrade request
func (r *VIPRequestRepository) Create(ctx context.Context, request *entities.VIPUpgradeRequest) error {
	if request.ID == uuid.Nil {
		request.ID = utils.GenerateUUIDv7()
	}
	m := vipRequestToModel(request)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	request.ID = m.ID
	return nil
}

// GetByID gets an upgrade request by ID
func (r *VIPRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VIPUpgradeRequest, error) {
	var m models.VIPUpgradeRequest
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return vipRequestToEntity(&m), nil
}

// GetPendingByUser returns the user's pending request, if any
func (r *VIPRequestRepository) GetPendingByUser(ctx context.Context, userID uuid.UUID) (*entities.VIPUpgradeRequest, error) {
	var m models.VIPUpgradeRequest
	err := r.conn(ctx).
		Where("user_id = ? AND status = ?", userID, string(entities.VIPRequestStatusPending)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return vipRequestToEntity(&m), nil
}

// List lists upgrade requests, newest first
func (r *VIPRequestRepository) List(ctx context.Context, filter entities.VIPRequestFilter) ([]*entities.VIPUpgradeRequest, error) {
	var requestModels []models.VIPUpgradeRequest
	query := r.conn(ctx).Order("request_date DESC")
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*entities.VIPUpgradeRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, vipRequestToEntity(&requestModels[i]))
	}
	return requests, nil
}

// UpdateStatus resolves an upgrade request
func (r *VIPRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.VIPRequestStatus) error {
	now := time.Now()
	result := r.conn(ctx).Model(&models.VIPUpgradeRequest{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "resolved_at": now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func vipRequestToModel(req *entities.VIPUpgradeRequest) *models.VIPUpgradeRequest {
	m := &models.VIPUpgradeRequest{
		ID:          req.ID,
		UserID:      req.UserID,
		UserName:    req.UserName,
		UserEmail:   req.UserEmail,
		CurrentRole: string(req.CurrentRole),
		Status:      string(req.Status),
		RequestDate: req.RequestDate,
		ResolvedAt:  req.ResolvedAt,
	}
	if m.RequestDate.IsZero() {
		m.RequestDate = time.Now()
	}
	return m
}

func vipRequestToEntity(m *models.VIPUpgradeRequest) *entities.VIPUpgradeRequest {
	return &entities.VIPUpgradeRequest{
		ID:          m.ID,
		UserID:      m.UserID,
		UserName:    m.UserName,
		UserEmail:   m.UserEmail,
		CurrentRole: entities.UserRole(m.CurrentRole),
		Status:      entities.VIPRequestStatus(m.Status),
		RequestDate: m.RequestDate,
		ResolvedAt:  m.ResolvedAt,
	}
}
