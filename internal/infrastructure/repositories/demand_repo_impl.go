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

// DemandRepository implements demand data operations
type DemandRepository struct {
	db *gorm.DB
}

// NewDemandRepository creates a new demand repository
func NewDemandRepository(db *gorm.DB) *DemandRepository {
	return &DemandRepository{db: db}
}

func (r *DemandRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new demand
func (r *DemandRepository) Create(ctx context.Context, demand *entities.Demand) error {
	if demand.ID == uuid.Nil {
		demand.ID = utils.GenerateUUIDv7()
	}
	m := demandToModel(demand)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	demand.ID = m.ID
	demand.CreatedAt = m.CreatedAt
	demand.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a demand by ID
func (r *DemandRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Demand, error) {
	var m models.Demand
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return demandToEntity(&m), nil
}

// GetByIDWithFarmer gets a demand with its owner joined
func (r *DemandRepository) GetByIDWithFarmer(ctx context.Context, id uuid.UUID) (*entities.Demand, error) {
	var m models.Demand
	if err := r.conn(ctx).Preload("Farmer").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return demandToEntity(&m), nil
}

// List lists demands, newest first
func (r *DemandRepository) List(ctx context.Context, filter entities.DemandFilter) ([]*entities.Demand, error) {
	var demandModels []models.Demand
	query := r.conn(ctx).Order("created_at DESC")
	if filter.FarmerID != nil {
		query = query.Where("farmer_id = ?", *filter.FarmerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if err := query.Find(&demandModels).Error; err != nil {
		return nil, err
	}

	demands := make([]*entities.Demand, 0, len(demandModels))
	for i := range demandModels {
		demands = append(demands, demandToEntity(&demandModels[i]))
	}
	return demands, nil
}

// Update updates mutable demand fields
func (r *DemandRepository) Update(ctx context.Context, demand *entities.Demand) error {
	updates := map[string]interface{}{
		"title":            demand.Title,
		"required_service": demand.RequiredService,
		"city":             demand.City,
		"address":          demand.Address,
		"status":           string(demand.Status),
		"required_start":   demand.RequiredStart,
		"required_end":     demand.RequiredEnd,
		"updated_at":       time.Now(),
	}
	if demand.Description.Valid {
		updates["description"] = demand.Description.String
	}
	if demand.PhotoURL.Valid {
		updates["photo_url"] = demand.PhotoURL.String
	}

	result := r.conn(ctx).Model(&models.Demand{}).Where("id = ?", demand.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateStatus updates only the demand status
func (r *DemandRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.DemandStatus) error {
	result := r.conn(ctx).Model(&models.Demand{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete hard deletes a demand
func (r *DemandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.conn(ctx).Delete(&models.Demand{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func demandToModel(d *entities.Demand) *models.Demand {
	m := &models.Demand{
		ID:              d.ID,
		FarmerID:        d.FarmerID,
		FarmerName:      d.FarmerName,
		Title:           d.Title,
		RequiredService: d.RequiredService,
		City:            d.City,
		Address:         d.Address,
		Status:          string(d.Status),
		JobLocationLat:  d.JobLocationLat,
		JobLocationLon:  d.JobLocationLon,
		RequiredStart:   d.RequiredStart,
		RequiredEnd:     d.RequiredEnd,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	if d.ServiceType.Valid {
		m.ServiceType = &d.ServiceType.String
	}
	if d.CropType.Valid {
		m.CropType = &d.CropType.String
	}
	if d.Area.Valid {
		m.Area = &d.Area.Float64
	}
	if d.Description.Valid {
		m.Description = &d.Description.String
	}
	if d.PhotoURL.Valid {
		m.PhotoURL = &d.PhotoURL.String
	}
	return m
}

func demandToEntity(m *models.Demand) *entities.Demand {
	d := &entities.Demand{
		ID:              m.ID,
		FarmerID:        m.FarmerID,
		FarmerName:      m.FarmerName,
		Title:           m.Title,
		RequiredService: m.RequiredService,
		ServiceType:     null.StringFromPtr(m.ServiceType),
		CropType:        null.StringFromPtr(m.CropType),
		Area:            null.Float64FromPtr(m.Area),
		City:            m.City,
		Address:         m.Address,
		Description:     null.StringFromPtr(m.Description),
		Status:          entities.DemandStatus(m.Status),
		PhotoURL:        null.StringFromPtr(m.PhotoURL),
		JobLocationLat:  m.JobLocationLat,
		JobLocationLon:  m.JobLocationLon,
		RequiredStart:   m.RequiredStart,
		RequiredEnd:     m.RequiredEnd,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Farmer != nil {
		d.Farmer = userToEntity(m.Farmer)
	}
	return d
}
