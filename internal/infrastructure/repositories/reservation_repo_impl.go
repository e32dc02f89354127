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

// ReservationRepository implements reservation data operations
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new reservation
func (r *ReservationRepository) Create(ctx context.Context, reservation *entities.Reservation) error {
	if reservation.ID == uuid.Nil {
		reservation.ID = utils.GenerateUUIDv7()
	}
	m := reservationToModel(reservation)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	reservation.ID = m.ID
	reservation.CreatedAt = m.CreatedAt
	reservation.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a reservation by ID
func (r *ReservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	var m models.Reservation
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return reservationToEntity(&m)
}

// GetByIDFull loads the reservation with farmer, provider and offer joined
func (r *ReservationRepository) GetByIDFull(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	var m models.Reservation
	err := r.conn(ctx).Preload("Offer").Preload("Farmer").Preload("Provider").
		Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return reservationToEntity(&m)
}

// List lists reservations, newest first
func (r *ReservationRepository) List(ctx context.Context, filter entities.ReservationFilter) ([]*entities.Reservation, error) {
	var reservationModels []models.Reservation
	query := r.conn(ctx).Order("created_at DESC")
	if filter.FarmerID != nil {
		query = query.Where("farmer_id = ?", *filter.FarmerID)
	}
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.OfferID != nil {
		query = query.Where("offer_id = ?", *filter.OfferID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if err := query.Find(&reservationModels).Error; err != nil {
		return nil, err
	}

	reservations := make([]*entities.Reservation, 0, len(reservationModels))
	for i := range reservationModels {
		reservation, err := reservationToEntity(&reservationModels[i])
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

// Update persists the reservation state machine fields
func (r *ReservationRepository) Update(ctx context.Context, reservation *entities.Reservation) error {
	updates := map[string]interface{}{
		"status":                string(reservation.Status),
		"provider_validated":    reservation.ProviderValidated,
		"farmer_validated":      reservation.FarmerValidated,
		"provider_validated_at": reservation.ProviderValidatedAt,
		"farmer_validated_at":   reservation.FarmerValidatedAt,
		"approved_at":           reservation.ApprovedAt,
		"updated_at":            time.Now(),
	}
	if reservation.TotalCost.Valid {
		updates["total_cost"] = reservation.TotalCost.Float64
	}

	result := r.conn(ctx).Model(&models.Reservation{}).Where("id = ?", reservation.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// ListApprovedByOffer returns approved reservations on an offer
func (r *ReservationRepository) ListApprovedByOffer(ctx context.Context, offerID uuid.UUID) ([]*entities.Reservation, error) {
	var reservationModels []models.Reservation
	err := r.conn(ctx).
		Where("offer_id = ? AND status = ?", offerID, string(entities.ReservationStatusApproved)).
		Order("reserved_start ASC").
		Find(&reservationModels).Error
	if err != nil {
		return nil, err
	}

	reservations := make([]*entities.Reservation, 0, len(reservationModels))
	for i := range reservationModels {
		reservation, err := reservationToEntity(&reservationModels[i])
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

func reservationToModel(res *entities.Reservation) *models.Reservation {
	m := &models.Reservation{
		ID:                  res.ID,
		FarmerID:            res.FarmerID,
		FarmerName:          res.FarmerName,
		OfferID:             res.OfferID,
		ProviderID:          res.ProviderID,
		ProviderName:        res.ProviderName,
		EquipmentType:       res.EquipmentType,
		PriceRate:           res.PriceRate,
		Status:              string(res.Status),
		ProviderValidated:   res.ProviderValidated,
		FarmerValidated:     res.FarmerValidated,
		ProviderValidatedAt: res.ProviderValidatedAt,
		FarmerValidatedAt:   res.FarmerValidatedAt,
		ApprovedAt:          res.ApprovedAt,
		ReservedStart:       res.ReservedStart,
		ReservedEnd:         res.ReservedEnd,
		CreatedAt:           res.CreatedAt,
		UpdatedAt:           res.UpdatedAt,
	}
	if res.FarmerPhone.Valid {
		m.FarmerPhone = &res.FarmerPhone.String
	}
	if res.TotalCost.Valid {
		m.TotalCost = &res.TotalCost.Float64
	}
	return m
}

func reservationToEntity(m *models.Reservation) (*entities.Reservation, error) {
	res := &entities.Reservation{
		ID:                  m.ID,
		FarmerID:            m.FarmerID,
		FarmerName:          m.FarmerName,
		FarmerPhone:         null.StringFromPtr(m.FarmerPhone),
		OfferID:             m.OfferID,
		ProviderID:          m.ProviderID,
		ProviderName:        m.ProviderName,
		EquipmentType:       m.EquipmentType,
		PriceRate:           m.PriceRate,
		TotalCost:           null.Float64FromPtr(m.TotalCost),
		Status:              entities.ReservationStatus(m.Status),
		ProviderValidated:   m.ProviderValidated,
		FarmerValidated:     m.FarmerValidated,
		ProviderValidatedAt: m.ProviderValidatedAt,
		FarmerValidatedAt:   m.FarmerValidatedAt,
		ApprovedAt:          m.ApprovedAt,
		ReservedStart:       m.ReservedStart,
		ReservedEnd:         m.ReservedEnd,
		CreatedAt:           m.CreatedAt,
		UpdatedAt:           m.UpdatedAt,
	}
	if m.Offer != nil {
		offer, err := offerToEntity(m.Offer)
		if err != nil {
			return nil, err
		}
		res.Offer = offer
	}
	if m.Farmer != nil {
		res.Farmer = userToEntity(m.Farmer)
	}
	if m.Provider != nil {
		res.Provider = userToEntity(m.Provider)
	}
	return res, nil
}
