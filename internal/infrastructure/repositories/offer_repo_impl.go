package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/infrastructure/models"
	"ykri.backend/pkg/utils"
)

// OfferRepository implements offer data operations
type OfferRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository
func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new offer together with its availability slots
func (r *OfferRepository) Create(ctx context.Context, offer *entities.Offer) error {
	if offer.ID == uuid.Nil {
		offer.ID = utils.GenerateUUIDv7()
	}
	for i := range offer.Availability {
		if offer.Availability[i].ID == uuid.Nil {
			offer.Availability[i].ID = utils.GenerateUUIDv7()
		}
		offer.Availability[i].OfferID = offer.ID
	}
	m, err := offerToModel(offer)
	if err != nil {
		return err
	}
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	offer.ID = m.ID
	offer.CreatedAt = m.CreatedAt
	offer.UpdatedAt = m.UpdatedAt
	for i := range m.Availability {
		offer.Availability[i].ID = m.Availability[i].ID
		offer.Availability[i].OfferID = m.ID
	}
	return nil
}

// GetByID gets an offer by ID with its availability slots
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Offer, error) {
	var m models.Offer
	if err := r.conn(ctx).Preload("Availability").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return offerToEntity(&m)
}

// GetByIDWithProvider loads the offer with its provider joined
func (r *OfferRepository) GetByIDWithProvider(ctx context.Context, id uuid.UUID) (*entities.Offer, error) {
	var m models.Offer
	err := r.conn(ctx).Preload("Provider").Preload("Availability").
		Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return offerToEntity(&m)
}

// List lists offers, newest first
func (r *OfferRepository) List(ctx context.Context, filter entities.OfferFilter) ([]*entities.Offer, error) {
	var offerModels []models.Offer
	query := r.conn(ctx).Preload("Availability").Order("created_at DESC")
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.BookingStatus != nil {
		query = query.Where("booking_status = ?", string(*filter.BookingStatus))
	}
	if err := query.Find(&offerModels).Error; err != nil {
		return nil, err
	}

	offers := make([]*entities.Offer, 0, len(offerModels))
	for i := range offerModels {
		offer, err := offerToEntity(&offerModels[i])
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}
	return offers, nil
}

// Update updates mutable offer fields
func (r *OfferRepository) Update(ctx context.Context, offer *entities.Offer) error {
	updates := map[string]interface{}{
		"equipment_type": offer.EquipmentType,
		"description":    offer.Description,
		"price_rate":     offer.PriceRate,
		"city":           offer.City,
		"address":        offer.Address,
		"booking_status": string(offer.BookingStatus),
		"photo_url":      offer.PhotoURL,
		"updated_at":     time.Now(),
	}
	if offer.CustomFields != nil {
		raw, err := json.Marshal(offer.CustomFields)
		if err != nil {
			return err
		}
		updates["custom_fields"] = string(raw)
	}

	result := r.conn(ctx).Model(&models.Offer{}).Where("id = ?", offer.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdateBookingStatus updates only the aggregate booking status
func (r *OfferRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error {
	result := r.conn(ctx).Model(&models.Offer{}).Where("id = ?", id).
		Updates(map[string]interface{}{"booking_status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete hard deletes an offer and its availability slots
func (r *OfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := r.conn(ctx)
	if err := db.Delete(&models.AvailabilitySlot{}, "offer_id = ?", id).Error; err != nil {
		return err
	}
	result := db.Delete(&models.Offer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func offerToModel(o *entities.Offer) (*models.Offer, error) {
	m := &models.Offer{
		ID:                o.ID,
		ProviderID:        o.ProviderID,
		ProviderName:      o.ProviderName,
		EquipmentType:     o.EquipmentType,
		MachineTemplateID: o.MachineTemplateID,
		Description:       o.Description,
		PriceRate:         o.PriceRate,
		City:              o.City,
		Address:           o.Address,
		BookingStatus:     string(o.BookingStatus),
		PhotoURL:          o.PhotoURL,
		ServiceAreaLat:    o.ServiceAreaLat,
		ServiceAreaLon:    o.ServiceAreaLon,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
	if o.CustomFields != nil {
		raw, err := json.Marshal(o.CustomFields)
		if err != nil {
			return nil, err
		}
		s := string(raw)
		m.CustomFields = &s
	}
	for _, slot := range o.Availability {
		m.Availability = append(m.Availability, models.AvailabilitySlot{
			ID:      slot.ID,
			OfferID: slot.OfferID,
			Start:   slot.Start,
			End:     slot.End,
		})
	}
	return m, nil
}

func offerToEntity(m *models.Offer) (*entities.Offer, error) {
	o := &entities.Offer{
		ID:                m.ID,
		ProviderID:        m.ProviderID,
		ProviderName:      m.ProviderName,
		EquipmentType:     m.EquipmentType,
		MachineTemplateID: m.MachineTemplateID,
		Description:       m.Description,
		PriceRate:         m.PriceRate,
		City:              m.City,
		Address:           m.Address,
		BookingStatus:     entities.BookingStatus(m.BookingStatus),
		PhotoURL:          m.PhotoURL,
		ServiceAreaLat:    m.ServiceAreaLat,
		ServiceAreaLon:    m.ServiceAreaLon,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.CustomFields != nil && *m.CustomFields != "" {
		if err := json.Unmarshal([]byte(*m.CustomFields), &o.CustomFields); err != nil {
			return nil, err
		}
	}
	if m.Provider != nil {
		o.Provider = userToEntity(m.Provider)
	}
	if m.MachineTemplate != nil {
		template, err := machineTemplateToEntity(m.MachineTemplate)
		if err != nil {
			return nil, err
		}
		o.MachineTemplate = template
	}
	for _, slot := range m.Availability {
		o.Availability = append(o.Availability, entities.AvailabilitySlot{
			ID:      slot.ID,
			OfferID: slot.OfferID,
			Start:   slot.Start,
			End:     slot.End,
		})
	}
	return o, nil
}
