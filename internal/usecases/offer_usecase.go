package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
	"ykri.backend/pkg/geo"
	"ykri.backend/pkg/logger"
)

// OfferUsecase handles offer business logic
type OfferUsecase struct {
	offerRepo       repositories.OfferRepository
	userRepo        repositories.UserRepository
	templateRepo    repositories.MachineTemplateRepository
	reservationRepo repositories.ReservationRepository
	notifier        Notifier
	nearbyRadiusKm  float64
}

// NewOfferUsecase creates a new offer usecase
func NewOfferUsecase(
	offerRepo repositories.OfferRepository,
	userRepo repositories.UserRepository,
	templateRepo repositories.MachineTemplateRepository,
	reservationRepo repositories.ReservationRepository,
	notifier Notifier,
	nearbyRadiusKm float64,
) *OfferUsecase {
	return &OfferUsecase{
		offerRepo:       offerRepo,
		userRepo:        userRepo,
		templateRepo:    templateRepo,
		reservationRepo: reservationRepo,
		notifier:        notifier,
		nearbyRadiusKm:  nearbyRadiusKm,
	}
}

// Create creates an offer for the authenticated provider. A photo is
// mandatory; when a machine template is referenced, its required custom
// fields must all be filled.
func (u *OfferUsecase) Create(ctx context.Context, providerID uuid.UUID, input *entities.CreateOfferInput) (*entities.Offer, error) {
	provider, err := u.userRepo.GetByID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if input.PhotoURL == "" {
		return nil, domainerrors.BadRequest("a photo of the equipment is required")
	}

	offer := &entities.Offer{
		ProviderID:     provider.ID,
		ProviderName:   provider.Name,
		EquipmentType:  input.EquipmentType,
		Description:    input.Description,
		CustomFields:   input.CustomFields,
		PriceRate:      input.PriceRate,
		City:           input.City,
		Address:        input.Address,
		BookingStatus:  entities.BookingStatusWaiting,
		PhotoURL:       input.PhotoURL,
		ServiceAreaLat: input.Lat,
		ServiceAreaLon: input.Lon,
	}

	if input.MachineTemplateID != "" {
		templateID, err := uuid.Parse(input.MachineTemplateID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid machine template id")
		}
		template, err := u.templateRepo.GetByID(ctx, templateID)
		if err != nil {
			return nil, domainerrors.BadRequest("machine template not found")
		}
		if !template.IsActive {
			return nil, domainerrors.BadRequest("machine template is inactive")
		}
		if missing := template.MissingRequiredFields(input.CustomFields); len(missing) > 0 {
			return nil, domainerrors.BadRequest("missing required fields: " + strings.Join(missing, ", "))
		}
		offer.MachineTemplateID = &templateID
	}

	for _, slot := range input.Availability {
		if !slot.End.After(slot.Start) {
			return nil, domainerrors.BadRequest("availability slot end must be after start")
		}
		offer.Availability = append(offer.Availability, entities.AvailabilitySlot{
			Start: slot.Start,
			End:   slot.End,
		})
	}

	if err := u.offerRepo.Create(ctx, offer); err != nil {
		return nil, err
	}

	u.notifyNearbyFarmers(ctx, offer)
	return offer, nil
}

func (u *OfferUsecase) notifyNearbyFarmers(ctx context.Context, offer *entities.Offer) {
	if u.notifier == nil {
		return
	}

	role := entities.UserRoleFarmer
	box := geo.BoxAround(offer.ServiceAreaLat, offer.ServiceAreaLon, u.nearbyRadiusKm)
	farmers, err := u.userRepo.FindNearby(ctx, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, &role)
	if err != nil {
		logger.Warn(ctx, "nearby farmer lookup failed",
			zap.String("offer_id", offer.ID.String()),
			zap.Error(err),
		)
		return
	}

	notifications := make([]Notification, 0, len(farmers))
	for _, f := range farmers {
		if f.ID == offer.ProviderID {
			continue
		}
		notifications = append(notifications, Notification{
			ReceiverID:     f.ID,
			ReceiverName:   f.Name,
			Content:        fmt.Sprintf("Nouveau matériel disponible près de chez vous : %s à %s", offer.EquipmentType, offer.City),
			RelatedOfferID: &offer.ID,
			ActionLabel:    "Voir l'offre",
			ActionTarget:   "offer:" + offer.ID.String(),
		})
	}
	u.notifier.SendBulk(ctx, notifications)
}

// GetByID returns an offer by id
func (u *OfferUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Offer, error) {
	return u.offerRepo.GetByID(ctx, id)
}

// List returns offers matching the filter
func (u *OfferUsecase) List(ctx context.Context, filter entities.OfferFilter) ([]*entities.Offer, error) {
	return u.offerRepo.List(ctx, filter)
}

// Update applies an offer update. Only the owning provider or an admin may
// modify an offer.
func (u *OfferUsecase) Update(ctx context.Context, actorID uuid.UUID, actorRole entities.UserRole, offerID uuid.UUID, input *entities.UpdateOfferInput) (*entities.Offer, error) {
	offer, err := u.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if offer.ProviderID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not the offer owner")
	}

	if input.EquipmentType != nil {
		offer.EquipmentType = *input.EquipmentType
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}
	if input.CustomFields != nil {
		offer.CustomFields = input.CustomFields
	}
	if input.PriceRate != nil {
		offer.PriceRate = *input.PriceRate
	}
	if input.City != nil {
		offer.City = *input.City
	}
	if input.Address != nil {
		offer.Address = *input.Address
	}
	if input.PhotoURL != nil {
		if *input.PhotoURL == "" {
			return nil, domainerrors.BadRequest("a photo of the equipment is required")
		}
		offer.PhotoURL = *input.PhotoURL
	}
	if input.BookingStatus != nil {
		switch entities.BookingStatus(*input.BookingStatus) {
		case entities.BookingStatusWaiting, entities.BookingStatusNegotiating, entities.BookingStatusMatched:
			offer.BookingStatus = entities.BookingStatus(*input.BookingStatus)
		default:
			return nil, domainerrors.BadRequest("invalid booking status")
		}
	}

	if err := u.offerRepo.Update(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

// Delete removes an offer. Only the owning provider or an admin may delete.
func (u *OfferUsecase) Delete(ctx context.Context, actorID uuid.UUID, actorRole entities.UserRole, offerID uuid.UUID) error {
	offer, err := u.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.ProviderID != actorID && actorRole != entities.UserRoleAdmin {
		return domainerrors.Forbidden("not the offer owner")
	}
	return u.offerRepo.Delete(ctx, offerID)
}

// CheckAvailability reports whether the slot is free of overlap with any
// approved reservation on the offer. The check is advisory: creation of
// overlapping reservations is not blocked, the two-phase validation flow
// is where conflicts get resolved.
func (u *OfferUsecase) CheckAvailability(ctx context.Context, offerID uuid.UUID, slot entities.TimeSlot) (*entities.AvailabilityResult, error) {
	if !slot.End.After(slot.Start) {
		return nil, domainerrors.BadRequest("slot end must be after start")
	}

	if _, err := u.offerRepo.GetByID(ctx, offerID); err != nil {
		return nil, err
	}

	approved, err := u.reservationRepo.ListApprovedByOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	result := &entities.AvailabilityResult{
		OfferID:   offerID,
		Slot:      slot,
		Available: true,
	}
	for _, res := range approved {
		if slot.Overlaps(res.ReservedSlot()) {
			result.Available = false
			break
		}
	}
	return result, nil
}
