package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
)

// ReservationUsecase handles reservation business logic
type ReservationUsecase struct {
	reservationRepo repositories.ReservationRepository
	offerRepo       repositories.OfferRepository
	userRepo        repositories.UserRepository
	uow             repositories.UnitOfWork
	notifier        Notifier
}

// NewReservationUsecase creates a new reservation usecase
func NewReservationUsecase(
	reservationRepo repositories.ReservationRepository,
	offerRepo repositories.OfferRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
) *ReservationUsecase {
	return &ReservationUsecase{
		reservationRepo: reservationRepo,
		offerRepo:       offerRepo,
		userRepo:        userRepo,
		uow:             uow,
		notifier:        notifier,
	}
}

// Create creates a reservation by the authenticated farmer against an
// offer and moves the offer to negotiating. A provider cannot reserve
// their own equipment. Availability is not enforced here; the overlap
// check is a separate advisory query.
func (u *ReservationUsecase) Create(ctx context.Context, farmerID uuid.UUID, input *entities.CreateReservationInput) (*entities.Reservation, error) {
	offerID, err := uuid.Parse(input.OfferID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid offer id")
	}

	offer, err := u.offerRepo.GetByIDWithProvider(ctx, offerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("offer not found")
		}
		return nil, err
	}
	if offer.ProviderID == farmerID {
		return nil, domainerrors.BadRequest("cannot reserve your own equipment")
	}
	if !input.ReservedSlot.End.After(input.ReservedSlot.Start) {
		return nil, domainerrors.BadRequest("reserved time slot end must be after start")
	}

	farmer, err := u.userRepo.GetByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	reservation := &entities.Reservation{
		FarmerID:      farmer.ID,
		FarmerName:    farmer.Name,
		FarmerPhone:   farmer.Phone,
		OfferID:       offer.ID,
		ProviderID:    offer.ProviderID,
		ProviderName:  offer.ProviderName,
		EquipmentType: offer.EquipmentType,
		PriceRate:     offer.PriceRate,
		TotalCost:     null.NewFloat64(input.TotalCost, input.TotalCost > 0),
		Status:        entities.ReservationStatusPending,
		ReservedStart: input.ReservedSlot.Start,
		ReservedEnd:   input.ReservedSlot.End,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.reservationRepo.Create(txCtx, reservation); err != nil {
			return err
		}
		return u.offerRepo.UpdateBookingStatus(txCtx, offer.ID, entities.BookingStatusNegotiating)
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.Send(ctx, Notification{
			ReceiverID:     offer.ProviderID,
			ReceiverName:   offer.ProviderName,
			Content:        fmt.Sprintf("%s souhaite réserver votre %s", farmer.Name, offer.EquipmentType),
			RelatedOfferID: &offer.ID,
			ActionLabel:    "Voir la réservation",
			ActionTarget:   "reservation:" + reservation.ID.String(),
		})
	}

	return reservation, nil
}

// GetByID returns a reservation by id
func (u *ReservationUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Reservation, error) {
	return u.reservationRepo.GetByID(ctx, id)
}

// List returns reservations matching the filter
func (u *ReservationUsecase) List(ctx context.Context, filter entities.ReservationFilter) ([]*entities.Reservation, error) {
	return u.reservationRepo.List(ctx, filter)
}

// Transition advances the reservation state machine. The legacy status
// field still sent by older clients is translated to a canonical action
// first: "approved" routes into provider_validate, "rejected" and
// "cancelled" stay direct terminal moves.
func (u *ReservationUsecase) Transition(ctx context.Context, actorID uuid.UUID, reservationID uuid.UUID, input *entities.UpdateReservationInput) (*entities.Reservation, error) {
	action := resolveReservationAction(input)
	if action == "" {
		return nil, domainerrors.BadRequest("an action or a status is required")
	}

	reservation, err := u.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("reservation not found")
		}
		return nil, err
	}
	if reservation.Status.IsTerminal() {
		return nil, domainerrors.BadRequest("reservation is already " + string(reservation.Status))
	}

	switch action {
	case entities.ReservationActionProviderValidate:
		return u.providerValidate(ctx, actorID, reservation)
	case entities.ReservationActionFarmerFinalValidate:
		return u.farmerFinalValidate(ctx, actorID, reservation)
	case entities.ReservationActionReject:
		return u.terminate(ctx, actorID, reservation, entities.ReservationStatusRejected)
	case entities.ReservationActionCancel:
		return u.terminate(ctx, actorID, reservation, entities.ReservationStatusCancelled)
	default:
		return nil, domainerrors.BadRequest("unknown action")
	}
}

func resolveReservationAction(input *entities.UpdateReservationInput) string {
	if input.Action != "" {
		return input.Action
	}
	switch entities.ReservationStatus(input.Status) {
	case entities.ReservationStatusApproved:
		return entities.ReservationActionProviderValidate
	case entities.ReservationStatusRejected:
		return entities.ReservationActionReject
	case entities.ReservationStatusCancelled:
		return entities.ReservationActionCancel
	}
	return ""
}

func (u *ReservationUsecase) providerValidate(ctx context.Context, actorID uuid.UUID, reservation *entities.Reservation) (*entities.Reservation, error) {
	if actorID != reservation.ProviderID {
		return nil, domainerrors.Forbidden("only the provider may validate")
	}
	if reservation.ProviderValidated {
		return nil, domainerrors.BadRequest("reservation already validated by the provider")
	}

	now := time.Now()
	reservation.ProviderValidated = true
	reservation.ProviderValidatedAt = &now
	if err := u.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.Send(ctx, Notification{
			ReceiverID:     reservation.FarmerID,
			ReceiverName:   reservation.FarmerName,
			Content:        fmt.Sprintf("%s a confirmé votre réservation de %s. Confirmez pour finaliser.", reservation.ProviderName, reservation.EquipmentType),
			RelatedOfferID: &reservation.OfferID,
			ActionLabel:    "Confirmer la réservation",
			ActionTarget:   "reservation:" + reservation.ID.String(),
		})
	}
	return reservation, nil
}

func (u *ReservationUsecase) farmerFinalValidate(ctx context.Context, actorID uuid.UUID, reservation *entities.Reservation) (*entities.Reservation, error) {
	if actorID != reservation.FarmerID {
		return nil, domainerrors.Forbidden("only the farmer may finalize")
	}
	if !reservation.ProviderValidated {
		return nil, domainerrors.BadRequest("provider validation is required first")
	}

	now := time.Now()
	reservation.Status = entities.ReservationStatusApproved
	reservation.FarmerValidated = true
	reservation.FarmerValidatedAt = &now
	reservation.ApprovedAt = &now

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.reservationRepo.Update(txCtx, reservation); err != nil {
			return err
		}
		return u.offerRepo.UpdateBookingStatus(txCtx, reservation.OfferID, entities.BookingStatusMatched)
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		u.notifier.Send(ctx, Notification{
			ReceiverID:     reservation.ProviderID,
			ReceiverName:   reservation.ProviderName,
			Content:        fmt.Sprintf("Réservation de %s approuvée par %s", reservation.EquipmentType, reservation.FarmerName),
			RelatedOfferID: &reservation.OfferID,
			ActionLabel:    "Télécharger le contrat",
			ActionTarget:   "contract:" + reservation.ID.String(),
		})
	}
	return reservation, nil
}

func (u *ReservationUsecase) terminate(ctx context.Context, actorID uuid.UUID, reservation *entities.Reservation, status entities.ReservationStatus) (*entities.Reservation, error) {
	if actorID != reservation.FarmerID && actorID != reservation.ProviderID {
		return nil, domainerrors.Forbidden("not a party to this reservation")
	}

	// Only the reservation itself moves; the offer keeps its negotiating
	// booking status so the provider can still field other reservations.
	reservation.Status = status
	if err := u.reservationRepo.Update(ctx, reservation); err != nil {
		return nil, err
	}

	if u.notifier != nil {
		// The counterparty gets notified, whichever side acted.
		n := Notification{RelatedOfferID: &reservation.OfferID}
		if actorID == reservation.FarmerID {
			n.ReceiverID = reservation.ProviderID
			n.ReceiverName = reservation.ProviderName
		} else {
			n.ReceiverID = reservation.FarmerID
			n.ReceiverName = reservation.FarmerName
		}
		if status == entities.ReservationStatusRejected {
			n.Content = fmt.Sprintf("La réservation de %s a été refusée", reservation.EquipmentType)
		} else {
			n.Content = fmt.Sprintf("La réservation de %s a été annulée", reservation.EquipmentType)
		}
		u.notifier.Send(ctx, n)
	}
	return reservation, nil
}
