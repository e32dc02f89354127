package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// ReservationRepository defines reservation data operations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entities.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Reservation, error)
	// GetByIDFull loads the reservation with farmer, provider and offer
	// joined (contract rendering needs all three).
	GetByIDFull(ctx context.Context, id uuid.UUID) (*entities.Reservation, error)
	List(ctx context.Context, filter entities.ReservationFilter) ([]*entities.Reservation, error)
	Update(ctx context.Context, reservation *entities.Reservation) error
	// ListApprovedByOffer returns approved reservations on an offer, used
	// by the availability overlap check.
	ListApprovedByOffer(ctx context.Context, offerID uuid.UUID) ([]*entities.Reservation, error)
}
