package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// OfferRepository defines offer data operations
type OfferRepository interface {
	Create(ctx context.Context, offer *entities.Offer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Offer, error)
	// GetByIDWithProvider loads the offer with its provider joined.
	GetByIDWithProvider(ctx context.Context, id uuid.UUID) (*entities.Offer, error)
	List(ctx context.Context, filter entities.OfferFilter) ([]*entities.Offer, error)
	Update(ctx context.Context, offer *entities.Offer) error
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status entities.BookingStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
