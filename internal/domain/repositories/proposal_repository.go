package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// ProposalRepository defines proposal data operations
type ProposalRepository interface {
	Create(ctx context.Context, proposal *entities.Proposal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Proposal, error)
	// GetByIDFull loads the proposal with its demand (including farmer)
	// and provider joined.
	GetByIDFull(ctx context.Context, id uuid.UUID) (*entities.Proposal, error)
	GetByDemandAndProvider(ctx context.Context, demandID, providerID uuid.UUID) (*entities.Proposal, error)
	// GetAcceptedByDemand returns the accepted proposal on a demand, with
	// the provider joined.
	GetAcceptedByDemand(ctx context.Context, demandID uuid.UUID) (*entities.Proposal, error)
	List(ctx context.Context, filter entities.ProposalFilter) ([]*entities.Proposal, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProposalStatus) error
	// RejectSiblings moves every other pending proposal on the demand to
	// rejected and returns the proposals it rejected.
	RejectSiblings(ctx context.Context, demandID, acceptedID uuid.UUID) ([]*entities.Proposal, error)
}
