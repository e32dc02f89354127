package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
)

// ProposalUsecase handles proposal business logic
type ProposalUsecase struct {
	proposalRepo repositories.ProposalRepository
	demandRepo   repositories.DemandRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
	notifier     Notifier
}

// NewProposalUsecase creates a new proposal usecase
func NewProposalUsecase(
	proposalRepo repositories.ProposalRepository,
	demandRepo repositories.DemandRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
) *ProposalUsecase {
	return &ProposalUsecase{
		proposalRepo: proposalRepo,
		demandRepo:   demandRepo,
		userRepo:     userRepo,
		uow:          uow,
		notifier:     notifier,
	}
}

// Create creates a proposal by the authenticated provider against a demand.
// A matched demand accepts no new proposals, a farmer cannot bid on their
// own demand, and one proposal per provider per demand is enforced.
func (u *ProposalUsecase) Create(ctx context.Context, providerID uuid.UUID, input *entities.CreateProposalInput) (*entities.Proposal, error) {
	demandID, err := uuid.Parse(input.DemandID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid demand id")
	}

	demand, err := u.demandRepo.GetByIDWithFarmer(ctx, demandID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("demand not found")
		}
		return nil, err
	}
	if demand.Status == entities.DemandStatusMatched {
		return nil, domainerrors.BadRequest("demand is already matched")
	}
	if demand.FarmerID == providerID {
		return nil, domainerrors.BadRequest("cannot propose on your own demand")
	}

	provider, err := u.userRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("provider account no longer exists")
		}
		return nil, err
	}

	_, err = u.proposalRepo.GetByDemandAndProvider(ctx, demandID, providerID)
	if err == nil {
		return nil, domainerrors.BadRequest("proposal already submitted for this demand")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	proposal := &entities.Proposal{
		DemandID:     demandID,
		ProviderID:   provider.ID,
		ProviderName: provider.Name,
		Price:        input.Price,
		Description:  input.Description,
		Status:       entities.ProposalStatusPending,
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.proposalRepo.Create(txCtx, proposal); err != nil {
			return err
		}
		if demand.Status == entities.DemandStatusWaiting {
			return u.demandRepo.UpdateStatus(txCtx, demand.ID, entities.DemandStatusNegotiating)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if u.notifier != nil {
		farmerName := demand.FarmerName
		if demand.Farmer != nil {
			farmerName = demand.Farmer.Name
		}
		u.notifier.Send(ctx, Notification{
			ReceiverID:      demand.FarmerID,
			ReceiverName:    farmerName,
			Content:         fmt.Sprintf("%s a fait une offre de %.0f MAD sur votre demande « %s »", provider.Name, input.Price, demand.RequiredService),
			RelatedDemandID: &demand.ID,
			ActionLabel:     "Voir les offres",
			ActionTarget:    "demand:" + demand.ID.String(),
		})
	}

	return proposal, nil
}

// GetByID returns a proposal by id
func (u *ProposalUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Proposal, error) {
	return u.proposalRepo.GetByID(ctx, id)
}

// List returns proposals matching the filter
func (u *ProposalUsecase) List(ctx context.Context, filter entities.ProposalFilter) ([]*entities.Proposal, error) {
	return u.proposalRepo.List(ctx, filter)
}

// Decide accepts or rejects a pending proposal. Only the demand's farmer
// may decide. Accepting moves the demand to matched and auto-rejects every
// sibling pending proposal, all inside one transaction; notifications go
// out after the commit.
func (u *ProposalUsecase) Decide(ctx context.Context, actorID uuid.UUID, proposalID uuid.UUID, action string) (*entities.Proposal, error) {
	if action != entities.ProposalActionAccept && action != entities.ProposalActionReject {
		return nil, domainerrors.BadRequest("action must be accept or reject")
	}

	proposal, err := u.proposalRepo.GetByIDFull(ctx, proposalID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("proposal not found")
		}
		return nil, err
	}
	if proposal.Demand == nil {
		return nil, domainerrors.NotFound("demand not found")
	}
	if proposal.Demand.FarmerID != actorID {
		return nil, domainerrors.Forbidden("only the demand owner may decide")
	}
	if proposal.Status != entities.ProposalStatusPending {
		return nil, domainerrors.BadRequest("proposal has already been decided")
	}

	if action == entities.ProposalActionReject {
		if err := u.proposalRepo.UpdateStatus(ctx, proposal.ID, entities.ProposalStatusRejected); err != nil {
			return nil, err
		}
		proposal.Status = entities.ProposalStatusRejected
		u.notifyDecision(ctx, proposal, false)
		return proposal, nil
	}

	var rejected []*entities.Proposal
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.proposalRepo.UpdateStatus(txCtx, proposal.ID, entities.ProposalStatusAccepted); err != nil {
			return err
		}
		if err := u.demandRepo.UpdateStatus(txCtx, proposal.DemandID, entities.DemandStatusMatched); err != nil {
			return err
		}
		var err error
		rejected, err = u.proposalRepo.RejectSiblings(txCtx, proposal.DemandID, proposal.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	proposal.Status = entities.ProposalStatusAccepted

	u.notifyDecision(ctx, proposal, true)
	for _, sibling := range rejected {
		sibling.Demand = proposal.Demand
		u.notifyDecision(ctx, sibling, false)
	}

	return proposal, nil
}

func (u *ProposalUsecase) notifyDecision(ctx context.Context, proposal *entities.Proposal, accepted bool) {
	if u.notifier == nil {
		return
	}

	service := ""
	if proposal.Demand != nil {
		service = proposal.Demand.RequiredService
	}

	n := Notification{
		ReceiverID:      proposal.ProviderID,
		ReceiverName:    proposal.ProviderName,
		RelatedDemandID: &proposal.DemandID,
	}
	if accepted {
		n.Content = fmt.Sprintf("Votre offre sur « %s » a été acceptée", service)
		n.ActionLabel = "Voir la demande"
		n.ActionTarget = "demand:" + proposal.DemandID.String()
	} else {
		n.Content = fmt.Sprintf("Votre offre sur « %s » a été refusée", service)
	}
	u.notifier.Send(ctx, n)
}
