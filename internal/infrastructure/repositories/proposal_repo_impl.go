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

// ProposalRepository implements proposal data operations
type ProposalRepository struct {
	db *gorm.DB
}

// NewProposalRepository creates a new proposal repository
func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a new proposal
func (r *ProposalRepository) Create(ctx context.Context, proposal *entities.Proposal) error {
	if proposal.ID == uuid.Nil {
		proposal.ID = utils.GenerateUUIDv7()
	}
	m := proposalToModel(proposal)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	proposal.ID = m.ID
	proposal.CreatedAt = m.CreatedAt
	proposal.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a proposal by ID
func (r *ProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Proposal, error) {
	var m models.Proposal
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return proposalToEntity(&m), nil
}

// GetByIDFull loads the proposal with its demand (and farmer) and provider
func (r *ProposalRepository) GetByIDFull(ctx context.Context, id uuid.UUID) (*entities.Proposal, error) {
	var m models.Proposal
	err := r.conn(ctx).Preload("Demand").Preload("Demand.Farmer").Preload("Provider").
		Where("id = ?", id).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return proposalToEntity(&m), nil
}

// GetByDemandAndProvider looks up a provider's proposal on a demand
func (r *ProposalRepository) GetByDemandAndProvider(ctx context.Context, demandID, providerID uuid.UUID) (*entities.Proposal, error) {
	var m models.Proposal
	err := r.conn(ctx).Where("demand_id = ? AND provider_id = ?", demandID, providerID).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return proposalToEntity(&m), nil
}

// GetAcceptedByDemand returns the accepted proposal on a demand
func (r *ProposalRepository) GetAcceptedByDemand(ctx context.Context, demandID uuid.UUID) (*entities.Proposal, error) {
	var m models.Proposal
	err := r.conn(ctx).Preload("Provider").
		Where("demand_id = ? AND status = ?", demandID, string(entities.ProposalStatusAccepted)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return proposalToEntity(&m), nil
}

// List lists proposals, newest first
func (r *ProposalRepository) List(ctx context.Context, filter entities.ProposalFilter) ([]*entities.Proposal, error) {
	var proposalModels []models.Proposal
	query := r.conn(ctx).Order("created_at DESC")
	if filter.DemandID != nil {
		query = query.Where("demand_id = ?", *filter.DemandID)
	}
	if filter.ProviderID != nil {
		query = query.Where("provider_id = ?", *filter.ProviderID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if err := query.Find(&proposalModels).Error; err != nil {
		return nil, err
	}

	proposals := make([]*entities.Proposal, 0, len(proposalModels))
	for i := range proposalModels {
		proposals = append(proposals, proposalToEntity(&proposalModels[i]))
	}
	return proposals, nil
}

// UpdateStatus updates only the proposal status
func (r *ProposalRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ProposalStatus) error {
	result := r.conn(ctx).Model(&models.Proposal{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// RejectSiblings moves every other pending proposal on the demand to
// rejected and returns the proposals it rejected.
func (r *ProposalRepository) RejectSiblings(ctx context.Context, demandID, acceptedID uuid.UUID) ([]*entities.Proposal, error) {
	db := r.conn(ctx)

	var siblingModels []models.Proposal
	err := db.Where("demand_id = ? AND id <> ? AND status = ?",
		demandID, acceptedID, string(entities.ProposalStatusPending)).
		Find(&siblingModels).Error
	if err != nil {
		return nil, err
	}
	if len(siblingModels) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(siblingModels))
	for i := range siblingModels {
		ids = append(ids, siblingModels[i].ID)
	}
	err = db.Model(&models.Proposal{}).Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     string(entities.ProposalStatusRejected),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return nil, err
	}

	rejected := make([]*entities.Proposal, 0, len(siblingModels))
	for i := range siblingModels {
		p := proposalToEntity(&siblingModels[i])
		p.Status = entities.ProposalStatusRejected
		rejected = append(rejected, p)
	}
	return rejected, nil
}

func proposalToModel(p *entities.Proposal) *models.Proposal {
	return &models.Proposal{
		ID:           p.ID,
		DemandID:     p.DemandID,
		ProviderID:   p.ProviderID,
		ProviderName: p.ProviderName,
		Price:        p.Price,
		Description:  p.Description,
		Status:       string(p.Status),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func proposalToEntity(m *models.Proposal) *entities.Proposal {
	p := &entities.Proposal{
		ID:           m.ID,
		DemandID:     m.DemandID,
		ProviderID:   m.ProviderID,
		ProviderName: m.ProviderName,
		Price:        m.Price,
		Description:  m.Description,
		Status:       entities.ProposalStatus(m.Status),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Demand != nil {
		p.Demand = demandToEntity(m.Demand)
	}
	if m.Provider != nil {
		p.Provider = userToEntity(m.Provider)
	}
	return p
}
