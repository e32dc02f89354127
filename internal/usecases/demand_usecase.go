package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
	"ykri.backend/pkg/geo"
	"ykri.backend/pkg/logger"
)

// DemandUsecase handles demand business logic
type DemandUsecase struct {
	demandRepo     repositories.DemandRepository
	userRepo       repositories.UserRepository
	notifier       Notifier
	nearbyRadiusKm float64
}

// NewDemandUsecase creates a new demand usecase
func NewDemandUsecase(
	demandRepo repositories.DemandRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
	nearbyRadiusKm float64,
) *DemandUsecase {
	return &DemandUsecase{
		demandRepo:     demandRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		nearbyRadiusKm: nearbyRadiusKm,
	}
}

// Create creates a demand for the authenticated farmer and fans out a
// notification to providers near the job location. The fan-out is best
// effort; the demand is created either way.
func (u *DemandUsecase) Create(ctx context.Context, farmerID uuid.UUID, input *entities.CreateDemandInput) (*entities.Demand, error) {
	farmer, err := u.userRepo.GetByID(ctx, farmerID)
	if err != nil {
		return nil, err
	}

	if !input.RequiredSlot.End.After(input.RequiredSlot.Start) {
		return nil, domainerrors.BadRequest("required time slot end must be after start")
	}

	demand := &entities.Demand{
		FarmerID:        farmer.ID,
		FarmerName:      farmer.Name,
		Title:           input.Title,
		RequiredService: input.RequiredService,
		ServiceType:     null.NewString(input.ServiceType, input.ServiceType != ""),
		CropType:        null.NewString(input.CropType, input.CropType != ""),
		Area:            null.NewFloat64(input.Area, input.Area > 0),
		City:            input.City,
		Address:         input.Address,
		Description:     null.NewString(input.Description, input.Description != ""),
		Status:          entities.NormalizeDemandStatus(input.Status),
		PhotoURL:        null.NewString(input.PhotoURL, input.PhotoURL != ""),
		JobLocationLat:  input.Lat,
		JobLocationLon:  input.Lon,
		RequiredStart:   input.RequiredSlot.Start,
		RequiredEnd:     input.RequiredSlot.End,
	}

	if err := u.demandRepo.Create(ctx, demand); err != nil {
		return nil, err
	}

	u.notifyNearbyProviders(ctx, demand)
	return demand, nil
}

// GetByID returns a demand by id
func (u *DemandUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Demand, error) {
	return u.demandRepo.GetByID(ctx, id)
}

// List returns demands matching the filter
func (u *DemandUsecase) List(ctx context.Context, filter entities.DemandFilter) ([]*entities.Demand, error) {
	return u.demandRepo.List(ctx, filter)
}

// Update applies a demand update. Only the owning farmer or an admin may
// modify a demand.
func (u *DemandUsecase) Update(ctx context.Context, actorID uuid.UUID, actorRole entities.UserRole, demandID uuid.UUID, input *entities.UpdateDemandInput) (*entities.Demand, error) {
	demand, err := u.demandRepo.GetByID(ctx, demandID)
	if err != nil {
		return nil, err
	}
	if demand.FarmerID != actorID && actorRole != entities.UserRoleAdmin {
		return nil, domainerrors.Forbidden("not the demand owner")
	}

	if input.Title != nil {
		demand.Title = *input.Title
	}
	if input.RequiredService != nil {
		demand.RequiredService = *input.RequiredService
	}
	if input.Description != nil {
		demand.Description = null.NewString(*input.Description, *input.Description != "")
	}
	if input.City != nil {
		demand.City = *input.City
	}
	if input.Address != nil {
		demand.Address = *input.Address
	}
	if input.PhotoURL != nil {
		demand.PhotoURL = null.NewString(*input.PhotoURL, *input.PhotoURL != "")
	}
	if input.Status != nil {
		demand.Status = entities.NormalizeDemandStatus(*input.Status)
	}
	if input.RequiredSlot != nil {
		if !input.RequiredSlot.End.After(input.RequiredSlot.Start) {
			return nil, domainerrors.BadRequest("required time slot end must be after start")
		}
		demand.RequiredStart = input.RequiredSlot.Start
		demand.RequiredEnd = input.RequiredSlot.End
	}

	if err := u.demandRepo.Update(ctx, demand); err != nil {
		return nil, err
	}
	return demand, nil
}

// Delete removes a demand. Only the owning farmer or an admin may delete.
func (u *DemandUsecase) Delete(ctx context.Context, actorID uuid.UUID, actorRole entities.UserRole, demandID uuid.UUID) error {
	demand, err := u.demandRepo.GetByID(ctx, demandID)
	if err != nil {
		return err
	}
	if demand.FarmerID != actorID && actorRole != entities.UserRoleAdmin {
		return domainerrors.Forbidden("not the demand owner")
	}
	return u.demandRepo.Delete(ctx, demandID)
}

func (u *DemandUsecase) notifyNearbyProviders(ctx context.Context, demand *entities.Demand) {
	if u.notifier == nil {
		return
	}

	role := entities.UserRoleProvider
	box := geo.BoxAround(demand.JobLocationLat, demand.JobLocationLon, u.nearbyRadiusKm)
	providers, err := u.userRepo.FindNearby(ctx, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon, &role)
	if err != nil {
		logger.Warn(ctx, "nearby provider lookup failed",
			zap.String("demand_id", demand.ID.String()),
			zap.Error(err),
		)
		return
	}

	notifications := make([]Notification, 0, len(providers))
	for _, p := range providers {
		if p.ID == demand.FarmerID {
			continue
		}
		notifications = append(notifications, Notification{
			ReceiverID:      p.ID,
			ReceiverName:    p.Name,
			Content:         fmt.Sprintf("Nouvelle demande près de chez vous : %s à %s", demand.RequiredService, demand.City),
			RelatedDemandID: &demand.ID,
			ActionLabel:     "Voir la demande",
			ActionTarget:    "demand:" + demand.ID.String(),
		})
	}
	u.notifier.SendBulk(ctx, notifications)
}
