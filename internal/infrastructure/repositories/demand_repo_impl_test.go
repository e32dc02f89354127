package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
)

func seedDemand(t *testing.T, repo *DemandRepository, farmerID uuid.UUID, status entities.DemandStatus) *entities.Demand {
	t.Helper()
	now := time.Now()
	d := &entities.Demand{
		ID:              uuid.New(),
		FarmerID:        farmerID,
		FarmerName:      "Karim",
		Title:           "Labour de printemps",
		RequiredService: "Labour",
		City:            "Fès",
		Status:          status,
		JobLocationLat:  34.03,
		JobLocationLon:  -5.0,
		RequiredStart:   now.Add(24 * time.Hour),
		RequiredEnd:     now.Add(72 * time.Hour),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	require.NoError(t, repo.Create(context.Background(), d))
	return d
}

func TestDemandRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createDemandTable(t, db)
	repo := NewDemandRepository(db)
	ctx := context.Background()

	d := seedDemand(t, repo, uuid.New(), entities.DemandStatusWaiting)

	byID, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "Labour", byID.RequiredService)
	require.Equal(t, entities.DemandStatusWaiting, byID.Status)

	d.City = "Meknès"
	d.Description = null.StringFrom("Parcelle de 5 hectares")
	require.NoError(t, repo.Update(ctx, d))

	updated, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "Meknès", updated.City)
	require.Equal(t, "Parcelle de 5 hectares", updated.Description.String)

	require.NoError(t, repo.UpdateStatus(ctx, d.ID, entities.DemandStatusMatched))
	matched, err := repo.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, entities.DemandStatusMatched, matched.Status)

	require.NoError(t, repo.Delete(ctx, d.ID))
	_, err = repo.GetByID(ctx, d.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestDemandRepository_GetByIDWithFarmer(t *testing.T) {
	db := newTestDB(t)
	createDemandTable(t, db)
	createUserTable(t, db)
	demandRepo := NewDemandRepository(db)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, userRepo, "Karim", "karim@ykri.ma", entities.UserRoleFarmer, entities.ApprovalStatusApproved, 34.03, -5.0)
	d := seedDemand(t, demandRepo, farmer.ID, entities.DemandStatusWaiting)

	full, err := demandRepo.GetByIDWithFarmer(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, full.Farmer)
	require.Equal(t, "Karim", full.Farmer.Name)
}

func TestDemandRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createDemandTable(t, db)
	repo := NewDemandRepository(db)
	ctx := context.Background()

	farmerID := uuid.New()
	seedDemand(t, repo, farmerID, entities.DemandStatusWaiting)
	seedDemand(t, repo, farmerID, entities.DemandStatusMatched)
	seedDemand(t, repo, uuid.New(), entities.DemandStatusWaiting)

	byFarmer, err := repo.List(ctx, entities.DemandFilter{FarmerID: &farmerID})
	require.NoError(t, err)
	require.Len(t, byFarmer, 2)

	waiting := entities.DemandStatusWaiting
	byBoth, err := repo.List(ctx, entities.DemandFilter{FarmerID: &farmerID, Status: &waiting})
	require.NoError(t, err)
	require.Len(t, byBoth, 1)
}

func TestDemandRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createDemandTable(t, db)
	repo := NewDemandRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.UpdateStatus(ctx, id, entities.DemandStatusMatched)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Delete(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
