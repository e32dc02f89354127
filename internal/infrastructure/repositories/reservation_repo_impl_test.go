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

func seedReservation(t *testing.T, repo *ReservationRepository, offerID uuid.UUID, status entities.ReservationStatus, start time.Time) *entities.Reservation {
	t.Helper()
	now := time.Now()
	res := &entities.Reservation{
		ID:            uuid.New(),
		FarmerID:      uuid.New(),
		FarmerName:    "Karim",
		OfferID:       offerID,
		ProviderID:    uuid.New(),
		ProviderName:  "Hassan",
		EquipmentType: "Tracteur",
		PriceRate:     500,
		Status:        status,
		ReservedStart: start,
		ReservedEnd:   start.Add(48 * time.Hour),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, repo.Create(context.Background(), res))
	return res
}

func TestReservationRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	res := seedReservation(t, repo, uuid.New(), entities.ReservationStatusPending, time.Now().Add(24*time.Hour))

	byID, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, entities.ReservationStatusPending, byID.Status)
	require.False(t, byID.ProviderValidated)
	require.False(t, byID.TotalCost.Valid)
}

func TestReservationRepository_UpdateStateMachineFields(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	res := seedReservation(t, repo, uuid.New(), entities.ReservationStatusPending, time.Now().Add(24*time.Hour))

	now := time.Now()
	res.ProviderValidated = true
	res.ProviderValidatedAt = &now
	require.NoError(t, repo.Update(ctx, res))

	afterProvider, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.True(t, afterProvider.ProviderValidated)
	require.NotNil(t, afterProvider.ProviderValidatedAt)
	require.Equal(t, entities.ReservationStatusPending, afterProvider.Status)

	res.FarmerValidated = true
	res.FarmerValidatedAt = &now
	res.ApprovedAt = &now
	res.Status = entities.ReservationStatusApproved
	res.TotalCost = null.Float64From(1000)
	require.NoError(t, repo.Update(ctx, res))

	approved, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.Equal(t, entities.ReservationStatusApproved, approved.Status)
	require.True(t, approved.FarmerValidated)
	require.NotNil(t, approved.ApprovedAt)
	require.Equal(t, float64(1000), approved.TotalCost.Float64)
}

func TestReservationRepository_GetByIDFull(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	createOfferTables(t, db)
	createUserTable(t, db)
	reservationRepo := NewReservationRepository(db)
	offerRepo := NewOfferRepository(db)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	farmer := seedUser(t, userRepo, "Karim", "karim@ykri.ma", entities.UserRoleFarmer, entities.ApprovalStatusApproved, 34, -5)
	provider := seedUser(t, userRepo, "Hassan", "hassan@ykri.ma", entities.UserRoleProvider, entities.ApprovalStatusApproved, 34, -5)
	offer := seedOffer(t, offerRepo, provider.ID, entities.BookingStatusNegotiating)

	now := time.Now()
	res := &entities.Reservation{
		ID:            uuid.New(),
		FarmerID:      farmer.ID,
		FarmerName:    farmer.Name,
		OfferID:       offer.ID,
		ProviderID:    provider.ID,
		ProviderName:  provider.Name,
		EquipmentType: offer.EquipmentType,
		PriceRate:     offer.PriceRate,
		Status:        entities.ReservationStatusPending,
		ReservedStart: now.Add(24 * time.Hour),
		ReservedEnd:   now.Add(72 * time.Hour),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, reservationRepo.Create(ctx, res))

	full, err := reservationRepo.GetByIDFull(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, full.Offer)
	require.NotNil(t, full.Farmer)
	require.NotNil(t, full.Provider)
	require.Equal(t, "Tracteur", full.Offer.EquipmentType)
	require.Equal(t, "karim@ykri.ma", full.Farmer.Email)
}

func TestReservationRepository_ListApprovedByOffer(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	offerID := uuid.New()
	base := time.Now().Add(24 * time.Hour)
	later := seedReservation(t, repo, offerID, entities.ReservationStatusApproved, base.Add(96*time.Hour))
	earlier := seedReservation(t, repo, offerID, entities.ReservationStatusApproved, base)
	seedReservation(t, repo, offerID, entities.ReservationStatusPending, base.Add(200*time.Hour))
	seedReservation(t, repo, uuid.New(), entities.ReservationStatusApproved, base)

	approved, err := repo.ListApprovedByOffer(ctx, offerID)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	require.Equal(t, earlier.ID, approved[0].ID, "sorted by reserved start ascending")
	require.Equal(t, later.ID, approved[1].ID)
}

func TestReservationRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()

	offerID := uuid.New()
	res := seedReservation(t, repo, offerID, entities.ReservationStatusPending, time.Now().Add(24*time.Hour))
	seedReservation(t, repo, uuid.New(), entities.ReservationStatusCancelled, time.Now().Add(24*time.Hour))

	byFarmer, err := repo.List(ctx, entities.ReservationFilter{FarmerID: &res.FarmerID})
	require.NoError(t, err)
	require.Len(t, byFarmer, 1)

	byOffer, err := repo.List(ctx, entities.ReservationFilter{OfferID: &offerID})
	require.NoError(t, err)
	require.Len(t, byOffer, 1)

	pending := entities.ReservationStatusPending
	byStatus, err := repo.List(ctx, entities.ReservationFilter{Status: &pending})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
}

func TestReservationRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createReservationTable(t, db)
	repo := NewReservationRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByIDFull(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.Reservation{ID: id, Status: entities.ReservationStatusCancelled})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
