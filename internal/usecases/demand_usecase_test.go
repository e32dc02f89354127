package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/usecases"
)

func newDemandUsecaseForTest(demandRepo *MockDemandRepository, userRepo *MockUserRepository, notifier *RecordingNotifier) *usecases.DemandUsecase {
	return usecases.NewDemandUsecase(demandRepo, userRepo, notifier, 50)
}

func TestDemandUsecase_Create_FansOutToNearbyProviders(t *testing.T) {
	demandRepo := new(MockDemandRepository)
	userRepo := new(MockUserRepository)
	notifier := &RecordingNotifier{}
	uc := newDemandUsecaseForTest(demandRepo, userRepo, notifier)

	farmerID := uuid.New()
	providerID := uuid.New()
	userRepo.On("GetByID", context.Background(), farmerID).Return(&entities.User{ID: farmerID, Name: "Karim"}, nil).Once()
	demandRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.Demand")).Return(nil).Once()
	userRepo.On("FindNearby", context.Background(), mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]*entities.NearbyUser{
		{ID: providerID, Name: "Hassan", Role: entities.UserRoleProvider},
		{ID: farmerID, Name: "Karim", Role: entities.UserRoleBoth},
	}, nil).Once()

	start := time.Now().Add(24 * time.Hour)
	demand, err := uc.Create(context.Background(), farmerID, &entities.CreateDemandInput{
		RequiredService: "Labour",
		City:            "Fès",
		Lat:             34.03,
		Lon:             -5.0,
		RequiredSlot:    entities.TimeSlot{Start: start, End: start.Add(8 * time.Hour)},
		Status:          "open",
	})
	assert.NoError(t, err)

	// legacy "open" maps onto the canonical waiting status
	assert.Equal(t, entities.DemandStatusWaiting, demand.Status)

	// the farmer is excluded from their own fan-out
	assert.Len(t, notifier.Sent, 1)
	assert.Equal(t, providerID, notifier.Sent[0].ReceiverID)
	assert.Equal(t, "Nouvelle demande près de chez vous : Labour à Fès", notifier.Sent[0].Content)
}

func TestDemandUsecase_Create_BadSlot(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newDemandUsecaseForTest(new(MockDemandRepository), userRepo, &RecordingNotifier{})

	farmerID := uuid.New()
	userRepo.On("GetByID", context.Background(), farmerID).Return(&entities.User{ID: farmerID}, nil).Once()

	start := time.Now()
	_, err := uc.Create(context.Background(), farmerID, &entities.CreateDemandInput{
		RequiredService: "Labour",
		City:            "Fès",
		RequiredSlot:    entities.TimeSlot{Start: start, End: start.Add(-time.Hour)},
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestDemandUsecase_Create_SurvivesFanOutFailure(t *testing.T) {
	demandRepo := new(MockDemandRepository)
	userRepo := new(MockUserRepository)
	uc := newDemandUsecaseForTest(demandRepo, userRepo, &RecordingNotifier{})

	farmerID := uuid.New()
	userRepo.On("GetByID", context.Background(), farmerID).Return(&entities.User{ID: farmerID}, nil).Once()
	demandRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.Demand")).Return(nil).Once()
	userRepo.On("FindNearby", context.Background(), mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()

	start := time.Now().Add(time.Hour)
	demand, err := uc.Create(context.Background(), farmerID, &entities.CreateDemandInput{
		RequiredService: "Semis",
		City:            "Fès",
		RequiredSlot:    entities.TimeSlot{Start: start, End: start.Add(time.Hour)},
	})
	assert.NoError(t, err)
	assert.NotNil(t, demand)
}

func TestDemandUsecase_Update_OwnerOnly(t *testing.T) {
	demandRepo := new(MockDemandRepository)
	uc := newDemandUsecaseForTest(demandRepo, new(MockUserRepository), &RecordingNotifier{})

	demandID := uuid.New()
	demandRepo.On("GetByID", context.Background(), demandID).Return(&entities.Demand{
		ID:       demandID,
		FarmerID: uuid.New(),
	}, nil).Once()

	title := "x"
	_, err := uc.Update(context.Background(), uuid.New(), entities.UserRoleFarmer, demandID, &entities.UpdateDemandInput{Title: &title})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestDemandUsecase_Delete_AdminOverride(t *testing.T) {
	demandRepo := new(MockDemandRepository)
	uc := newDemandUsecaseForTest(demandRepo, new(MockUserRepository), &RecordingNotifier{})

	demandID := uuid.New()
	demandRepo.On("GetByID", context.Background(), demandID).Return(&entities.Demand{
		ID:       demandID,
		FarmerID: uuid.New(),
	}, nil).Once()
	demandRepo.On("Delete", context.Background(), demandID).Return(nil).Once()

	err := uc.Delete(context.Background(), uuid.New(), entities.UserRoleAdmin, demandID)
	assert.NoError(t, err)
	demandRepo.AssertExpectations(t)
}
