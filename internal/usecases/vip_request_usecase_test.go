package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/usecases"
)

func TestVIPRequestUsecase_Create_Success(t *testing.T) {
	requestRepo := new(MockVIPRequestRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewVIPRequestUsecase(requestRepo, userRepo, new(MockUnitOfWork), &RecordingNotifier{})

	userID := uuid.New()
	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{
		ID:    userID,
		Name:  "Karim",
		Email: "karim@mail.com",
		Role:  entities.UserRoleFarmer,
	}, nil).Once()
	requestRepo.On("GetPendingByUser", context.Background(), userID).Return(nil, domainerrors.ErrNotFound).Once()
	requestRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.VIPUpgradeRequest")).Return(nil).Once()

	request, err := uc.Create(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, entities.VIPRequestStatusPending, request.Status)
	assert.Equal(t, entities.UserRoleFarmer, request.CurrentRole)
}

func TestVIPRequestUsecase_Create_AlreadyElevated(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := usecases.NewVIPRequestUsecase(new(MockVIPRequestRepository), userRepo, new(MockUnitOfWork), &RecordingNotifier{})

	userID := uuid.New()
	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{
		ID:   userID,
		Role: entities.UserRoleVIP,
	}, nil).Once()

	_, err := uc.Create(context.Background(), userID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestVIPRequestUsecase_Create_OnePendingPerUser(t *testing.T) {
	requestRepo := new(MockVIPRequestRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewVIPRequestUsecase(requestRepo, userRepo, new(MockUnitOfWork), &RecordingNotifier{})

	userID := uuid.New()
	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{
		ID:   userID,
		Role: entities.UserRoleProvider,
	}, nil).Once()
	requestRepo.On("GetPendingByUser", context.Background(), userID).Return(&entities.VIPUpgradeRequest{ID: uuid.New()}, nil).Once()

	_, err := uc.Create(context.Background(), userID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestVIPRequestUsecase_Resolve_ApproveUpgradesRole(t *testing.T) {
	requestRepo := new(MockVIPRequestRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUnitOfWork)
	notifier := &RecordingNotifier{}
	uc := usecases.NewVIPRequestUsecase(requestRepo, userRepo, uow, notifier)

	userID := uuid.New()
	requestID := uuid.New()
	requestRepo.On("GetByID", context.Background(), requestID).Return(&entities.VIPUpgradeRequest{
		ID:       requestID,
		UserID:   userID,
		UserName: "Karim",
		Status:   entities.VIPRequestStatusPending,
	}, nil).Once()
	uow.On("Do", context.Background(), mock.Anything).Return(nil).Once()
	requestRepo.On("UpdateStatus", context.Background(), requestID, entities.VIPRequestStatusApproved).Return(nil).Once()
	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{
		ID:   userID,
		Role: entities.UserRoleFarmer,
	}, nil).Once()
	userRepo.On("Update", context.Background(), mock.MatchedBy(func(u *entities.User) bool {
		return u.Role == entities.UserRoleVIP
	})).Return(nil).Once()

	resolved, err := uc.Resolve(context.Background(), requestID, entities.VIPRequestStatusApproved)
	assert.NoError(t, err)
	assert.Equal(t, entities.VIPRequestStatusApproved, resolved.Status)
	assert.NotNil(t, resolved.ResolvedAt)
	assert.Len(t, notifier.Sent, 1)
	assert.Equal(t, userID, notifier.Sent[0].ReceiverID)
	userRepo.AssertExpectations(t)
}

func TestVIPRequestUsecase_Resolve_DenyKeepsRole(t *testing.T) {
	requestRepo := new(MockVIPRequestRepository)
	userRepo := new(MockUserRepository)
	uow := new(MockUnitOfWork)
	uc := usecases.NewVIPRequestUsecase(requestRepo, userRepo, uow, &RecordingNotifier{})

	requestID := uuid.New()
	requestRepo.On("GetByID", context.Background(), requestID).Return(&entities.VIPUpgradeRequest{
		ID:     requestID,
		UserID: uuid.New(),
		Status: entities.VIPRequestStatusPending,
	}, nil).Once()
	uow.On("Do", context.Background(), mock.Anything).Return(nil).Once()
	requestRepo.On("UpdateStatus", context.Background(), requestID, entities.VIPRequestStatusDenied).Return(nil).Once()

	resolved, err := uc.Resolve(context.Background(), requestID, entities.VIPRequestStatusDenied)
	assert.NoError(t, err)
	assert.Equal(t, entities.VIPRequestStatusDenied, resolved.Status)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestVIPRequestUsecase_Resolve_AlreadyResolved(t *testing.T) {
	requestRepo := new(MockVIPRequestRepository)
	uc := usecases.NewVIPRequestUsecase(requestRepo, new(MockUserRepository), new(MockUnitOfWork), &RecordingNotifier{})

	requestID := uuid.New()
	requestRepo.On("GetByID", context.Background(), requestID).Return(&entities.VIPUpgradeRequest{
		ID:     requestID,
		Status: entities.VIPRequestStatusApproved,
	}, nil).Once()

	_, err := uc.Resolve(context.Background(), requestID, entities.VIPRequestStatusDenied)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestVIPRequestUsecase_Resolve_BadStatus(t *testing.T) {
	uc := usecases.NewVIPRequestUsecase(new(MockVIPRequestRepository), new(MockUserRepository), new(MockUnitOfWork), &RecordingNotifier{})

	_, err := uc.Resolve(context.Background(), uuid.New(), entities.VIPRequestStatusPending)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}
