package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/usecases"
	"ykri.backend/pkg/crypto"
	"ykri.backend/pkg/jwt"
	redispkg "ykri.backend/pkg/redis"
)

const testEncryptionKey = "000102030405060708090a0b0c0d0e0f000102030405060708090a0b0c0d0e0f"

func newAuthUsecaseForTest(t *testing.T, userRepo *MockUserRepository, withSessions bool) *usecases.AuthUsecase {
	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	var store usecases.SessionStore
	if withSessions {
		mr := miniredis.RunT(t)
		redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))
		s, err := redispkg.NewSessionStore(testEncryptionKey)
		if err != nil {
			t.Fatalf("session store: %v", err)
		}
		store = s
	}
	return usecases.NewAuthUsecase(userRepo, jwtSvc, store, 24*time.Hour)
}

func TestAuthUsecase_Register_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userRepo.On("GetByEmail", context.Background(), "new@mail.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("GetByPhone", context.Background(), "0612345678").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.User")).Return(nil).Run(func(args mock.Arguments) {
		u := args.Get(1).(*entities.User)
		u.ID = uuid.New()
	}).Once()

	resp, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name:     "Karim",
		Email:    "New@Mail.com",
		Password: "password123",
		Phone:    "0612345678",
		Role:     entities.UserRoleFarmer,
		Lat:      33.57,
		Lon:      -7.58,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@mail.com", resp.User.Email)
	assert.Equal(t, entities.ApprovalStatusApproved, resp.User.ApprovalStatus)
	userRepo.AssertExpectations(t)
}

func TestAuthUsecase_Register_EmailTaken(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userRepo.On("GetByEmail", context.Background(), "taken@mail.com").Return(&entities.User{ID: uuid.New()}, nil).Once()

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name:     "X",
		Email:    "taken@mail.com",
		Password: "password123",
		Role:     entities.UserRoleProvider,
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuthUsecase_Register_BadRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userRepo.On("GetByEmail", context.Background(), "x@mail.com").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Name:     "X",
		Email:    "x@mail.com",
		Password: "password123",
		Role:     entities.UserRoleAdmin,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAuthUsecase_Login_ByEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	hash, _ := crypto.HashPassword("password123")
	userRepo.On("GetByEmail", context.Background(), "karim@mail.com").Return(&entities.User{
		ID:             uuid.New(),
		Email:          "karim@mail.com",
		PasswordHash:   hash,
		Role:           entities.UserRoleFarmer,
		ApprovalStatus: entities.ApprovalStatusApproved,
	}, nil).Once()

	resp, err := uc.Login(context.Background(), &entities.LoginInput{
		Identifier: "Karim@Mail.com",
		Password:   "password123",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Empty(t, resp.SessionID)
}

func TestAuthUsecase_Login_ByPhone(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	hash, _ := crypto.HashPassword("password123")
	userRepo.On("GetByPhone", context.Background(), "0612345678").Return(&entities.User{
		ID:             uuid.New(),
		PasswordHash:   hash,
		Role:           entities.UserRoleProvider,
		ApprovalStatus: entities.ApprovalStatusApproved,
	}, nil).Once()

	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Identifier: "0612345678",
		Password:   "password123",
	})
	assert.NoError(t, err)
}

func TestAuthUsecase_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	hash, _ := crypto.HashPassword("password123")
	userRepo.On("GetByEmail", context.Background(), "karim@mail.com").Return(&entities.User{
		ID:           uuid.New(),
		PasswordHash: hash,
	}, nil).Once()

	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Identifier: "karim@mail.com",
		Password:   "nope",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Login_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userRepo.On("GetByEmail", context.Background(), "ghost@mail.com").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Identifier: "ghost@mail.com",
		Password:   "password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Login_PendingAccount(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	hash, _ := crypto.HashPassword("password123")
	userRepo.On("GetByEmail", context.Background(), "pending@mail.com").Return(&entities.User{
		ID:             uuid.New(),
		PasswordHash:   hash,
		ApprovalStatus: entities.ApprovalStatusPending,
	}, nil).Once()

	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Identifier: "pending@mail.com",
		Password:   "password123",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestAuthUsecase_Login_SessionRoundTrip(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, true)

	hash, _ := crypto.HashPassword("password123")
	userRepo.On("GetByEmail", context.Background(), "karim@mail.com").Return(&entities.User{
		ID:             uuid.New(),
		Email:          "karim@mail.com",
		PasswordHash:   hash,
		Role:           entities.UserRoleFarmer,
		ApprovalStatus: entities.ApprovalStatusApproved,
	}, nil).Once()

	resp, err := uc.Login(context.Background(), &entities.LoginInput{
		Identifier: "karim@mail.com",
		Password:   "password123",
		UseSession: true,
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.SessionID)
	assert.Empty(t, resp.AccessToken)

	token, err := uc.ResolveSession(context.Background(), resp.SessionID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	assert.NoError(t, uc.Logout(context.Background(), resp.SessionID))
	_, err = uc.ResolveSession(context.Background(), resp.SessionID)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthUsecase_Refresh(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := newAuthUsecaseForTest(t, userRepo, false)

	userID := uuid.New()
	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	pair, err := jwtSvc.GenerateTokenPair(userID, "karim@mail.com", string(entities.UserRoleFarmer))
	assert.NoError(t, err)

	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{
		ID:             userID,
		Email:          "karim@mail.com",
		Role:           entities.UserRoleFarmer,
		ApprovalStatus: entities.ApprovalStatusApproved,
	}, nil).Once()

	fresh, err := uc.Refresh(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	_, err = uc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}
