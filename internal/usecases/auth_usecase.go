package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
	"ykri.backend/pkg/crypto"
	"ykri.backend/pkg/jwt"
	"ykri.backend/pkg/redis"
)

// SessionStore abstracts the encrypted redis session storage
type SessionStore interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo     repositories.UserRepository
	jwtService   *jwt.JWTService
	sessionStore SessionStore
	sessionTTL   time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessionStore SessionStore,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:     userRepo,
		jwtService:   jwtService,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Register registers a new user. Accounts are auto-approved; the pending
// and denied states remain admin-settable afterwards.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if input.Phone != "" {
		_, err = u.userRepo.GetByPhone(ctx, input.Phone)
		if err == nil {
			return nil, domainerrors.Conflict("phone already registered")
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}

	switch input.Role {
	case entities.UserRoleFarmer, entities.UserRoleProvider, entities.UserRoleBoth:
	default:
		return nil, domainerrors.BadRequest("invalid role")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:           input.Name,
		Email:          email,
		PasswordHash:   passwordHash,
		Phone:          null.NewString(input.Phone, input.Phone != ""),
		Role:           input.Role,
		ApprovalStatus: entities.ApprovalStatusApproved,
		LocationLat:    input.Lat,
		LocationLon:    input.Lon,
	}
	if input.Role == entities.UserRoleBoth {
		user.ActiveMode = null.StringFrom(string(entities.ActiveModeFarmer))
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Login authenticates with an email address or phone number. Pending and
// denied accounts are rejected with distinct messages.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.findByIdentifier(ctx, input.Identifier)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.Unauthorized("invalid credentials")
	}

	switch user.ApprovalStatus {
	case entities.ApprovalStatusPending:
		return nil, domainerrors.Forbidden("account pending approval")
	case entities.ApprovalStatusDenied:
		return nil, domainerrors.Forbidden("account denied")
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	if input.UseSession && u.sessionStore != nil {
		sessionID, err := crypto.GenerateSessionID()
		if err != nil {
			return nil, err
		}
		data := &redis.SessionData{
			AccessToken:  pair.AccessToken,
			RefreshToken: pair.RefreshToken,
		}
		if err := u.sessionStore.CreateSession(ctx, sessionID, data, u.sessionTTL); err != nil {
			return nil, err
		}
		return &entities.AuthResponse{SessionID: sessionID, User: user}, nil
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.Unauthorized("refresh token expired")
		}
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid refresh token")
		}
		return nil, err
	}
	if user.ApprovalStatus != entities.ApprovalStatusApproved {
		return nil, domainerrors.Forbidden("account not approved")
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// Logout drops the server-side session, if one exists
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" || u.sessionStore == nil {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, sessionID)
}

// ResolveSession turns a session id back into an access token
func (u *AuthUsecase) ResolveSession(ctx context.Context, sessionID string) (string, error) {
	if u.sessionStore == nil {
		return "", domainerrors.Unauthorized("sessions disabled")
	}
	data, err := u.sessionStore.GetSession(ctx, sessionID)
	if err != nil {
		return "", domainerrors.Unauthorized("invalid session")
	}
	return data.AccessToken, nil
}

func (u *AuthUsecase) findByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return u.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	}
	return u.userRepo.GetByPhone(ctx, identifier)
}
