package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
)

// VIPRequestUsecase handles the legacy role-upgrade workflow
type VIPRequestUsecase struct {
	requestRepo repositories.VIPRequestRepository
	userRepo    repositories.UserRepository
	uow         repositories.UnitOfWork
	notifier    Notifier
}

// NewVIPRequestUsecase creates a new VIP request usecase
func NewVIPRequestUsecase(
	requestRepo repositories.VIPRequestRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	notifier Notifier,
) *VIPRequestUsecase {
	return &VIPRequestUsecase{
		requestRepo: requestRepo,
		userRepo:    userRepo,
		uow:         uow,
		notifier:    notifier,
	}
}

// Create opens an upgrade request for the authenticated user. One pending
// request per user.
func (u *VIPRequestUsecase) Create(ctx context.Context, userID uuid.UUID) (*entities.VIPUpgradeRequest, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == entities.UserRoleVIP || user.Role == entities.UserRoleAdmin {
		return nil, domainerrors.BadRequest("account already has an elevated role")
	}

	_, err = u.requestRepo.GetPendingByUser(ctx, userID)
	if err == nil {
		return nil, domainerrors.BadRequest("an upgrade request is already pending")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	request := &entities.VIPUpgradeRequest{
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		CurrentRole: user.Role,
		Status:      entities.VIPRequestStatusPending,
		RequestDate: time.Now(),
	}
	if err := u.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// List returns upgrade requests matching the filter
func (u *VIPRequestUsecase) List(ctx context.Context, filter entities.VIPRequestFilter) ([]*entities.VIPUpgradeRequest, error) {
	return u.requestRepo.List(ctx, filter)
}

// Resolve approves or denies a pending request. Approval upgrades the
// user's role in the same transaction.
func (u *VIPRequestUsecase) Resolve(ctx context.Context, requestID uuid.UUID, status entities.VIPRequestStatus) (*entities.VIPUpgradeRequest, error) {
	if status != entities.VIPRequestStatusApproved && status != entities.VIPRequestStatusDenied {
		return nil, domainerrors.BadRequest("status must be approved or denied")
	}

	request, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("upgrade request not found")
		}
		return nil, err
	}
	if request.Status != entities.VIPRequestStatusPending {
		return nil, domainerrors.BadRequest("request has already been resolved")
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.requestRepo.UpdateStatus(txCtx, request.ID, status); err != nil {
			return err
		}
		if status != entities.VIPRequestStatusApproved {
			return nil
		}
		user, err := u.userRepo.GetByID(txCtx, request.UserID)
		if err != nil {
			return err
		}
		user.Role = entities.UserRoleVIP
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		return nil, err
	}
	request.Status = status
	now := time.Now()
	request.ResolvedAt = &now

	if u.notifier != nil {
		content := "Votre demande de passage VIP a été refusée"
		if status == entities.VIPRequestStatusApproved {
			content = "Votre demande de passage VIP a été approuvée"
		}
		u.notifier.Send(ctx, Notification{
			ReceiverID:   request.UserID,
			ReceiverName: request.UserName,
			Content:      content,
		})
	}
	return request, nil
}
