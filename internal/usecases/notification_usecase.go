package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"ykri.backend/internal/domain/entities"
	"ykri.backend/internal/domain/repositories"
	"ykri.backend/pkg/logger"
)

// Notification is one system message to dispatch. Sender is always the
// platform, never a human user.
type Notification struct {
	ReceiverID      uuid.UUID
	ReceiverName    string
	Content         string
	RelatedOfferID  *uuid.UUID
	RelatedDemandID *uuid.UUID
	ActionLabel     string
	ActionTarget    string
}

// Notifier dispatches best-effort system notifications. Implementations
// must never fail the calling business operation.
type Notifier interface {
	Send(ctx context.Context, n Notification)
	SendBulk(ctx context.Context, ns []Notification)
}

// NotificationUsecase persists system notifications as messages with no
// sender. Delivery failures are logged and swallowed.
type NotificationUsecase struct {
	messageRepo repositories.MessageRepository
}

// NewNotificationUsecase creates a new notification dispatcher
func NewNotificationUsecase(messageRepo repositories.MessageRepository) *NotificationUsecase {
	return &NotificationUsecase{messageRepo: messageRepo}
}

// Send dispatches a single notification
func (u *NotificationUsecase) Send(ctx context.Context, n Notification) {
	msg := notificationToMessage(n)
	if err := u.messageRepo.Create(ctx, msg); err != nil {
		logger.Warn(ctx, "notification dispatch failed",
			zap.String("receiver_id", n.ReceiverID.String()),
			zap.Error(err),
		)
	}
}

// SendBulk dispatches notifications in one batch insert
func (u *NotificationUsecase) SendBulk(ctx context.Context, ns []Notification) {
	if len(ns) == 0 {
		return
	}
	messages := make([]*entities.Message, 0, len(ns))
	for _, n := range ns {
		messages = append(messages, notificationToMessage(n))
	}
	if err := u.messageRepo.CreateBatch(ctx, messages); err != nil {
		logger.Warn(ctx, "bulk notification dispatch failed",
			zap.Int("count", len(ns)),
			zap.Error(err),
		)
	}
}

func notificationToMessage(n Notification) *entities.Message {
	return &entities.Message{
		SenderID:        nil,
		SenderName:      entities.SystemSenderName,
		ReceiverID:      n.ReceiverID,
		ReceiverName:    n.ReceiverName,
		Content:         n.Content,
		RelatedOfferID:  n.RelatedOfferID,
		RelatedDemandID: n.RelatedDemandID,
		ActionLabel:     null.NewString(n.ActionLabel, n.ActionLabel != ""),
		ActionTarget:    null.NewString(n.ActionTarget, n.ActionTarget != ""),
	}
}
