package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/domain/repositories"
)

// MessageUsecase handles chat and notification reads
type MessageUsecase struct {
	messageRepo repositories.MessageRepository
	userRepo    repositories.UserRepository
}

// NewMessageUsecase creates a new message usecase
func NewMessageUsecase(messageRepo repositories.MessageRepository, userRepo repositories.UserRepository) *MessageUsecase {
	return &MessageUsecase{messageRepo: messageRepo, userRepo: userRepo}
}

// Send creates a chat message from the authenticated sender
func (u *MessageUsecase) Send(ctx context.Context, senderID uuid.UUID, input *entities.SendMessageInput) (*entities.Message, error) {
	receiverID, err := uuid.Parse(input.ReceiverID)
	if err != nil {
		return nil, domainerrors.BadRequest("invalid receiver id")
	}
	if receiverID == senderID {
		return nil, domainerrors.BadRequest("cannot message yourself")
	}

	sender, err := u.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := u.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("receiver not found")
		}
		return nil, err
	}

	if input.AttachmentKind != "" {
		switch entities.AttachmentKind(input.AttachmentKind) {
		case entities.AttachmentKindFile, entities.AttachmentKindAudio:
		default:
			return nil, domainerrors.BadRequest("attachment kind must be file or audio")
		}
		if input.AttachmentURL == "" {
			return nil, domainerrors.BadRequest("attachment url is required")
		}
	}

	message := &entities.Message{
		SenderID:       &sender.ID,
		SenderName:     sender.Name,
		ReceiverID:     receiver.ID,
		ReceiverName:   receiver.Name,
		Content:        input.Content,
		AttachmentURL:  null.NewString(input.AttachmentURL, input.AttachmentURL != ""),
		AttachmentName: null.NewString(input.AttachmentName, input.AttachmentName != ""),
		AttachmentKind: null.NewString(input.AttachmentKind, input.AttachmentKind != ""),
	}
	if input.RelatedOfferID != "" {
		offerID, err := uuid.Parse(input.RelatedOfferID)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid related offer id")
		}
		message.RelatedOfferID = &offerID
	}
	if input.RelatedDemand != "" {
		demandID, err := uuid.Parse(input.RelatedDemand)
		if err != nil {
			return nil, domainerrors.BadRequest("invalid related demand id")
		}
		message.RelatedDemandID = &demandID
	}

	if err := u.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListByUser returns every message the user sent or received
func (u *MessageUsecase) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error) {
	return u.messageRepo.ListByUser(ctx, userID)
}

// GetConversation returns the thread between the user and another user,
// marking incoming messages as read.
func (u *MessageUsecase) GetConversation(ctx context.Context, userID, otherUserID uuid.UUID) ([]*entities.Message, error) {
	messages, err := u.messageRepo.GetConversation(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}
	if err := u.messageRepo.MarkConversationRead(ctx, userID, otherUserID); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flags one received message as read
func (u *MessageUsecase) MarkRead(ctx context.Context, userID, messageID uuid.UUID) error {
	return u.messageRepo.MarkRead(ctx, messageID, userID)
}

// Conversations rolls the user's messages up into one row per partner,
// newest first, with the unread count of incoming messages. System
// notifications (no sender) group under the platform sentinel.
func (u *MessageUsecase) Conversations(ctx context.Context, userID uuid.UUID) ([]*entities.Conversation, error) {
	messages, err := u.messageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byPartner := make(map[uuid.UUID]*entities.Conversation)
	order := make([]uuid.UUID, 0)

	for _, msg := range messages {
		partnerID, partnerName := conversationPartner(msg, userID)

		conv, ok := byPartner[partnerID]
		if !ok {
			// Messages arrive newest first, so the first one seen per
			// partner is the latest.
			conv = &entities.Conversation{
				OtherUserID:     partnerID,
				OtherUserName:   partnerName,
				LastMessage:     msg.Content,
				LastMessageDate: msg.CreatedAt,
			}
			byPartner[partnerID] = conv
			order = append(order, partnerID)
		}
		if msg.ReceiverID == userID && !msg.Read {
			conv.UnreadCount++
		}
	}

	conversations := make([]*entities.Conversation, 0, len(order))
	for _, id := range order {
		conversations = append(conversations, byPartner[id])
	}
	return conversations, nil
}

func conversationPartner(msg *entities.Message, userID uuid.UUID) (uuid.UUID, string) {
	if msg.IsSystem() {
		return uuid.Nil, entities.SystemSenderName
	}
	if *msg.SenderID == userID {
		return msg.ReceiverID, msg.ReceiverName
	}
	return *msg.SenderID, msg.SenderName
}
