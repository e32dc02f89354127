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

func TestMessageUsecase_Send_Success(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)

	senderID := uuid.New()
	receiverID := uuid.New()
	userRepo.On("GetByID", context.Background(), senderID).Return(&entities.User{ID: senderID, Name: "Karim"}, nil).Once()
	userRepo.On("GetByID", context.Background(), receiverID).Return(&entities.User{ID: receiverID, Name: "Hassan"}, nil).Once()
	messageRepo.On("Create", context.Background(), mock.AnythingOfType("*entities.Message")).Return(nil).Once()

	msg, err := uc.Send(context.Background(), senderID, &entities.SendMessageInput{
		ReceiverID: receiverID.String(),
		Content:    "Bonjour, le tracteur est-il disponible ?",
	})
	assert.NoError(t, err)
	assert.Equal(t, senderID, *msg.SenderID)
	assert.Equal(t, "Hassan", msg.ReceiverName)
	assert.False(t, msg.IsSystem())
}

func TestMessageUsecase_Send_SelfMessage(t *testing.T) {
	uc := usecases.NewMessageUsecase(new(MockMessageRepository), new(MockUserRepository))

	userID := uuid.New()
	_, err := uc.Send(context.Background(), userID, &entities.SendMessageInput{
		ReceiverID: userID.String(),
		Content:    "note",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestMessageUsecase_Send_BadAttachmentKind(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewMessageUsecase(messageRepo, userRepo)

	senderID := uuid.New()
	receiverID := uuid.New()
	userRepo.On("GetByID", context.Background(), senderID).Return(&entities.User{ID: senderID}, nil)
	userRepo.On("GetByID", context.Background(), receiverID).Return(&entities.User{ID: receiverID}, nil)

	_, err := uc.Send(context.Background(), senderID, &entities.SendMessageInput{
		ReceiverID:     receiverID.String(),
		Content:        "voici la photo",
		AttachmentKind: "video",
		AttachmentURL:  "https://cdn.example.com/v.mp4",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	// kind without url is also rejected
	_, err = uc.Send(context.Background(), senderID, &entities.SendMessageInput{
		ReceiverID:     receiverID.String(),
		Content:        "voici la photo",
		AttachmentKind: "file",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestMessageUsecase_GetConversation_MarksRead(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	uc := usecases.NewMessageUsecase(messageRepo, new(MockUserRepository))

	userID := uuid.New()
	otherID := uuid.New()
	messageRepo.On("GetConversation", context.Background(), userID, otherID).Return([]*entities.Message{}, nil).Once()
	messageRepo.On("MarkConversationRead", context.Background(), userID, otherID).Return(nil).Once()

	_, err := uc.GetConversation(context.Background(), userID, otherID)
	assert.NoError(t, err)
	messageRepo.AssertExpectations(t)
}

func TestMessageUsecase_Conversations_Rollup(t *testing.T) {
	messageRepo := new(MockMessageRepository)
	uc := usecases.NewMessageUsecase(messageRepo, new(MockUserRepository))

	userID := uuid.New()
	partnerID := uuid.New()
	now := time.Now()

	// newest first, the way ListByUser returns them
	messages := []*entities.Message{
		{
			SenderID:     &partnerID,
			SenderName:   "Hassan",
			ReceiverID:   userID,
			ReceiverName: "Karim",
			Content:      "dernier message",
			Read:         false,
			CreatedAt:    now,
		},
		{
			SenderID:     &userID,
			SenderName:   "Karim",
			ReceiverID:   partnerID,
			ReceiverName: "Hassan",
			Content:      "plus ancien",
			Read:         true,
			CreatedAt:    now.Add(-time.Hour),
		},
		{
			SenderID:     &partnerID,
			SenderName:   "Hassan",
			ReceiverID:   userID,
			ReceiverName: "Karim",
			Content:      "encore plus ancien",
			Read:         false,
			CreatedAt:    now.Add(-2 * time.Hour),
		},
		{
			SenderID:   nil,
			SenderName: entities.SystemSenderName,
			ReceiverID: userID,
			Content:    "Nouvelle demande près de chez vous",
			Read:       false,
			CreatedAt:  now.Add(-3 * time.Hour),
		},
	}
	messageRepo.On("ListByUser", context.Background(), userID).Return(messages, nil).Once()

	conversations, err := uc.Conversations(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, conversations, 2)

	assert.Equal(t, partnerID, conversations[0].OtherUserID)
	assert.Equal(t, "Hassan", conversations[0].OtherUserName)
	assert.Equal(t, "dernier message", conversations[0].LastMessage)
	assert.Equal(t, 2, conversations[0].UnreadCount)

	// system notifications group under the platform sentinel
	assert.Equal(t, uuid.Nil, conversations[1].OtherUserID)
	assert.Equal(t, entities.SystemSenderName, conversations[1].OtherUserName)
	assert.Equal(t, 1, conversations[1].UnreadCount)
}
