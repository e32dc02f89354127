package repositories

import (
	"context"

	"github.com/google/uuid"
	"ykri.backend/internal/domain/entities"
)

// MessageRepository defines message data operations. Messages are never
// deleted through the API.
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error
	CreateBatch(ctx context.Context, messages []*entities.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error)
	// GetConversation returns the messages between two users in
	// chronological order.
	GetConversation(ctx context.Context, userID, otherUserID uuid.UUID) ([]*entities.Message, error)
	// ListByUser returns every message the user sent or received, newest
	// first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error)
	MarkRead(ctx context.Context, id, receiverID uuid.UUID) error
	// MarkConversationRead flags every unread message from otherUserID to
	// userID as read.
	MarkConversationRead(ctx context.Context, userID, otherUserID uuid.UUID) error
}
