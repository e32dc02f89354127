package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"ykri.backend/internal/domain/entities"
	domainerrors "ykri.backend/internal/domain/errors"
	"ykri.backend/internal/infrastructure/models"
	"ykri.backend/pkg/utils"
)

// MessageRepository implements message data operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) conn(ctx context.Context) *gorm.DB {
	return GetDB(ctx, r.db).WithContext(ctx)
}

// Create creates a single message
func (r *MessageRepository) Create(ctx context.Context, message *entities.Message) error {
	if message.ID == uuid.Nil {
		message.ID = utils.GenerateUUIDv7()
	}
	m := messageToModel(message)
	if err := r.conn(ctx).Create(m).Error; err != nil {
		return err
	}
	message.ID = m.ID
	message.CreatedAt = m.CreatedAt
	return nil
}

// CreateBatch inserts messages in one statement. Used by notification
// fan-out.
func (r *MessageRepository) CreateBatch(ctx context.Context, messages []*entities.Message) error {
	if len(messages) == 0 {
		return nil
	}
	messageModels := make([]*models.Message, 0, len(messages))
	for _, message := range messages {
		if message.ID == uuid.Nil {
			message.ID = utils.GenerateUUIDv7()
		}
		messageModels = append(messageModels, messageToModel(message))
	}
	if err := r.conn(ctx).Create(&messageModels).Error; err != nil {
		return err
	}
	for i := range messages {
		messages[i].ID = messageModels[i].ID
		messages[i].CreatedAt = messageModels[i].CreatedAt
	}
	return nil
}

// GetByID gets a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Message, error) {
	var m models.Message
	if err := r.conn(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return messageToEntity(&m), nil
}

// GetConversation returns the messages between two users in chronological
// order.
func (r *MessageRepository) GetConversation(ctx context.Context, userID, otherUserID uuid.UUID) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := r.conn(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("created_at ASC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

// ListByUser returns every message the user sent or received, newest first
func (r *MessageRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := r.conn(ctx).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

// MarkRead flags one message as read. Only the receiver may do this.
func (r *MessageRepository) MarkRead(ctx context.Context, id, receiverID uuid.UUID) error {
	result := r.conn(ctx).Model(&models.Message{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// MarkConversationRead flags every unread message from otherUserID to
// userID as read.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, userID, otherUserID uuid.UUID) error {
	return r.conn(ctx).Model(&models.Message{}).
		Where("receiver_id = ? AND sender_id = ? AND read = ?", userID, otherUserID, false).
		Update("read", true).Error
}

func messageToModel(msg *entities.Message) *models.Message {
	m := &models.Message{
		ID:              msg.ID,
		SenderID:        msg.SenderID,
		SenderName:      msg.SenderName,
		ReceiverID:      msg.ReceiverID,
		ReceiverName:    msg.ReceiverName,
		Content:         msg.Content,
		Read:            msg.Read,
		RelatedOfferID:  msg.RelatedOfferID,
		RelatedDemandID: msg.RelatedDemandID,
		CreatedAt:       msg.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if msg.AttachmentURL.Valid {
		m.AttachmentURL = &msg.AttachmentURL.String
	}
	if msg.AttachmentName.Valid {
		m.AttachmentName = &msg.AttachmentName.String
	}
	if msg.AttachmentKind.Valid {
		m.AttachmentKind = &msg.AttachmentKind.String
	}
	if msg.ActionLabel.Valid {
		m.ActionLabel = &msg.ActionLabel.String
	}
	if msg.ActionTarget.Valid {
		m.ActionTarget = &msg.ActionTarget.String
	}
	return m
}

func messageToEntity(m *models.Message) *entities.Message {
	return &entities.Message{
		ID:              m.ID,
		SenderID:        m.SenderID,
		SenderName:      m.SenderName,
		ReceiverID:      m.ReceiverID,
		ReceiverName:    m.ReceiverName,
		Content:         m.Content,
		Read:            m.Read,
		RelatedOfferID:  m.RelatedOfferID,
		RelatedDemandID: m.RelatedDemandID,
		AttachmentURL:   null.StringFromPtr(m.AttachmentURL),
		AttachmentName:  null.StringFromPtr(m.AttachmentName),
		AttachmentKind:  null.StringFromPtr(m.AttachmentKind),
		ActionLabel:     null.StringFromPtr(m.ActionLabel),
		ActionTarget:    null.StringFromPtr(m.ActionTarget),
		CreatedAt:       m.CreatedAt,
	}
}

func messagesToEntities(messageModels []models.Message) []*entities.Message {
	messages := make([]*entities.Message, 0, len(messageModels))
	for i := range messageModels {
		messages = append(messages, messageToEntity(&messageModels[i]))
	}
	return messages
}
