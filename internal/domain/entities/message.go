package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SystemSenderName is the display name used for messages with no human
// sender (notification-style messages dispatched by the platform).
const SystemSenderName = "Système YKRI"

// AttachmentKind distinguishes file and audio attachments
type AttachmentKind string

const (
	AttachmentKindFile  AttachmentKind = "file"
	AttachmentKindAudio AttachmentKind = "audio"
)

// Message is the bidirectional chat/notification unit. SenderID is nil for
// system notifications.
type Message struct {
	ID              uuid.UUID   `json:"id"`
	SenderID        *uuid.UUID  `json:"senderId,omitempty"`
	SenderName      string      `json:"senderName"`
	ReceiverID      uuid.UUID   `json:"receiverId"`
	ReceiverName    string      `json:"receiverName"`
	Content         string      `json:"content"`
	Read            bool        `json:"read"`
	RelatedOfferID  *uuid.UUID  `json:"relatedOfferId,omitempty"`
	RelatedDemandID *uuid.UUID  `json:"relatedDemandId,omitempty"`
	AttachmentURL   null.String `json:"attachmentUrl,omitempty"`
	AttachmentName  null.String `json:"attachmentName,omitempty"`
	AttachmentKind  null.String `json:"attachmentKind,omitempty"`
	ActionLabel     null.String `json:"actionLabel,omitempty"`
	ActionTarget    null.String `json:"actionTarget,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// IsSystem reports whether the message has no human sender.
func (m *Message) IsSystem() bool {
	return m.SenderID == nil
}

// SendMessageInput represents input for sending a chat message
type SendMessageInput struct {
	ReceiverID     string `json:"receiverId" binding:"required"`
	Content        string `json:"content" binding:"required"`
	RelatedOfferID string `json:"relatedOfferId"`
	RelatedDemand  string `json:"relatedDemandId"`
	AttachmentURL  string `json:"attachmentUrl"`
	AttachmentName string `json:"attachmentName"`
	AttachmentKind string `json:"attachmentKind"`
}

// Conversation is the per-partner rollup returned by the conversations
// endpoint.
type Conversation struct {
	OtherUserID     uuid.UUID `json:"otherUserId"`
	OtherUserName   string    `json:"otherUserName"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageDate time.Time `json:"lastMessageDate"`
	UnreadCount     int       `json:"unreadCount"`
}
