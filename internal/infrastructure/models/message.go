package models

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SenderID        *uuid.UUID `gorm:"type:uuid;index"`
	SenderName      string     `gorm:"type:varchar(100);not null"`
	ReceiverID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ReceiverName    string     `gorm:"type:varchar(100);not null"`
	Content         string     `gorm:"type:text;not null"`
	Read            bool       `gorm:"not null;default:false"`
	RelatedOfferID  *uuid.UUID `gorm:"type:uuid"`
	RelatedDemandID *uuid.UUID `gorm:"type:uuid"`
	AttachmentURL   *string    `gorm:"type:text"`
	AttachmentName  *string    `gorm:"type:varchar(255)"`
	AttachmentKind  *string    `gorm:"type:varchar(20)"`
	ActionLabel     *string    `gorm:"type:varchar(100)"`
	ActionTarget    *string    `gorm:"type:varchar(100)"`
	CreatedAt       time.Time
}
