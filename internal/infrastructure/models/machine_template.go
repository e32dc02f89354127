package models

import (
	"time"

	"github.com/google/uuid"
)

type MachineTemplate struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name             string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description      *string   `gorm:"type:text"`
	FieldDefinitions string    `gorm:"type:jsonb;not null"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
