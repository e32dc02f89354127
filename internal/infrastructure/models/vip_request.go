package models

import (
	"time"

	"github.com/google/uuid"
)

type VIPUpgradeRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UserName    string    `gorm:"type:varchar(100);not null"`
	UserEmail   string    `gorm:"type:varchar(255);not null"`
	CurrentRole string    `gorm:"type:varchar(20);not null"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	RequestDate time.Time `gorm:"not null"`
	ResolvedAt  *time.Time
}
