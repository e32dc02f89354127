package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	Phone          *string   `gorm:"type:varchar(50);index"`
	Role           string    `gorm:"type:varchar(20);not null;default:'Farmer'"`
	ApprovalStatus string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	ActiveMode     *string   `gorm:"type:varchar(20)"`
	LocationLat    float64   `gorm:"index"`
	LocationLon    float64   `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
