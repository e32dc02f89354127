package models

import (
	"time"

	"github.com/google/uuid"
)

type Demand struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	FarmerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	FarmerName      string    `gorm:"type:varchar(100);not null"`
	Title           string    `gorm:"type:varchar(200)"`
	RequiredService string    `gorm:"type:varchar(100);not null"`
	ServiceType     *string   `gorm:"type:varchar(100)"`
	CropType        *string   `gorm:"type:varchar(100)"`
	Area            *float64
	City            string  `gorm:"type:varchar(100);not null"`
	Address         string  `gorm:"type:varchar(255)"`
	Description     *string `gorm:"type:text"`
	Status          string  `gorm:"type:varchar(20);not null;default:'waiting';index"`
	PhotoURL        *string `gorm:"type:text"`
	JobLocationLat  float64
	JobLocationLon  float64
	RequiredStart   time.Time `gorm:"not null"`
	RequiredEnd     time.Time `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Farmer *User `gorm:"foreignKey:FarmerID"`
}
