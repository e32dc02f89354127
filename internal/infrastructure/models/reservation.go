package models

import (
	"time"

	"github.com/google/uuid"
)

type Reservation struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	FarmerID            uuid.UUID `gorm:"type:uuid;not null;index"`
	FarmerName          string    `gorm:"type:varchar(100);not null"`
	FarmerPhone         *string   `gorm:"type:varchar(50)"`
	OfferID             uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID          uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderName        string    `gorm:"type:varchar(100);not null"`
	EquipmentType       string    `gorm:"type:varchar(100);not null"`
	PriceRate           float64   `gorm:"not null"`
	TotalCost           *float64
	Status              string `gorm:"type:varchar(20);not null;default:'pending';index"`
	ProviderValidated   bool   `gorm:"not null;default:false"`
	FarmerValidated     bool   `gorm:"not null;default:false"`
	ProviderValidatedAt *time.Time
	FarmerValidatedAt   *time.Time
	ApprovedAt          *time.Time
	ReservedStart       time.Time `gorm:"not null"`
	ReservedEnd         time.Time `gorm:"not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Offer    *Offer `gorm:"foreignKey:OfferID"`
	Farmer   *User  `gorm:"foreignKey:FarmerID"`
	Provider *User  `gorm:"foreignKey:ProviderID"`
}
