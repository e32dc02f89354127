package models

import (
	"time"

	"github.com/google/uuid"
)

type Offer struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ProviderID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProviderName      string     `gorm:"type:varchar(100);not null"`
	EquipmentType     string     `gorm:"type:varchar(100);not null"`
	MachineTemplateID *uuid.UUID `gorm:"type:uuid;index"`
	Description       string     `gorm:"type:text"`
	CustomFields      *string    `gorm:"type:jsonb"`
	PriceRate         float64    `gorm:"not null"`
	City              string     `gorm:"type:varchar(100);not null"`
	Address           string     `gorm:"type:varchar(255)"`
	BookingStatus     string     `gorm:"type:varchar(20);not null;default:'waiting';index"`
	PhotoURL          string     `gorm:"type:text;not null"`
	ServiceAreaLat    float64
	ServiceAreaLon    float64
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Provider        *User              `gorm:"foreignKey:ProviderID"`
	MachineTemplate *MachineTemplate   `gorm:"foreignKey:MachineTemplateID"`
	Availability    []AvailabilitySlot `gorm:"foreignKey:OfferID"`
}

// AvailabilitySlot is the legacy predefined availability window table.
type AvailabilitySlot struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OfferID uuid.UUID `gorm:"type:uuid;not null;index"`
	Start   time.Time `gorm:"not null"`
	End     time.Time `gorm:"not null"`
}
