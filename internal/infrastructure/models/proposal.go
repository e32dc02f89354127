package models

import (
	"time"

	"github.com/google/uuid"
)

type Proposal struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	DemandID     uuid.UUID `gorm:"type:uuid;not null;index:idx_proposals_demand_provider,unique"`
	ProviderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_proposals_demand_provider,unique"`
	ProviderName string    `gorm:"type:varchar(100);not null"`
	Price        float64   `gorm:"not null"`
	Description  string    `gorm:"type:text;not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Demand   *Demand `gorm:"foreignKey:DemandID"`
	Provider *User   `gorm:"foreignKey:ProviderID"`
}
