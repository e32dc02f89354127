package entities

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents an offer's aggregate reservation state
type BookingStatus string

const (
	BookingStatusWaiting     BookingStatus = "waiting"
	BookingStatusNegotiating BookingStatus = "negotiating"
	BookingStatusMatched     BookingStatus = "matched"
)

// Offer represents a provider's listed equipment
type Offer struct {
	ID                uuid.UUID              `json:"id"`
	ProviderID        uuid.UUID              `json:"providerId"`
	ProviderName      string                 `json:"providerName"`
	EquipmentType     string                 `json:"equipmentType"`
	MachineTemplateID *uuid.UUID             `json:"machineTemplateId,omitempty"`
	Description       string                 `json:"description"`
	CustomFields      map[string]interface{} `json:"customFields,omitempty"`
	PriceRate         float64                `json:"priceRate"`
	City              string                 `json:"city"`
	Address           string                 `json:"address"`
	BookingStatus     BookingStatus          `json:"bookingStatus"`
	PhotoURL          string                 `json:"photoUrl"`
	ServiceAreaLat    float64                `json:"serviceAreaLat"`
	ServiceAreaLon    float64                `json:"serviceAreaLon"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`

	// Joins
	Provider        *User              `json:"provider,omitempty"`
	MachineTemplate *MachineTemplate   `json:"machineTemplate,omitempty"`
	Availability    []AvailabilitySlot `json:"availability,omitempty"`
}

// AvailabilitySlot is a legacy predefined availability window on an offer.
// Availability is now derived from approved reservations; these slots are
// kept for offers created by older clients.
type AvailabilitySlot struct {
	ID      uuid.UUID `json:"id"`
	OfferID uuid.UUID `json:"offerId"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// CreateOfferInput represents input for creating an offer
type CreateOfferInput struct {
	EquipmentType     string                 `json:"equipmentType" binding:"required"`
	MachineTemplateID string                 `json:"machineTemplateId"`
	Description       string                 `json:"description"`
	CustomFields      map[string]interface{} `json:"customFields"`
	PriceRate         float64                `json:"priceRate" binding:"required"`
	City              string                 `json:"city" binding:"required"`
	Address           string                 `json:"address"`
	PhotoURL          string                 `json:"photoUrl"`
	Lat               float64                `json:"lat"`
	Lon               float64                `json:"lon"`
	Availability      []TimeSlot             `json:"availability"`
}

// UpdateOfferInput represents input for offer mutation
type UpdateOfferInput struct {
	EquipmentType *string                `json:"equipmentType"`
	Description   *string                `json:"description"`
	CustomFields  map[string]interface{} `json:"customFields"`
	PriceRate     *float64               `json:"priceRate"`
	City          *string                `json:"city"`
	Address       *string                `json:"address"`
	PhotoURL      *string                `json:"photoUrl"`
	BookingStatus *string                `json:"bookingStatus"`
}

// OfferFilter scopes offer listings
type OfferFilter struct {
	ProviderID    *uuid.UUID
	BookingStatus *BookingStatus
}

// AvailabilityResult is the advisory double-booking check result
type AvailabilityResult struct {
	OfferID   uuid.UUID `json:"offerId"`
	Slot      TimeSlot  `json:"slot"`
	Available bool      `json:"available"`
}
