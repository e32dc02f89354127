package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReservationStatus represents reservation status
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusApproved  ReservationStatus = "approved"
	ReservationStatusRejected  ReservationStatus = "rejected"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// IsTerminal reports whether no further transition is allowed.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusApproved || s == ReservationStatusRejected || s == ReservationStatusCancelled
}

// Reservation state-machine actions
const (
	ReservationActionProviderValidate    = "provider_validate"
	ReservationActionFarmerFinalValidate = "farmer_final_validate"
	ReservationActionReject              = "reject"
	ReservationActionCancel              = "cancel"
)

// Reservation represents a farmer's booking request against an offer
type Reservation struct {
	ID                  uuid.UUID         `json:"id"`
	FarmerID            uuid.UUID         `json:"farmerId"`
	FarmerName          string            `json:"farmerName"`
	FarmerPhone         null.String       `json:"farmerPhone,omitempty"`
	OfferID             uuid.UUID         `json:"offerId"`
	ProviderID          uuid.UUID         `json:"providerId"`
	ProviderName        string            `json:"providerName"`
	EquipmentType       string            `json:"equipmentType"`
	PriceRate           float64           `json:"priceRate"`
	TotalCost           null.Float64      `json:"totalCost,omitempty"`
	Status              ReservationStatus `json:"status"`
	ProviderValidated   bool              `json:"providerValidated"`
	FarmerValidated     bool              `json:"farmerValidated"`
	ProviderValidatedAt *time.Time        `json:"providerValidatedAt,omitempty"`
	FarmerValidatedAt   *time.Time        `json:"farmerValidatedAt,omitempty"`
	ApprovedAt          *time.Time        `json:"approvedAt,omitempty"`
	ReservedStart       time.Time         `json:"reservedStart"`
	ReservedEnd         time.Time         `json:"reservedEnd"`
	CreatedAt           time.Time         `json:"createdAt"`
	UpdatedAt           time.Time         `json:"updatedAt"`

	// Joins
	Offer    *Offer `json:"offer,omitempty"`
	Farmer   *User  `json:"farmer,omitempty"`
	Provider *User  `json:"provider,omitempty"`
}

// ReservedSlot returns the reservation window as a TimeSlot.
func (r *Reservation) ReservedSlot() TimeSlot {
	return TimeSlot{Start: r.ReservedStart, End: r.ReservedEnd}
}

// CreateReservationInput represents input for creating a reservation. The
// farmer identity comes from the authenticated session.
type CreateReservationInput struct {
	OfferID      string   `json:"offerId" binding:"required"`
	TotalCost    float64  `json:"totalCost"`
	ReservedSlot TimeSlot `json:"reservedTimeSlot" binding:"required"`
}

// UpdateReservationInput represents the PATCH body for reservation state
// transitions. Action carries the canonical state machine; Status is the
// legacy field still sent by older clients and is translated at the
// boundary.
type UpdateReservationInput struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

// ReservationFilter scopes reservation listings
type ReservationFilter struct {
	FarmerID   *uuid.UUID
	ProviderID *uuid.UUID
	OfferID    *uuid.UUID
	Status     *ReservationStatus
}
