package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DemandStatus represents demand status
type DemandStatus string

const (
	// DemandStatusWaiting means no proposal has been received yet.
	DemandStatusWaiting DemandStatus = "waiting"
	// DemandStatusNegotiating means at least one proposal is pending.
	DemandStatusNegotiating DemandStatus = "negotiating"
	// DemandStatusMatched means a proposal was accepted; the demand no
	// longer accepts new proposals.
	DemandStatusMatched DemandStatus = "matched"
)

// NormalizeDemandStatus maps legacy client vocabulary onto the canonical
// status set. Older clients still send "open" and "pending" for freshly
// created demands.
func NormalizeDemandStatus(s string) DemandStatus {
	switch DemandStatus(s) {
	case DemandStatusNegotiating:
		return DemandStatusNegotiating
	case DemandStatusMatched:
		return DemandStatusMatched
	default:
		return DemandStatusWaiting
	}
}

// TimeSlot represents a rental time window. The end bound is exclusive.
type TimeSlot struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// Overlaps reports whether two time slots intersect. Edge-touching slots
// (one ends exactly when the other starts) do not overlap.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Demand represents a farmer's request for an agricultural service
type Demand struct {
	ID              uuid.UUID    `json:"id"`
	FarmerID        uuid.UUID    `json:"farmerId"`
	FarmerName      string       `json:"farmerName"`
	Title           string       `json:"title"`
	RequiredService string       `json:"requiredService"`
	ServiceType     null.String  `json:"serviceType,omitempty"`
	CropType        null.String  `json:"cropType,omitempty"`
	Area            null.Float64 `json:"area,omitempty"`
	City            string       `json:"city"`
	Address         string       `json:"address"`
	Description     null.String  `json:"description,omitempty"`
	Status          DemandStatus `json:"status"`
	PhotoURL        null.String  `json:"photoUrl,omitempty"`
	JobLocationLat  float64      `json:"jobLocationLat"`
	JobLocationLon  float64      `json:"jobLocationLon"`
	RequiredStart   time.Time    `json:"requiredStart"`
	RequiredEnd     time.Time    `json:"requiredEnd"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`

	// Joins
	Farmer *User `json:"farmer,omitempty"`
}

// CreateDemandInput represents input for creating a demand
type CreateDemandInput struct {
	Title           string   `json:"title"`
	RequiredService string   `json:"requiredService" binding:"required"`
	ServiceType     string   `json:"serviceType"`
	CropType        string   `json:"cropType"`
	Area            float64  `json:"area"`
	City            string   `json:"city" binding:"required"`
	Address         string   `json:"address"`
	Description     string   `json:"description"`
	PhotoURL        string   `json:"photoUrl"`
	Lat             float64  `json:"lat"`
	Lon             float64  `json:"lon"`
	RequiredSlot    TimeSlot `json:"requiredTimeSlot" binding:"required"`
	Status          string   `json:"status"`
}

// UpdateDemandInput represents input for demand mutation
type UpdateDemandInput struct {
	Title           *string   `json:"title"`
	RequiredService *string   `json:"requiredService"`
	Description     *string   `json:"description"`
	City            *string   `json:"city"`
	Address         *string   `json:"address"`
	PhotoURL        *string   `json:"photoUrl"`
	Status          *string   `json:"status"`
	RequiredSlot    *TimeSlot `json:"requiredTimeSlot"`
}

// DemandFilter scopes demand listings
type DemandFilter struct {
	FarmerID *uuid.UUID
	Status   *DemandStatus
}
