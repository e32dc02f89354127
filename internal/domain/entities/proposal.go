package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProposalStatus represents proposal status
type ProposalStatus string

const (
	ProposalStatusPending  ProposalStatus = "pending"
	ProposalStatusAccepted ProposalStatus = "accepted"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// Proposal represents a provider's priced bid against a demand
type Proposal struct {
	ID           uuid.UUID      `json:"id"`
	DemandID     uuid.UUID      `json:"demandId"`
	ProviderID   uuid.UUID      `json:"providerId"`
	ProviderName string         `json:"providerName"`
	Price        float64        `json:"price"`
	Description  string         `json:"description"`
	Status       ProposalStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`

	// Joins
	Demand   *Demand `json:"demand,omitempty"`
	Provider *User   `json:"provider,omitempty"`
}

// CreateProposalInput represents input for creating a proposal. The
// provider identity comes from the authenticated session, never the body.
type CreateProposalInput struct {
	DemandID    string  `json:"demandId" binding:"required"`
	Price       float64 `json:"price" binding:"required"`
	Description string  `json:"description" binding:"required"`
}

// Proposal decision actions
const (
	ProposalActionAccept = "accept"
	ProposalActionReject = "reject"
)

// DecideProposalInput represents the accept/reject request body
type DecideProposalInput struct {
	Action string `json:"action" binding:"required"`
}

// ProposalFilter scopes proposal listings
type ProposalFilter struct {
	DemandID   *uuid.UUID
	ProviderID *uuid.UUID
	Status     *ProposalStatus
}
