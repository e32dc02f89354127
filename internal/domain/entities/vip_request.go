package entities

import (
	"time"

	"github.com/google/uuid"
)

// VIPRequestStatus represents the state of a legacy role-upgrade request
type VIPRequestStatus string

const (
	VIPRequestStatusPending  VIPRequestStatus = "pending"
	VIPRequestStatusApproved VIPRequestStatus = "approved"
	VIPRequestStatusDenied   VIPRequestStatus = "denied"
)

// VIPUpgradeRequest is the legacy workflow for upgrading a user's role.
// Approval updates User.Role; one pending request per user is enforced.
type VIPUpgradeRequest struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"userId"`
	UserName    string           `json:"userName"`
	UserEmail   string           `json:"userEmail"`
	CurrentRole UserRole         `json:"currentRole"`
	Status      VIPRequestStatus `json:"status"`
	RequestDate time.Time        `json:"requestDate"`
	ResolvedAt  *time.Time       `json:"resolvedAt,omitempty"`
}

// ResolveVIPRequestInput represents the admin decision body
type ResolveVIPRequestInput struct {
	Status VIPRequestStatus `json:"status" binding:"required"`
}

// VIPRequestFilter scopes request listings
type VIPRequestFilter struct {
	UserID *uuid.UUID
	Status *VIPRequestStatus
}
