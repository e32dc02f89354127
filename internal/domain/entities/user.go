package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleFarmer   UserRole = "Farmer"
	UserRoleProvider UserRole = "Provider"
	UserRoleBoth     UserRole = "Both"
	UserRoleAdmin    UserRole = "Admin"
	// UserRoleVIP is a legacy role kept for accounts upgraded through the
	// old VIP request workflow.
	UserRoleVIP UserRole = "VIP"
)

// ApprovalStatus represents account approval status
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusDenied   ApprovalStatus = "denied"
)

// ActiveMode tracks which side of the marketplace a dual-role account is
// currently acting as.
type ActiveMode string

const (
	ActiveModeFarmer   ActiveMode = "Farmer"
	ActiveModeProvider ActiveMode = "Provider"
)

// User represents a user entity
type User struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	PasswordHash   string         `json:"-"`
	Phone          null.String    `json:"phone,omitempty"`
	Role           UserRole       `json:"role"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	ActiveMode     null.String    `json:"activeMode,omitempty"`
	LocationLat    float64        `json:"locationLat"`
	LocationLon    float64        `json:"locationLon"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeletedAt      *time.Time     `json:"-"`
}

// NearbyUser is the projection returned by the nearby-user locator; it only
// carries what notification fan-out needs.
type NearbyUser struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role UserRole  `json:"role"`
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Name     string   `json:"name" binding:"required,min=2,max=100"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=8"`
	Phone    string   `json:"phone"`
	Role     UserRole `json:"role" binding:"required"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
}

// LoginInput represents input for user login. Identifier is an email address
// or a phone number.
type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// UpdateUserInput represents input for profile updates
type UpdateUserInput struct {
	Name           string         `json:"name"`
	Phone          *string        `json:"phone"`
	Role           UserRole       `json:"role"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	ActiveMode     ActiveMode     `json:"activeMode"`
	Lat            *float64       `json:"lat"`
	Lon            *float64       `json:"lon"`
}
