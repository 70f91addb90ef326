package dto

import (
	"time"

	"github.com/bpdb/power-portal/internal/roles"
)

// RegisterRequest payload for self-service sign-up. Role, department and
// level may be omitted and default to a customer account.
type RegisterRequest struct {
	FullName       string  `json:"full_name" validate:"required,max=200"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password" validate:"required,min=8,max=72"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	Role           string  `json:"role" validate:"omitempty,portal_role"`
	Department     string  `json:"department" validate:"omitempty,department"`
	HierarchyLevel int     `json:"hierarchy_level" validate:"omitempty,min=1,max=10"`
	EmployeeID     *string `json:"employee_id" validate:"omitempty,max=64"`
	FacilityID     *string `json:"facility_id" validate:"omitempty,max=64"`
	FacilityType   *string `json:"facility_type" validate:"omitempty,oneof=power_plant substation office"`
}

// LoginRequest payload for sign-in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// PasswordResetRequest starts a reset.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm completes a reset.
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required,uuid"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// PasswordChangeRequest changes the caller's password.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// AuthResponse carries the issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// LoginResponse is the sign-in result. Redirect is empty when the user could
// not be routed.
type LoginResponse struct {
	Profile    ProfileResponse   `json:"profile"`
	Auth       AuthResponse      `json:"auth"`
	Redirect   string            `json:"redirect"`
	Navigation *roles.Navigation `json:"navigation"`
}
