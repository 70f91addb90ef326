package dto

import (
	"time"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/roles"
)

// ProfileResponse is the public view of a profile.
type ProfileResponse struct {
	ID             string               `json:"id"`
	Email          string               `json:"email"`
	FullName       string               `json:"full_name"`
	Phone          *string              `json:"phone,omitempty"`
	Role           roles.Role           `json:"role"`
	Department     domain.Department    `json:"department"`
	HierarchyLevel int                  `json:"hierarchy_level"`
	EmployeeID     *string              `json:"employee_id,omitempty"`
	FacilityID     *string              `json:"facility_id,omitempty"`
	FacilityType   *string              `json:"facility_type,omitempty"`
	AvatarURL      *string              `json:"avatar_url,omitempty"`
	IsActive       bool                 `json:"is_active"`
	Classification roles.Classification `json:"classification"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// ProfileFromDomain maps a profile, dropping the password hash.
func ProfileFromDomain(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		Email:          p.Email,
		FullName:       p.FullName,
		Phone:          p.Phone,
		Role:           p.Role,
		Department:     p.Department,
		HierarchyLevel: p.HierarchyLevel,
		EmployeeID:     p.EmployeeID,
		FacilityID:     p.FacilityID,
		FacilityType:   p.FacilityType,
		AvatarURL:      p.AvatarURL,
		IsActive:       p.IsActive,
		Classification: p.Classification(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ProfilesFromDomain maps a slice.
func ProfilesFromDomain(in []domain.Profile) []ProfileResponse {
	out := make([]ProfileResponse, len(in))
	for i := range in {
		out[i] = ProfileFromDomain(&in[i])
	}
	return out
}

// ProfileUpdateRequest is the user management edit form.
type ProfileUpdateRequest struct {
	FullName       *string `json:"full_name" validate:"omitempty,max=200"`
	Phone          *string `json:"phone" validate:"omitempty,max=32"`
	Role           *string `json:"role" validate:"omitempty,portal_role"`
	Department     *string `json:"department" validate:"omitempty,department"`
	HierarchyLevel *int    `json:"hierarchy_level" validate:"omitempty,min=1,max=10"`
	IsActive       *bool   `json:"is_active"`
}
