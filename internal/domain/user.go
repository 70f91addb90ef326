package domain

import (
	"time"

	"github.com/bpdb/power-portal/internal/roles"
)

// Hierarchy levels run from 1 (customer) to 10 (chairman).
const (
	MinHierarchyLevel = 1
	MaxHierarchyLevel = 10
)

// Profile is a portal account. Role is the stored organizational title that
// drives routing and the sidebar.
type Profile struct {
	ID             string
	Email          string
	FullName       string
	Phone          *string
	Role           roles.Role
	Department     Department
	HierarchyLevel int
	EmployeeID     *string
	FacilityID     *string
	FacilityType   *string
	AvatarURL      *string
	IsActive       bool
	PasswordHash   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Classification derives the role classification for the profile.
func (p *Profile) Classification() roles.Classification {
	return roles.Classify(string(p.Role))
}
