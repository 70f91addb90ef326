package service

import (
	"github.com/bpdb/power-portal/internal/auth"
	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/roles"
)

// NavigationView is the dashboard shell state for one request: where the
// profile belongs and the sidebar with the current screen highlighted.
type NavigationView struct {
	Classification roles.Classification   `json:"classification"`
	Target         roles.NavigationTarget `json:"target"`
	Groups         []roles.ActiveGroup    `json:"groups"`
	Permissions    []auth.Grant           `json:"permissions"`
}

// RoleEntry describes how one enumerated role is routed.
type RoleEntry struct {
	Role       roles.Role `json:"role"`
	Tier       roles.Tier `json:"tier"`
	Department string     `json:"department,omitempty"`
	Rule       string     `json:"rule"`
	Path       string     `json:"path"`
	MenuItems  int        `json:"menu_items"`
}

// NavigationService exposes role routing to authenticated callers.
type NavigationService struct{}

// NewNavigationService creates the service.
func NewNavigationService() *NavigationService {
	return &NavigationService{}
}

// ForProfile derives the navigation of profile with currentPath marked active.
func (s *NavigationService) ForProfile(profile *domain.Profile, currentPath string) NavigationView {
	nav := roles.NavigationFor(profile.Classification())
	return NavigationView{
		Classification: nav.Classification,
		Target:         nav.Target,
		Groups:         nav.Menu.WithActive(currentPath),
		Permissions:    auth.Grants(nav.Classification),
	}
}

// Catalog lists every enumerated role with its tier and dashboard.
func (s *NavigationService) Catalog() []RoleEntry {
	all := roles.AllRoles()
	out := make([]RoleEntry, 0, len(all))
	for _, role := range all {
		nav := roles.Navigate(string(role))
		out = append(out, RoleEntry{
			Role:       role,
			Tier:       nav.Classification.Tier,
			Department: nav.Classification.Department,
			Rule:       roles.MatchedRule(string(role)),
			Path:       nav.Target.Path,
			MenuItems:  nav.Menu.ItemCount(),
		})
	}
	return out
}

// Rules lists the classification rules in evaluation order.
func (s *NavigationService) Rules() []roles.RuleInfo {
	return roles.Rules()
}
