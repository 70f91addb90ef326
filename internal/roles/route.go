package roles

import (
	"net/url"
	"strings"
)

// Path placeholders used in route templates.
const (
	PlaceholderDepartment     = ":department"
	PlaceholderSpecialization = ":specialization"
	PlaceholderType           = ":type"
)

// Technicians land on the officer dashboard; there is no technician route.
const technicianPath = "/dashboard/officer/technical"

var routeTemplates = map[Tier]string{
	TierChairman:         "/dashboard/chairman",
	TierManagingDirector: "/dashboard/managing-director",
	TierDirector:         "/dashboard/director/" + PlaceholderDepartment,
	TierGM:               "/dashboard/gm/" + PlaceholderDepartment,
	TierDGM:              "/dashboard/dgm/" + PlaceholderDepartment,
	TierAGM:              "/dashboard/agm/" + PlaceholderDepartment,
	TierChiefEngineer:    "/dashboard/chief-engineer",
	TierEngineer:         "/dashboard/engineer/" + PlaceholderSpecialization,
	TierSystemAnalyst:    "/dashboard/system-analyst",
	TierTechnician:       technicianPath,
	TierOperator:         "/dashboard/operator/" + PlaceholderType,
	TierOfficer:          "/dashboard/officer/" + PlaceholderDepartment,
	TierCustomer:         "/dashboard/customer",
}

// NavigationTarget pairs a route template with its substituted path.
type NavigationTarget struct {
	Template string `json:"template"`
	Path     string `json:"path"`
}

// RouteTemplate returns the path template for a tier. Unknown tiers get the
// customer template.
func RouteTemplate(t Tier) string {
	if tpl, ok := routeTemplates[t]; ok {
		return tpl
	}
	return routeTemplates[TierCustomer]
}

// Resolve returns the dashboard path for a classification.
func Resolve(c Classification) string {
	return Target(c).Path
}

// Target returns the dashboard template and resolved path for c.
func Target(c Classification) NavigationTarget {
	tpl := RouteTemplate(c.Tier)
	path := tpl
	if i := strings.Index(tpl, "/:"); i >= 0 {
		path = tpl[:i+1] + url.PathEscape(c.Department)
	}
	return NavigationTarget{Template: tpl, Path: path}
}
