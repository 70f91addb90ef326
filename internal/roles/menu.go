package roles

import "strings"

// Routes served by the management screens.
const (
	RoutePowerPlants = "/management/power-plants"
	RouteSubstations = "/management/substations"
	RouteUsers       = "/management/users"
	RouteIncidents   = "/management/incidents"
)

// MenuItem is a single sidebar entry. URL is either an application route
// ("/...") or an in-page anchor ("#...").
type MenuItem struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	URL   string `json:"url"`
}

// IsRoute reports whether the item navigates to an application route.
func (i MenuItem) IsRoute() bool {
	return strings.HasPrefix(i.URL, "/")
}

// IsAnchor reports whether the item points at an in-page section.
func (i MenuItem) IsAnchor() bool {
	return strings.HasPrefix(i.URL, "#")
}

// MenuGroup is a labelled run of items.
type MenuGroup struct {
	Label string     `json:"label"`
	Items []MenuItem `json:"items"`
}

// Menu is the ordered sidebar model.
type Menu []MenuGroup

var (
	itemOverview  = MenuItem{Title: "Overview", Icon: "layout-dashboard", URL: "#overview"}
	itemAnalytics = MenuItem{Title: "Analytics", Icon: "pie-chart", URL: "#analytics"}
	itemReports   = MenuItem{Title: "Reports", Icon: "file-text", URL: "#reports"}
	itemSettings  = MenuItem{Title: "Settings", Icon: "settings", URL: "#settings"}
	itemIncidents = MenuItem{Title: "Incidents", Icon: "alert-triangle", URL: RouteIncidents}

	itemPowerPlants = MenuItem{Title: "Power Plants", Icon: "power", URL: RoutePowerPlants}
	itemSubstations = MenuItem{Title: "Substations", Icon: "network", URL: RouteSubstations}
	itemUserMgmt    = MenuItem{Title: "User Management", Icon: "user-cog", URL: RouteUsers}
)

// BuildMenu returns the sidebar for a classification. Every menu ends with a
// group holding the settings item.
func BuildMenu(c Classification) Menu {
	switch c.Tier {
	case TierChairman, TierManagingDirector:
		return Menu{
			{Label: "Executive", Items: items(itemOverview, itemAnalytics, itemReports)},
			{Label: "Management", Items: items(itemPowerPlants, itemSubstations, itemUserMgmt, itemIncidents)},
			{Label: "Operations", Items: items(
				MenuItem{Title: "Generation", Icon: "zap", URL: "#generation"},
				MenuItem{Title: "Transmission", Icon: "activity", URL: "#transmission"},
				MenuItem{Title: "Distribution", Icon: "map-pin", URL: "#distribution"},
				MenuItem{Title: "Finance", Icon: "dollar-sign", URL: "#finance"},
			)},
			{Label: "System", Items: items(itemSettings)},
		}
	case TierDirector:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview, itemAnalytics, itemReports)},
			{Label: "Department", Items: directorDepartmentItems(c.Department)},
			{Label: "System", Items: items(itemSettings)},
		}
	case TierGM, TierDGM, TierAGM:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview, itemAnalytics, itemReports)},
			{Label: "Operations", Items: items(
				MenuItem{Title: "Team Performance", Icon: "users", URL: "#team"},
				MenuItem{Title: "Tasks", Icon: "clipboard-list", URL: "#tasks"},
				MenuItem{Title: "Resources", Icon: "database", URL: "#resources"},
				itemIncidents,
			)},
			{Label: "System", Items: items(itemSettings)},
		}
	case TierChiefEngineer:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview, itemAnalytics)},
			{Label: "Engineering", Items: items(
				itemPowerPlants,
				itemSubstations,
				MenuItem{Title: "Maintenance", Icon: "wrench", URL: "#maintenance"},
				itemIncidents,
			)},
			{Label: "Reports", Items: items(itemReports, itemSettings)},
		}
	case TierEngineer:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview)},
			{Label: "Work", Items: items(
				MenuItem{Title: "My Tasks", Icon: "clipboard-list", URL: "#tasks"},
				MenuItem{Title: "Equipment", Icon: "hard-drive", URL: "#equipment"},
				MenuItem{Title: "Maintenance Log", Icon: "wrench", URL: "#maintenance"},
				itemIncidents,
				itemReports,
			)},
			{Label: "System", Items: items(itemSettings)},
		}
	case TierSystemAnalyst:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview, itemAnalytics)},
			{Label: "Systems", Items: items(
				MenuItem{Title: "System Health", Icon: "activity", URL: "#health"},
				MenuItem{Title: "Database", Icon: "database", URL: "#database"},
				MenuItem{Title: "Security", Icon: "shield", URL: "#security"},
				itemUserMgmt,
				itemReports,
			)},
			{Label: "System", Items: items(itemSettings)},
		}
	case TierTechnician:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview)},
			{Label: "Work", Items: items(
				MenuItem{Title: "Work Orders", Icon: "clipboard-list", URL: "#orders"},
				MenuItem{Title: "Equipment", Icon: "hard-drive", URL: "#equipment"},
				MenuItem{Title: "Safety", Icon: "shield", URL: "#safety"},
				itemIncidents,
			)},
			{Label: "System", Items: items(itemSettings)},
		}
	case TierOperator:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview)},
			{Label: "Operations", Items: items(
				MenuItem{Title: "Live Monitoring", Icon: "gauge", URL: "#monitoring"},
				MenuItem{Title: "Alarms", Icon: "bell", URL: "#alarms"},
				MenuItem{Title: "Shift Log", Icon: "clipboard-list", URL: "#shift-log"},
				itemIncidents,
			)},
			{Label: "System", Items: items(itemSettings)},
		}
	case TierOfficer:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview, itemReports)},
			{Label: "Work", Items: items(
				MenuItem{Title: "Tasks", Icon: "clipboard-list", URL: "#tasks"},
				MenuItem{Title: "Documents", Icon: "file-text", URL: "#documents"},
				MenuItem{Title: "Requests", Icon: "help-circle", URL: "#requests"},
			)},
			{Label: "System", Items: items(itemSettings)},
		}
	default:
		return Menu{
			{Label: "Dashboard", Items: items(itemOverview)},
			{Label: "Services", Items: items(
				MenuItem{Title: "My Bills", Icon: "receipt", URL: "#bills"},
				MenuItem{Title: "Usage History", Icon: "bar-chart-3", URL: "#usage"},
				MenuItem{Title: "Service Requests", Icon: "help-circle", URL: "#requests"},
				MenuItem{Title: "Outage Info", Icon: "alert-triangle", URL: "#outages"},
			)},
			{Label: "Account", Items: items(itemSettings)},
		}
	}
}

// directorDepartmentItems returns an empty, non-nil slice for departments
// without dedicated screens so the group still serializes as [].
func directorDepartmentItems(department string) []MenuItem {
	switch department {
	case "generation", "transmission", "distribution":
		return items(
			itemPowerPlants,
			itemSubstations,
			MenuItem{Title: "Performance", Icon: "trending-up", URL: "#performance"},
			itemIncidents,
		)
	case "finance":
		return items(
			MenuItem{Title: "Billing", Icon: "receipt", URL: "#billing"},
			MenuItem{Title: "Revenue", Icon: "dollar-sign", URL: "#revenue"},
		)
	case "hr":
		return items(
			MenuItem{Title: "Employee Directory", Icon: "users", URL: "#employees"},
			itemUserMgmt,
		)
	default:
		return []MenuItem{}
	}
}

func items(in ...MenuItem) []MenuItem {
	return in
}

// Routes returns the distinct application routes the menu links to, in menu
// order.
func (m Menu) Routes() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, g := range m {
		for _, it := range g.Items {
			if !it.IsRoute() {
				continue
			}
			if _, ok := seen[it.URL]; ok {
				continue
			}
			seen[it.URL] = struct{}{}
			out = append(out, it.URL)
		}
	}
	return out
}

// Links reports whether any item in the menu routes to url.
func (m Menu) Links(url string) bool {
	for _, route := range m.Routes() {
		if route == url {
			return true
		}
	}
	return false
}

// ItemCount returns the total number of items across groups.
func (m Menu) ItemCount() int {
	n := 0
	for _, g := range m {
		n += len(g.Items)
	}
	return n
}

// ActiveItem is a menu item annotated for rendering.
type ActiveItem struct {
	MenuItem
	Route  bool `json:"route"`
	Active bool `json:"active"`
}

// ActiveGroup mirrors MenuGroup with annotated items.
type ActiveGroup struct {
	Label string       `json:"label"`
	Items []ActiveItem `json:"items"`
}

// WithActive annotates items for the sidebar. Only route items can be
// active, and only when their URL equals currentPath exactly.
func (m Menu) WithActive(currentPath string) []ActiveGroup {
	out := make([]ActiveGroup, 0, len(m))
	for _, g := range m {
		ag := ActiveGroup{Label: g.Label, Items: make([]ActiveItem, 0, len(g.Items))}
		for _, it := range g.Items {
			route := it.IsRoute()
			ag.Items = append(ag.Items, ActiveItem{
				MenuItem: it,
				Route:    route,
				Active:   route && it.URL == currentPath,
			})
		}
		out = append(out, ag)
	}
	return out
}
