// Package roles turns stored organizational role strings into the dashboard a
// user lands on and the sidebar shown on it.
//
// Classification happens once; the route and the menu are both derived from
// the same Classification value, so a dashboard's sidebar always matches the
// dashboard the user was sent to.
package roles

// Navigation is everything the dashboard shell needs for one role.
type Navigation struct {
	Classification Classification   `json:"classification"`
	Target         NavigationTarget `json:"target"`
	Menu           Menu             `json:"menu"`
}

// Navigate classifies role and derives both the route and the menu from that
// single classification.
func Navigate(role string) Navigation {
	return NavigationFor(Classify(role))
}

// NavigationFor derives the route and menu for an existing classification.
func NavigationFor(c Classification) Navigation {
	return Navigation{
		Classification: c,
		Target:         Target(c),
		Menu:           BuildMenu(c),
	}
}
