package roles

import "strings"

// Classification is the structured reading of a role string.
type Classification struct {
	Tier Tier `json:"tier"`
	// Department holds the department, specialization or operator type token,
	// lowercased. It is a routing key, not a reference to the formal
	// department enumeration.
	Department string `json:"department,omitempty"`
	RawRole    string `json:"role"`
}

// RuleInfo describes one classification rule for diagnostics.
type RuleInfo struct {
	Name string `json:"name"`
	Tier Tier   `json:"tier"`
}

type rule struct {
	name    string
	tier    Tier
	match   func(role string) bool
	extract func(role string) string
}

// rules are evaluated in order and the first match wins. Several predicates
// overlap ("Chief Engineer" contains "Engineer", "Assistant Engineer"
// contains "Assistant"), so reordering changes results.
var rules = []rule{
	{name: "chairman", tier: TierChairman, match: equals("Chairman")},
	{name: "managing-director", tier: TierManagingDirector, match: equals("Managing Director")},
	{name: "director", tier: TierDirector, match: contains("Director"), extract: parenthetical},
	{name: "gm", tier: TierGM, match: hasPrefix("GM "), extract: stripPrefix("GM ")},
	{name: "dgm", tier: TierDGM, match: hasPrefix("DGM "), extract: stripPrefix("DGM ")},
	{name: "agm", tier: TierAGM, match: hasPrefix("AGM "), extract: stripPrefix("AGM ")},
	{name: "chief-engineer", tier: TierChiefEngineer, match: equals("Chief Engineer")},
	{name: "engineer", tier: TierEngineer, match: contains("Engineer"), extract: engineerSpecialization},
	{name: "system-analyst", tier: TierSystemAnalyst, match: equals("System Analyst")},
	{name: "technician", tier: TierTechnician, match: containsAny("Technician", "Assistant"), extract: technicianSpecialization},
	{name: "operator", tier: TierOperator, match: contains("Operator"), extract: operatorType},
	{name: "officer", tier: TierOfficer, match: contains("Officer"), extract: officerDepartment},
}

// Classify maps a role string to exactly one tier. Strings no rule
// recognizes, including "Customer", fall through to TierCustomer.
func Classify(role string) Classification {
	for _, r := range rules {
		if !r.match(role) {
			continue
		}
		c := Classification{Tier: r.tier, RawRole: role}
		if r.extract != nil {
			c.Department = r.extract(role)
		}
		return c
	}
	return Classification{Tier: TierCustomer, RawRole: role}
}

// Rules lists the classification rules in evaluation order. The implicit
// Customer fallback is reported last.
func Rules() []RuleInfo {
	out := make([]RuleInfo, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, RuleInfo{Name: r.name, Tier: r.tier})
	}
	return append(out, RuleInfo{Name: "customer", Tier: TierCustomer})
}

// MatchedRule returns the name of the rule that classifies role.
func MatchedRule(role string) string {
	for _, r := range rules {
		if r.match(role) {
			return r.name
		}
	}
	return "customer"
}

func equals(want string) func(string) bool {
	return func(role string) bool { return role == want }
}

func contains(sub string) func(string) bool {
	return func(role string) bool { return strings.Contains(role, sub) }
}

func containsAny(subs ...string) func(string) bool {
	return func(role string) bool {
		for _, sub := range subs {
			if strings.Contains(role, sub) {
				return true
			}
		}
		return false
	}
}

func hasPrefix(prefix string) func(string) bool {
	return func(role string) bool { return strings.HasPrefix(role, prefix) }
}

func stripPrefix(prefix string) func(string) string {
	return func(role string) string {
		return strings.ToLower(strings.TrimPrefix(role, prefix))
	}
}

// parenthetical returns the lowercased text between the first "(" and the
// first ")" that follows it.
func parenthetical(role string) string {
	open := strings.Index(role, "(")
	if open < 0 {
		return ""
	}
	rest := role[open+1:]
	end := strings.Index(rest, ")")
	if end < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(rest[:end]))
}

type keyword struct {
	needle string
	token  string
}

func lookup(text string, table []keyword, fallback string) string {
	for _, kw := range table {
		if strings.Contains(text, kw.needle) {
			return kw.token
		}
	}
	return fallback
}

var engineerKeywords = []keyword{
	{"electrical", "electrical"},
	{"mechanical", "mechanical"},
	{"civil", "civil"},
	{"control", "control"},
}

func engineerSpecialization(role string) string {
	return lookup(parenthetical(role), engineerKeywords, "general")
}

func technicianSpecialization(role string) string {
	return lookup(parenthetical(role), engineerKeywords[:2], "electrical")
}

var operatorKeywords = []keyword{
	{"Plant", "plant"},
	{"Control Room", "control-room"},
	{"Substation", "substation"},
}

func operatorType(role string) string {
	return lookup(role, operatorKeywords, "general")
}

func officerDepartment(role string) string {
	return strings.ToLower(strings.TrimSuffix(role, " Officer"))
}
