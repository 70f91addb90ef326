package roles

// Tier is the coarse organizational level selecting a dashboard.
type Tier string

const (
	TierChairman         Tier = "CHAIRMAN"
	TierManagingDirector Tier = "MANAGING_DIRECTOR"
	TierDirector         Tier = "DIRECTOR"
	TierGM               Tier = "GM"
	TierDGM              Tier = "DGM"
	TierAGM              Tier = "AGM"
	TierChiefEngineer    Tier = "CHIEF_ENGINEER"
	TierEngineer         Tier = "ENGINEER"
	TierSystemAnalyst    Tier = "SYSTEM_ANALYST"
	TierTechnician       Tier = "TECHNICIAN"
	TierOperator         Tier = "OPERATOR"
	TierOfficer          Tier = "OFFICER"
	TierCustomer         Tier = "CUSTOMER"
)

// allTiers is ordered from the top of the hierarchy down.
var allTiers = []Tier{
	TierChairman,
	TierManagingDirector,
	TierDirector,
	TierGM,
	TierDGM,
	TierAGM,
	TierChiefEngineer,
	TierEngineer,
	TierSystemAnalyst,
	TierTechnician,
	TierOperator,
	TierOfficer,
	TierCustomer,
}

// AllTiers returns every tier, highest first.
func AllTiers() []Tier {
	out := make([]Tier, len(allTiers))
	copy(out, allTiers)
	return out
}

// Rank returns the position of t in the hierarchy; 0 is Chairman.
// Unknown tiers rank below Customer.
func (t Tier) Rank() int {
	for i, candidate := range allTiers {
		if candidate == t {
			return i
		}
	}
	return len(allTiers)
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	return t.Rank() < len(allTiers)
}

// Executive reports whether t sits at the Chairman or Managing Director level.
func (t Tier) Executive() bool {
	return t == TierChairman || t == TierManagingDirector
}

// Manager reports whether t is one of the GM/DGM/AGM tiers.
func (t Tier) Manager() bool {
	return t == TierGM || t == TierDGM || t == TierAGM
}

func (t Tier) String() string {
	return string(t)
}
