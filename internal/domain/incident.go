package domain

import "time"

// IncidentSeverity grades operational impact.
type IncidentSeverity string

const (
	SeverityLow      IncidentSeverity = "low"
	SeverityMedium   IncidentSeverity = "medium"
	SeverityHigh     IncidentSeverity = "high"
	SeverityCritical IncidentSeverity = "critical"
)

// Valid reports whether s is a known severity.
func (s IncidentSeverity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// IncidentStatus enumerates incident lifecycle states.
type IncidentStatus string

const (
	IncidentOpen          IncidentStatus = "open"
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentResolved      IncidentStatus = "resolved"
	IncidentClosed        IncidentStatus = "closed"
)

var incidentTransitions = map[IncidentStatus][]IncidentStatus{
	IncidentOpen:          {IncidentInvestigating, IncidentResolved, IncidentClosed},
	IncidentInvestigating: {IncidentOpen, IncidentResolved, IncidentClosed},
	IncidentResolved:      {IncidentInvestigating, IncidentClosed},
	IncidentClosed:        {},
}

// Valid reports whether s is a known status.
func (s IncidentStatus) Valid() bool {
	_, ok := incidentTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is allowed.
func (s IncidentStatus) CanTransitionTo(next IncidentStatus) bool {
	for _, allowed := range incidentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Incident is an operational event reported by staff.
type Incident struct {
	ID           string
	IncidentType string
	Severity     IncidentSeverity
	Description  string
	Location     *string
	Status       IncidentStatus
	ReportedBy   string
	AssignedTo   *string
	ResolvedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
