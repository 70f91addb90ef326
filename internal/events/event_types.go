package events

import (
	"time"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/roles"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventIncidentReported      EventType = "incident_reported"
	EventIncidentStatusChanged EventType = "incident_status_changed"
	EventIncidentAssigned      EventType = "incident_assigned"
	EventProfileRoleChanged    EventType = "profile_role_changed"
	EventServiceRequestFiled   EventType = "service_request_filed"
)

// Actor is the profile that caused the event.
type Actor struct {
	ProfileID string     `json:"profile_id"`
	Role      roles.Role `json:"role"`
}

// ActorFor builds the actor of a profile.
func ActorFor(p *domain.Profile) Actor {
	if p == nil {
		return Actor{}
	}
	return Actor{ProfileID: p.ID, Role: p.Role}
}

// Event represents a domain event emitted by services. SubjectID is the id of
// the incident, profile or service request the event is about.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// IncidentReportedPayload payload.
type IncidentReportedPayload struct {
	IncidentType string                  `json:"incident_type"`
	Severity     domain.IncidentSeverity `json:"severity"`
	Location     *string                 `json:"location,omitempty"`
}

// IncidentStatusChangedPayload payload.
type IncidentStatusChangedPayload struct {
	OldStatus domain.IncidentStatus `json:"old_status"`
	NewStatus domain.IncidentStatus `json:"new_status"`
	Comment   string                `json:"comment,omitempty"`
}

// IncidentAssignedPayload payload.
type IncidentAssignedPayload struct {
	AssigneeID *string `json:"assignee_id,omitempty"`
}

// ProfileRoleChangedPayload payload.
type ProfileRoleChangedPayload struct {
	OldRole  roles.Role `json:"old_role"`
	NewRole  roles.Role `json:"new_role"`
	Redirect string     `json:"redirect"`
}

// ServiceRequestFiledPayload payload.
type ServiceRequestFiledPayload struct {
	RequestType string `json:"request_type"`
	Priority    string `json:"priority"`
}
