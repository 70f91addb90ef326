package dto

import (
	"time"

	"github.com/bpdb/power-portal/internal/domain"
)

// IncidentReportRequest files a new incident.
type IncidentReportRequest struct {
	IncidentType string  `json:"incident_type" validate:"required,max=120"`
	Severity     string  `json:"severity" validate:"required,severity"`
	Description  string  `json:"description" validate:"required,max=4000"`
	Location     *string `json:"location" validate:"omitempty,max=200"`
}

// IncidentStatusRequest moves an incident.
type IncidentStatusRequest struct {
	Status  string `json:"status" validate:"required,incident_status"`
	Comment string `json:"comment" validate:"max=2000"`
}

// IncidentAssignRequest sets or clears the assignee.
type IncidentAssignRequest struct {
	AssigneeID *string `json:"assignee_id" validate:"omitempty,uuid"`
}

// IncidentResponse view.
type IncidentResponse struct {
	ID           string                  `json:"id"`
	IncidentType string                  `json:"incident_type"`
	Severity     domain.IncidentSeverity `json:"severity"`
	Description  string                  `json:"description"`
	Location     *string                 `json:"location,omitempty"`
	Status       domain.IncidentStatus   `json:"status"`
	ReportedBy   string                  `json:"reported_by"`
	AssignedTo   *string                 `json:"assigned_to,omitempty"`
	ResolvedAt   *time.Time              `json:"resolved_at,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// IncidentFromDomain maps an incident.
func IncidentFromDomain(i *domain.Incident) IncidentResponse {
	return IncidentResponse{
		ID:           i.ID,
		IncidentType: i.IncidentType,
		Severity:     i.Severity,
		Description:  i.Description,
		Location:     i.Location,
		Status:       i.Status,
		ReportedBy:   i.ReportedBy,
		AssignedTo:   i.AssignedTo,
		ResolvedAt:   i.ResolvedAt,
		CreatedAt:    i.CreatedAt,
		UpdatedAt:    i.UpdatedAt,
	}
}

// IncidentsFromDomain maps a slice.
func IncidentsFromDomain(in []domain.Incident) []IncidentResponse {
	out := make([]IncidentResponse, len(in))
	for i := range in {
		out[i] = IncidentFromDomain(&in[i])
	}
	return out
}
