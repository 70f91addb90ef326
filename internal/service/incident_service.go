package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/events"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/roles"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// IncidentInput carries the fields of a new incident report.
type IncidentInput struct {
	IncidentType string
	Severity     domain.IncidentSeverity
	Description  string
	Location     *string
}

// IncidentService handles incident reporting and triage.
type IncidentService struct {
	incidents  repository.IncidentRepository
	profiles   repository.ProfileRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// IncidentDependencies bundles collaborators.
type IncidentDependencies struct {
	IncidentRepo repository.IncidentRepository
	ProfileRepo  repository.ProfileRepository
	Dispatcher   events.Dispatcher
}

// NewIncidentService creates the service.
func NewIncidentService(deps IncidentDependencies) *IncidentService {
	return &IncidentService{
		incidents:  deps.IncidentRepo,
		profiles:   deps.ProfileRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// List returns incidents matching filter.
func (s *IncidentService) List(ctx context.Context, filter repository.IncidentFilter) ([]domain.Incident, error) {
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": st})
		}
	}
	for _, sev := range filter.Severities {
		if !sev.Valid() {
			return nil, apperrors.NewValidationError("unknown severity", map[string]any{"severity": sev})
		}
	}
	incidents, err := s.incidents.List(ctx, filter)
	return incidents, apperrors.MapError(err)
}

// Get fetches one incident.
func (s *IncidentService) Get(ctx context.Context, id string) (*domain.Incident, error) {
	incident, err := s.incidents.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "incident", id)
	}
	return incident, nil
}

// Report files a new open incident on behalf of reporter.
func (s *IncidentService) Report(ctx context.Context, reporter *domain.Profile, in IncidentInput) (*domain.Incident, error) {
	if reporter == nil {
		return nil, apperrors.NewUnauthorized("reporter required")
	}
	if !in.Severity.Valid() {
		return nil, apperrors.NewValidationError("unknown severity", map[string]any{"severity": in.Severity})
	}
	incident := &domain.Incident{
		IncidentType: strings.TrimSpace(in.IncidentType),
		Severity:     in.Severity,
		Description:  strings.TrimSpace(in.Description),
		Location:     in.Location,
		Status:       domain.IncidentOpen,
		ReportedBy:   reporter.ID,
	}
	if incident.IncidentType == "" || incident.Description == "" {
		return nil, apperrors.NewValidationError("incident_type and description are required", nil)
	}
	if err := s.incidents.Create(ctx, incident); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventIncidentReported,
		SubjectID: incident.ID,
		Actor:     events.ActorFor(reporter),
		Payload: events.IncidentReportedPayload{
			IncidentType: incident.IncidentType,
			Severity:     incident.Severity,
			Location:     incident.Location,
		},
	})
	return incident, nil
}

// UpdateStatus moves an incident along its lifecycle. Resolving stamps
// resolved_at; reopening an investigation clears it.
func (s *IncidentService) UpdateStatus(ctx context.Context, actor *domain.Profile, id string, next domain.IncidentStatus, comment string) (*domain.Incident, error) {
	if !next.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": next})
	}
	incident, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !incident.Status.CanTransitionTo(next) {
		return nil, apperrors.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("cannot move incident from %s to %s", incident.Status, next),
			http.StatusConflict,
			map[string]any{"from": incident.Status, "to": next})
	}

	old := incident.Status
	switch next {
	case domain.IncidentResolved, domain.IncidentClosed:
		if incident.ResolvedAt == nil {
			now := s.now()
			incident.ResolvedAt = &now
		}
	default:
		incident.ResolvedAt = nil
	}
	incident.Status = next
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, notFoundOr(err, "incident", id)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventIncidentStatusChanged,
		SubjectID: incident.ID,
		Actor:     events.ActorFor(actor),
		Payload: events.IncidentStatusChangedPayload{
			OldStatus: old,
			NewStatus: next,
			Comment:   comment,
		},
	})
	return incident, nil
}

// Assign hands the incident to a staff profile, or unassigns it when
// assigneeID is nil. Customers cannot be assignees.
func (s *IncidentService) Assign(ctx context.Context, actor *domain.Profile, id string, assigneeID *string) (*domain.Incident, error) {
	incident, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if assigneeID != nil {
		assignee, err := s.profiles.GetByID(ctx, *assigneeID)
		if err != nil {
			return nil, notFoundOr(err, "assignee", *assigneeID)
		}
		if !assignee.IsActive || assignee.Classification().Tier == roles.TierCustomer {
			return nil, apperrors.NewValidationError("assignee must be an active staff member",
				map[string]any{"assignee_id": *assigneeID})
		}
	}
	incident.AssignedTo = assigneeID
	if err := s.incidents.Update(ctx, incident); err != nil {
		return nil, notFoundOr(err, "incident", id)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventIncidentAssigned,
		SubjectID: incident.ID,
		Actor:     events.ActorFor(actor),
		Payload:   events.IncidentAssignedPayload{AssigneeID: assigneeID},
	})
	return incident, nil
}
