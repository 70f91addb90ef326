package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bpdb/power-portal/internal/api/dto"
	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/service"
)

// IncidentsHandler exposes the incident screen.
type IncidentsHandler struct {
	incidents *service.IncidentService
}

// NewIncidentsHandler constructs handler.
func NewIncidentsHandler(incidents *service.IncidentService) *IncidentsHandler {
	return &IncidentsHandler{incidents: incidents}
}

// List handles GET /management/incidents?status=open,investigating&severity=high.
func (h *IncidentsHandler) List(c *fiber.Ctx) error {
	filter := repository.IncidentFilter{
		SearchTerm: c.Query("search"),
		Page:       parsePage(c),
	}
	for _, s := range splitCSV(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.IncidentStatus(s))
	}
	for _, s := range splitCSV(c.Query("severity")) {
		filter.Severities = append(filter.Severities, domain.IncidentSeverity(s))
	}
	if assignee := c.Query("assigned_to"); assignee != "" {
		filter.AssignedTo = &assignee
	}

	incidents, err := h.incidents.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.IncidentsFromDomain(incidents)))
}

// Get handles GET /management/incidents/:id.
func (h *IncidentsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	incident, err := h.incidents.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.IncidentFromDomain(incident)))
}

// Report handles POST /management/incidents.
func (h *IncidentsHandler) Report(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.IncidentReportRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	incident, err := h.incidents.Report(c.UserContext(), p.Profile, service.IncidentInput{
		IncidentType: req.IncidentType,
		Severity:     domain.IncidentSeverity(req.Severity),
		Description:  req.Description,
		Location:     req.Location,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.IncidentFromDomain(incident)))
}

// UpdateStatus handles PATCH /management/incidents/:id/status.
func (h *IncidentsHandler) UpdateStatus(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.IncidentStatusRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	incident, err := h.incidents.UpdateStatus(c.UserContext(), p.Profile, id, domain.IncidentStatus(req.Status), req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.IncidentFromDomain(incident)))
}

// Assign handles PATCH /management/incidents/:id/assign.
func (h *IncidentsHandler) Assign(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.IncidentAssignRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	incident, err := h.incidents.Assign(c.UserContext(), p.Profile, id, req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.IncidentFromDomain(incident)))
}
