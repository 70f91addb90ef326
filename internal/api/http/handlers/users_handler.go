package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bpdb/power-portal/internal/api/dto"
	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/repository"
	"github.com/bpdb/power-portal/internal/roles"
	"github.com/bpdb/power-portal/internal/service"
)

// UsersHandler exposes the user management screen.
type UsersHandler struct {
	profiles *service.ProfileService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(profiles *service.ProfileService) *UsersHandler {
	return &UsersHandler{profiles: profiles}
}

// List handles GET /management/users?role=...&department=...&active=true.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := repository.ProfileFilter{
		Active:     parseBoolQuery(c, "active"),
		SearchTerm: c.Query("search"),
		Page:       parsePage(c),
	}
	for _, r := range splitCSV(c.Query("role")) {
		filter.Roles = append(filter.Roles, roles.Role(r))
	}
	for _, d := range splitCSV(c.Query("department")) {
		filter.Departments = append(filter.Departments, domain.Department(d))
	}

	profiles, err := h.profiles.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.ProfilesFromDomain(profiles)))
}

// Get handles GET /management/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	profile, err := h.profiles.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.ProfileFromDomain(profile)))
}

// Update handles PATCH /management/users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.ProfileUpdateRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}

	update := service.ProfileUpdate{
		FullName:       req.FullName,
		Phone:          req.Phone,
		HierarchyLevel: req.HierarchyLevel,
		IsActive:       req.IsActive,
	}
	if req.Role != nil {
		role := roles.Role(*req.Role)
		update.Role = &role
	}
	if req.Department != nil {
		dept := domain.Department(*req.Department)
		update.Department = &dept
	}

	profile, err := h.profiles.Update(c.UserContext(), p.Profile, id, update)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.ProfileFromDomain(profile)))
}
