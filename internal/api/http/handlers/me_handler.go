package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bpdb/power-portal/internal/api/dto"
	"github.com/bpdb/power-portal/internal/service"
)

// MeHandler serves the caller's profile and dashboard shell.
type MeHandler struct {
	navigation *service.NavigationService
}

// NewMeHandler constructs handler.
func NewMeHandler(navigation *service.NavigationService) *MeHandler {
	return &MeHandler{navigation: navigation}
}

// Profile handles GET /me.
func (h *MeHandler) Profile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.ProfileFromDomain(p.Profile)))
}

// Navigation handles GET /me/navigation?path=... and marks the item for path
// as active.
func (h *MeHandler) Navigation(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	return c.JSON(data(h.navigation.ForProfile(p.Profile, c.Query("path"))))
}

// Roles handles GET /roles: every enumerated role with its routing, plus the
// rule table.
func (h *MeHandler) Roles(c *fiber.Ctx) error {
	return c.JSON(data(fiber.Map{
		"roles": h.navigation.Catalog(),
		"rules": h.navigation.Rules(),
	}))
}
