package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/bpdb/power-portal/internal/api/dto"
	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/roles"
	"github.com/bpdb/power-portal/internal/service"
)

// AuthHandler exposes sign-up, sign-in and password endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}

	profile, err := h.auth.Register(c.UserContext(), service.RegisterInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		Role:           roles.Role(req.Role),
		Department:     domain.Department(req.Department),
		HierarchyLevel: req.HierarchyLevel,
		EmployeeID:     req.EmployeeID,
		FacilityID:     req.FacilityID,
		FacilityType:   req.FacilityType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(fiber.Map{
		"profile": dto.ProfileFromDomain(profile),
	}))
}

// Login handles POST /auth/login. The response carries the dashboard the
// caller should be sent to and the sidebar for it.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}

	session, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.LoginResponse{
		Profile:    dto.ProfileFromDomain(session.Profile),
		Auth:       dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		Redirect:   session.Redirect,
		Navigation: session.Navigation,
	}))
}

// RequestPasswordReset handles POST /auth/password/reset/request. The reply
// is the same whether or not the email exists.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	if _, err := h.auth.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(data(fiber.Map{"status": "reset requested"}))
}

// ConfirmPasswordReset handles POST /auth/password/reset/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirm
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ConfirmPasswordReset(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(data(fiber.Map{"status": "password updated"}))
}

// ChangePassword handles POST /auth/password/change.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.PasswordChangeRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	if err := h.auth.ChangePassword(c.UserContext(), p.Profile.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(data(fiber.Map{"status": "password updated"}))
}
