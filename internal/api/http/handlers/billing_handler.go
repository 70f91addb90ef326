package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bpdb/power-portal/internal/api/dto"
	"github.com/bpdb/power-portal/internal/service"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// BillingHandler exposes the customer dashboard services.
type BillingHandler struct {
	billing *service.BillingService
}

// NewBillingHandler constructs handler.
func NewBillingHandler(billing *service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

// ListBills handles GET /me/bills.
func (h *BillingHandler) ListBills(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	bills, err := h.billing.ListBills(c.UserContext(), p.Profile.ID, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(data(fiber.Map{
		"bills":   dto.BillsFromDomain(bills, time.Now()),
		"summary": h.billing.Summarize(bills),
	}))
}

// PayBill handles POST /me/bills/:id/pay.
func (h *BillingHandler) PayBill(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var req dto.PayBillRequest
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	if !req.AmountBDT.IsPositive() {
		return apperrors.NewValidationError("amount_bdt must be positive", map[string]any{"amount_bdt": req.AmountBDT.String()})
	}

	bill, err := h.billing.PayBill(c.UserContext(), p.Profile.ID, id, req.AmountBDT)
	if err != nil {
		return err
	}
	return c.JSON(data(dto.BillFromDomain(bill, time.Now())))
}

// ListServiceRequests handles GET /me/service-requests.
func (h *BillingHandler) ListServiceRequests(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	reqs, err := h.billing.ListServiceRequests(c.UserContext(), p.Profile.ID, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(data(dto.ServiceRequestsFromDomain(reqs)))
}

// FileServiceRequest handles POST /me/service-requests.
func (h *BillingHandler) FileServiceRequest(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.ServiceRequestCreate
	if err := dto.Bind(c, &req); err != nil {
		return err
	}
	created, err := h.billing.FileServiceRequest(c.UserContext(), p.Profile, service.ServiceRequestInput{
		RequestType: req.RequestType,
		Description: req.Description,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(data(dto.ServiceRequestFromDomain(created)))
}
