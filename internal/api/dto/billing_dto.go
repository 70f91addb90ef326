package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bpdb/power-portal/internal/domain"
)

// PayBillRequest settles a bill.
type PayBillRequest struct {
	AmountBDT decimal.Decimal `json:"amount_bdt"`
}

// ServiceRequestCreate files a customer request.
type ServiceRequestCreate struct {
	RequestType string  `json:"request_type" validate:"required,max=120"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low normal high urgent LOW NORMAL HIGH URGENT"`
}

// BillResponse view. Money is rendered with two decimals.
type BillResponse struct {
	ID             string     `json:"id"`
	BillingMonth   string     `json:"billing_month"`
	ConsumptionKWh string     `json:"consumption_kwh"`
	AmountBDT      string     `json:"amount_bdt"`
	DueDate        string     `json:"due_date"`
	Paid           bool       `json:"paid"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	Overdue        bool       `json:"overdue"`
}

// BillFromDomain maps a bill as of now.
func BillFromDomain(b *domain.CustomerBill, now time.Time) BillResponse {
	return BillResponse{
		ID:             b.ID,
		BillingMonth:   b.BillingMonth,
		ConsumptionKWh: b.ConsumptionKWh.String(),
		AmountBDT:      b.AmountBDT.StringFixed(2),
		DueDate:        b.DueDate.Format(time.DateOnly),
		Paid:           b.Paid,
		PaidAt:         b.PaidAt,
		Overdue:        b.Overdue(now),
	}
}

// BillsFromDomain maps a slice.
func BillsFromDomain(in []domain.CustomerBill, now time.Time) []BillResponse {
	out := make([]BillResponse, len(in))
	for i := range in {
		out[i] = BillFromDomain(&in[i], now)
	}
	return out
}

// ServiceRequestResponse view.
type ServiceRequestResponse struct {
	ID          string                      `json:"id"`
	RequestType string                      `json:"request_type"`
	Description *string                     `json:"description,omitempty"`
	Priority    string                      `json:"priority"`
	Status      domain.ServiceRequestStatus `json:"status"`
	AssignedTo  *string                     `json:"assigned_to,omitempty"`
	ResolvedAt  *time.Time                  `json:"resolved_at,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// ServiceRequestFromDomain maps a request.
func ServiceRequestFromDomain(r *domain.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		ID:          r.ID,
		RequestType: r.RequestType,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		AssignedTo:  r.AssignedTo,
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// ServiceRequestsFromDomain maps a slice.
func ServiceRequestsFromDomain(in []domain.ServiceRequest) []ServiceRequestResponse {
	out := make([]ServiceRequestResponse, len(in))
	for i := range in {
		out[i] = ServiceRequestFromDomain(&in[i])
	}
	return out
}
