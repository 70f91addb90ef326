package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/events"
	"github.com/bpdb/power-portal/internal/repository"
	apperrors "github.com/bpdb/power-portal/pkg/util"
)

// Service request priorities accepted from customers.
var serviceRequestPriorities = map[string]struct{}{
	"low":    {},
	"normal": {},
	"high":   {},
	"urgent": {},
}

const defaultServiceRequestPriority = "normal"

// BillSummary totals the customer's unpaid bills.
type BillSummary struct {
	Outstanding decimal.Decimal `json:"outstanding_bdt"`
	UnpaidCount int             `json:"unpaid_count"`
	Overdue     int             `json:"overdue_count"`
}

// ServiceRequestInput carries a new customer request.
type ServiceRequestInput struct {
	RequestType string
	Description *string
	Priority    string
}

// BillingService backs the customer dashboard: bills and service requests.
type BillingService struct {
	billing    repository.BillingRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewBillingService creates the service.
func NewBillingService(billing repository.BillingRepository, dispatcher events.Dispatcher) *BillingService {
	return &BillingService{billing: billing, dispatcher: dispatcher, now: time.Now}
}

// ListBills returns the customer's bills, newest due date first.
func (s *BillingService) ListBills(ctx context.Context, customerID string, page repository.Page) ([]domain.CustomerBill, error) {
	bills, err := s.billing.ListBills(ctx, customerID, page)
	return bills, apperrors.MapError(err)
}

// Summarize totals the unpaid amount of bills as of now.
func (s *BillingService) Summarize(bills []domain.CustomerBill) BillSummary {
	now := s.now()
	summary := BillSummary{Outstanding: decimal.Zero}
	for i := range bills {
		if bills[i].Paid {
			continue
		}
		summary.UnpaidCount++
		summary.Outstanding = summary.Outstanding.Add(bills[i].AmountBDT)
		if bills[i].Overdue(now) {
			summary.Overdue++
		}
	}
	return summary
}

// PayBill settles a bill in full. The amount must match the bill exactly.
func (s *BillingService) PayBill(ctx context.Context, customerID, billID string, amount decimal.Decimal) (*domain.CustomerBill, error) {
	bill, err := s.billing.GetBill(ctx, billID)
	if err != nil {
		return nil, notFoundOr(err, "bill", billID)
	}
	if bill.CustomerID != customerID {
		return nil, apperrors.NewNotFound("bill", map[string]any{"id": billID})
	}
	if bill.Paid {
		return nil, apperrors.NewConflict("bill already paid", map[string]any{"id": billID})
	}
	if !amount.Equal(bill.AmountBDT) {
		return nil, apperrors.NewDomainError("AMOUNT_MISMATCH", "payment must equal the billed amount", http.StatusUnprocessableEntity,
			map[string]any{"billed": bill.AmountBDT.StringFixed(2), "paid": amount.StringFixed(2)})
	}

	if err := s.billing.MarkBillPaid(ctx, bill); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewConflict("bill already paid", map[string]any{"id": billID})
		}
		return nil, apperrors.MapError(err)
	}
	return bill, nil
}

// ListServiceRequests returns the customer's requests.
func (s *BillingService) ListServiceRequests(ctx context.Context, customerID string, page repository.Page) ([]domain.ServiceRequest, error) {
	reqs, err := s.billing.ListServiceRequests(ctx, customerID, page)
	return reqs, apperrors.MapError(err)
}

// FileServiceRequest records a pending request for customer.
func (s *BillingService) FileServiceRequest(ctx context.Context, customer *domain.Profile, in ServiceRequestInput) (*domain.ServiceRequest, error) {
	requestType := strings.TrimSpace(in.RequestType)
	if requestType == "" {
		return nil, apperrors.NewValidationError("request_type is required", nil)
	}
	priority := strings.ToLower(strings.TrimSpace(in.Priority))
	if priority == "" {
		priority = defaultServiceRequestPriority
	}
	if _, ok := serviceRequestPriorities[priority]; !ok {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": in.Priority})
	}

	req := &domain.ServiceRequest{
		CustomerID:  customer.ID,
		RequestType: requestType,
		Description: in.Description,
		Priority:    priority,
		Status:      domain.ServiceRequestPending,
	}
	if err := s.billing.CreateServiceRequest(ctx, req); err != nil {
		return nil, apperrors.MapError(err)
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventServiceRequestFiled,
		SubjectID: req.ID,
		Actor:     events.ActorFor(customer),
		Payload: events.ServiceRequestFiledPayload{
			RequestType: req.RequestType,
			Priority:    req.Priority,
		},
	})
	return req, nil
}
