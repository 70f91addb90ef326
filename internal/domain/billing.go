package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerBill is one monthly electricity bill.
type CustomerBill struct {
	ID             string
	CustomerID     string
	BillingMonth   string
	ConsumptionKWh decimal.Decimal
	AmountBDT      decimal.Decimal
	DueDate        time.Time
	Paid           bool
	PaidAt         *time.Time
	CreatedAt      time.Time
}

// Overdue reports whether the bill is unpaid past its due date.
func (b *CustomerBill) Overdue(now time.Time) bool {
	return !b.Paid && now.After(b.DueDate)
}

// ServiceRequestStatus enumerates customer request states.
type ServiceRequestStatus string

const (
	ServiceRequestPending    ServiceRequestStatus = "pending"
	ServiceRequestInProgress ServiceRequestStatus = "in_progress"
	ServiceRequestResolved   ServiceRequestStatus = "resolved"
)

// ServiceRequest is a customer-filed request (new connection, meter fault, ...).
type ServiceRequest struct {
	ID          string
	CustomerID  string
	RequestType string
	Description *string
	Priority    string
	Status      ServiceRequestStatus
	AssignedTo  *string
	ResolvedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
