package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bpdb/power-portal/internal/domain"
)

// BillingRepository manages customer bills and service requests.
type BillingRepository interface {
	ListBills(ctx context.Context, customerID string, page Page) ([]domain.CustomerBill, error)
	GetBill(ctx context.Context, id string) (*domain.CustomerBill, error)
	MarkBillPaid(ctx context.Context, bill *domain.CustomerBill) error
	CreateServiceRequest(ctx context.Context, req *domain.ServiceRequest) error
	ListServiceRequests(ctx context.Context, customerID string, page Page) ([]domain.ServiceRequest, error)
}

type billingRepository struct {
	pool *pgxpool.Pool
}

// NewBillingRepository builds the repository.
func NewBillingRepository(pool *pgxpool.Pool) BillingRepository {
	return &billingRepository{pool: pool}
}

const billColumns = `id, customer_id, billing_month, consumption_kwh, amount_bdt, due_date, paid, paid_at, created_at`

func (r *billingRepository) ListBills(ctx context.Context, customerID string, page Page) ([]domain.CustomerBill, error) {
	w := newWhere()
	w.eq("customer_id", customerID)
	query := w.query(`SELECT `+billColumns+` FROM customer_bills`, "due_date DESC", page)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomerBill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *bill)
	}
	return result, rows.Err()
}

func (r *billingRepository) GetBill(ctx context.Context, id string) (*domain.CustomerBill, error) {
	return scanBill(r.pool.QueryRow(ctx, `SELECT `+billColumns+` FROM customer_bills WHERE id=$1`, id))
}

// MarkBillPaid only flips unpaid bills; a second payment attempt finds no row.
func (r *billingRepository) MarkBillPaid(ctx context.Context, bill *domain.CustomerBill) error {
	const query = `
        UPDATE customer_bills SET paid=TRUE, paid_at=NOW()
        WHERE id=$1 AND paid=FALSE
        RETURNING paid, paid_at`
	return r.pool.QueryRow(ctx, query, bill.ID).Scan(&bill.Paid, &bill.PaidAt)
}

func (r *billingRepository) CreateServiceRequest(ctx context.Context, req *domain.ServiceRequest) error {
	const query = `
        INSERT INTO service_requests (customer_id, request_type, description, priority, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		req.CustomerID,
		req.RequestType,
		req.Description,
		req.Priority,
		req.Status,
	).Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
}

func (r *billingRepository) ListServiceRequests(ctx context.Context, customerID string, page Page) ([]domain.ServiceRequest, error) {
	w := newWhere()
	w.eq("customer_id", customerID)
	query := w.query(`SELECT id, customer_id, request_type, description, priority, status,
               assigned_to, resolved_at, created_at, updated_at FROM service_requests`, "created_at DESC", page)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceRequest
	for rows.Next() {
		var sr domain.ServiceRequest
		if err := rows.Scan(
			&sr.ID,
			&sr.CustomerID,
			&sr.RequestType,
			&sr.Description,
			&sr.Priority,
			&sr.Status,
			&sr.AssignedTo,
			&sr.ResolvedAt,
			&sr.CreatedAt,
			&sr.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, sr)
	}
	return result, rows.Err()
}

func scanBill(row pgx.Row) (*domain.CustomerBill, error) {
	var bill domain.CustomerBill
	if err := row.Scan(
		&bill.ID,
		&bill.CustomerID,
		&bill.BillingMonth,
		&bill.ConsumptionKWh,
		&bill.AmountBDT,
		&bill.DueDate,
		&bill.Paid,
		&bill.PaidAt,
		&bill.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &bill, nil
}
