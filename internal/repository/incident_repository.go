package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bpdb/power-portal/internal/domain"
)

// IncidentFilter captures incident search parameters.
type IncidentFilter struct {
	Statuses   []domain.IncidentStatus
	Severities []domain.IncidentSeverity
	ReportedBy *string
	AssignedTo *string
	SearchTerm string
	Page
}

// IncidentRepository encapsulates incident persistence.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	Update(ctx context.Context, incident *domain.Incident) error
	GetByID(ctx context.Context, id string) (*domain.Incident, error)
	List(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error)
}

type incidentRepository struct {
	pool *pgxpool.Pool
}

// NewIncidentRepository instantiates repository.
func NewIncidentRepository(pool *pgxpool.Pool) IncidentRepository {
	return &incidentRepository{pool: pool}
}

const incidentColumns = `id, incident_type, severity, description, location, status,
               reported_by, assigned_to, resolved_at, created_at, updated_at`

func (r *incidentRepository) Create(ctx context.Context, incident *domain.Incident) error {
	const query = `
        INSERT INTO incidents (incident_type, severity, description, location, status, reported_by, assigned_to)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		incident.IncidentType,
		incident.Severity,
		incident.Description,
		incident.Location,
		incident.Status,
		incident.ReportedBy,
		incident.AssignedTo,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
}

func (r *incidentRepository) Update(ctx context.Context, incident *domain.Incident) error {
	const query = `
        UPDATE incidents SET incident_type=$1, severity=$2, description=$3, location=$4,
            status=$5, assigned_to=$6, resolved_at=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		incident.IncidentType,
		incident.Severity,
		incident.Description,
		incident.Location,
		incident.Status,
		incident.AssignedTo,
		incident.ResolvedAt,
		incident.ID,
	).Scan(&incident.UpdatedAt)
	return err
}

func (r *incidentRepository) GetByID(ctx context.Context, id string) (*domain.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id=$1`
	return scanIncident(r.pool.QueryRow(ctx, query, id))
}

func (r *incidentRepository) List(ctx context.Context, filter IncidentFilter) ([]domain.Incident, error) {
	w := newWhere()
	if len(filter.Statuses) > 0 {
		values := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			values[i] = string(s)
		}
		w.in("status", values)
	}
	if len(filter.Severities) > 0 {
		values := make([]string, len(filter.Severities))
		for i, s := range filter.Severities {
			values[i] = string(s)
		}
		w.in("severity", values)
	}
	if filter.ReportedBy != nil {
		w.eq("reported_by", *filter.ReportedBy)
	}
	if filter.AssignedTo != nil {
		w.eq("assigned_to", *filter.AssignedTo)
	}
	w.search(filter.SearchTerm, "incident_type", "description", "location")

	query := w.query(`SELECT `+incidentColumns+` FROM incidents`, "created_at DESC", filter.Page)
	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Incident
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *incident)
	}
	return result, rows.Err()
}

func scanIncident(row pgx.Row) (*domain.Incident, error) {
	var incident domain.Incident
	if err := row.Scan(
		&incident.ID,
		&incident.IncidentType,
		&incident.Severity,
		&incident.Description,
		&incident.Location,
		&incident.Status,
		&incident.ReportedBy,
		&incident.AssignedTo,
		&incident.ResolvedAt,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &incident, nil
}
