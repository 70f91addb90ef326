package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bpdb/power-portal/internal/domain"
)

// SubstationRepository manages substations.
type SubstationRepository interface {
	Create(ctx context.Context, sub *domain.Substation) error
	Update(ctx context.Context, sub *domain.Substation) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Substation, error)
	List(ctx context.Context, filter AssetFilter) ([]domain.Substation, error)
}

type substationRepository struct {
	pool *pgxpool.Pool
}

// NewSubstationRepository builds the repository.
func NewSubstationRepository(pool *pgxpool.Pool) SubstationRepository {
	return &substationRepository{pool: pool}
}

func (r *substationRepository) Create(ctx context.Context, sub *domain.Substation) error {
	const query = `
        INSERT INTO substations (name, capacity_mva, voltage_level, location, is_active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		sub.Name,
		sub.CapacityMVA,
		sub.VoltageLevel,
		sub.Location,
		sub.IsActive,
	).Scan(&sub.ID, &sub.CreatedAt)
}

func (r *substationRepository) Update(ctx context.Context, sub *domain.Substation) error {
	const query = `
        UPDATE substations SET name=$1, capacity_mva=$2, voltage_level=$3, location=$4, is_active=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		sub.Name,
		sub.CapacityMVA,
		sub.VoltageLevel,
		sub.Location,
		sub.IsActive,
		sub.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *substationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM substations WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *substationRepository) GetByID(ctx context.Context, id string) (*domain.Substation, error) {
	const query = `
        SELECT id, name, capacity_mva, voltage_level, location, is_active, created_at
        FROM substations WHERE id=$1`
	var sub domain.Substation
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&sub.ID,
		&sub.Name,
		&sub.CapacityMVA,
		&sub.VoltageLevel,
		&sub.Location,
		&sub.IsActive,
		&sub.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *substationRepository) List(ctx context.Context, filter AssetFilter) ([]domain.Substation, error) {
	w := newWhere()
	if filter.Active != nil {
		w.eq("is_active", *filter.Active)
	}
	w.search(filter.SearchTerm, "name", "location")

	query := w.query(`SELECT id, name, capacity_mva, voltage_level, location, is_active, created_at FROM substations`,
		"name ASC", filter.Page)
	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Substation
	for rows.Next() {
		var sub domain.Substation
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.CapacityMVA, &sub.VoltageLevel, &sub.Location, &sub.IsActive, &sub.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, sub)
	}
	return result, rows.Err()
}
