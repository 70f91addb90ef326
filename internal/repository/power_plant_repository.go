package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bpdb/power-portal/internal/domain"
)

// AssetFilter narrows plant and substation listings.
type AssetFilter struct {
	Active     *bool
	SearchTerm string
	Page
}

// PowerPlantRepository manages generating facilities.
type PowerPlantRepository interface {
	Create(ctx context.Context, plant *domain.PowerPlant) error
	Update(ctx context.Context, plant *domain.PowerPlant) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.PowerPlant, error)
	List(ctx context.Context, filter AssetFilter) ([]domain.PowerPlant, error)
}

type powerPlantRepository struct {
	pool *pgxpool.Pool
}

// NewPowerPlantRepository builds the repository.
func NewPowerPlantRepository(pool *pgxpool.Pool) PowerPlantRepository {
	return &powerPlantRepository{pool: pool}
}

func (r *powerPlantRepository) Create(ctx context.Context, plant *domain.PowerPlant) error {
	const query = `
        INSERT INTO power_plants (name, capacity_mw, fuel_type, location, is_active)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		plant.Name,
		plant.CapacityMW,
		plant.FuelType,
		plant.Location,
		plant.IsActive,
	).Scan(&plant.ID, &plant.CreatedAt)
}

func (r *powerPlantRepository) Update(ctx context.Context, plant *domain.PowerPlant) error {
	const query = `
        UPDATE power_plants SET name=$1, capacity_mw=$2, fuel_type=$3, location=$4, is_active=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		plant.Name,
		plant.CapacityMW,
		plant.FuelType,
		plant.Location,
		plant.IsActive,
		plant.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *powerPlantRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM power_plants WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *powerPlantRepository) GetByID(ctx context.Context, id string) (*domain.PowerPlant, error) {
	const query = `
        SELECT id, name, capacity_mw, fuel_type, location, is_active, created_at
        FROM power_plants WHERE id=$1`
	var plant domain.PowerPlant
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&plant.ID,
		&plant.Name,
		&plant.CapacityMW,
		&plant.FuelType,
		&plant.Location,
		&plant.IsActive,
		&plant.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &plant, nil
}

func (r *powerPlantRepository) List(ctx context.Context, filter AssetFilter) ([]domain.PowerPlant, error) {
	w := newWhere()
	if filter.Active != nil {
		w.eq("is_active", *filter.Active)
	}
	w.search(filter.SearchTerm, "name", "location")

	query := w.query(`SELECT id, name, capacity_mw, fuel_type, location, is_active, created_at FROM power_plants`,
		"name ASC", filter.Page)
	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PowerPlant
	for rows.Next() {
		var plant domain.PowerPlant
		if err := rows.Scan(&plant.ID, &plant.Name, &plant.CapacityMW, &plant.FuelType, &plant.Location, &plant.IsActive, &plant.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, plant)
	}
	return result, rows.Err()
}
