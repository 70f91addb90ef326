package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bpdb/power-portal/internal/domain"
	"github.com/bpdb/power-portal/internal/roles"
)

// ProfileFilter narrows profile listings.
type ProfileFilter struct {
	Roles       []roles.Role
	Departments []domain.Department
	Active      *bool
	SearchTerm  string
	Page
}

// ProfileRepository defines persistence access for portal accounts.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	List(ctx context.Context, filter ProfileFilter) ([]domain.Profile, error)
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

const profileColumns = `id, email, full_name, phone, role, department, hierarchy_level,
               employee_id, facility_id, facility_type, avatar_url, is_active, password_hash,
               created_at, updated_at`

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	const query = `
        INSERT INTO profiles (email, full_name, phone, role, department, hierarchy_level,
                              employee_id, facility_id, facility_type, is_active, password_hash)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		p.Email,
		p.FullName,
		p.Phone,
		p.Role,
		p.Department,
		p.HierarchyLevel,
		p.EmployeeID,
		p.FacilityID,
		p.FacilityType,
		p.IsActive,
		p.PasswordHash,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	const query = `
        UPDATE profiles SET full_name=$1, phone=$2, role=$3, department=$4, hierarchy_level=$5,
            employee_id=$6, facility_id=$7, facility_type=$8, avatar_url=$9, is_active=$10,
            password_hash=$11, updated_at=NOW()
        WHERE id=$12`

	cmd, err := r.pool.Exec(ctx, query,
		p.FullName,
		p.Phone,
		p.Role,
		p.Department,
		p.HierarchyLevel,
		p.EmployeeID,
		p.FacilityID,
		p.FacilityType,
		p.AvatarURL,
		p.IsActive,
		p.PasswordHash,
		p.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id=$1`
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE LOWER(email)=LOWER($1)`
	return scanProfile(r.pool.QueryRow(ctx, query, email))
}

func (r *profileRepository) List(ctx context.Context, filter ProfileFilter) ([]domain.Profile, error) {
	w := newWhere()
	if len(filter.Roles) > 0 {
		values := make([]string, len(filter.Roles))
		for i, role := range filter.Roles {
			values[i] = string(role)
		}
		w.in("role", values)
	}
	if len(filter.Departments) > 0 {
		values := make([]string, len(filter.Departments))
		for i, dept := range filter.Departments {
			values[i] = string(dept)
		}
		w.in("department", values)
	}
	if filter.Active != nil {
		w.eq("is_active", *filter.Active)
	}
	w.search(filter.SearchTerm, "full_name", "email")

	query := w.query(`SELECT `+profileColumns+` FROM profiles`, "hierarchy_level DESC, full_name ASC", filter.Page)
	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	if err := row.Scan(
		&p.ID,
		&p.Email,
		&p.FullName,
		&p.Phone,
		&p.Role,
		&p.Department,
		&p.HierarchyLevel,
		&p.EmployeeID,
		&p.FacilityID,
		&p.FacilityType,
		&p.AvatarURL,
		&p.IsActive,
		&p.PasswordHash,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
