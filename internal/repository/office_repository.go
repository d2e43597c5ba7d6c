package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// OfficeRepository manages offices, the tenant boundary.
type OfficeRepository interface {
	Create(ctx context.Context, office *domain.Office) error
	Update(ctx context.Context, office *domain.Office) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Office, error)
	GetByName(ctx context.Context, name string) (*domain.Office, error)
	List(ctx context.Context, filter ListFilter) (Page[domain.Office], error)
}

type officeRepository struct {
	pool *pgxpool.Pool
}

// NewOfficeRepository builds the repository.
func NewOfficeRepository(pool *pgxpool.Pool) OfficeRepository {
	return &officeRepository{pool: pool}
}

const officeColumns = `id, name, address, city, state, country, created_at, updated_at`

func (r *officeRepository) Create(ctx context.Context, office *domain.Office) error {
	const query = `
        INSERT INTO offices (name, address, city, state, country)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		office.Name,
		office.Address,
		office.City,
		office.State,
		office.Country,
	).Scan(&office.ID, &office.CreatedAt, &office.UpdatedAt)
}

func (r *officeRepository) Update(ctx context.Context, office *domain.Office) error {
	const query = `
        UPDATE offices SET name=$1, address=$2, city=$3, state=$4, country=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		office.Name,
		office.Address,
		office.City,
		office.State,
		office.Country,
		office.ID,
	).Scan(&office.UpdatedAt)
}

func (r *officeRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.pool, `DELETE FROM offices WHERE id=$1`, id)
}

func (r *officeRepository) GetByID(ctx context.Context, id string) (*domain.Office, error) {
	return scanOffice(r.pool.QueryRow(ctx, `SELECT `+officeColumns+` FROM offices WHERE id=$1`, id))
}

func (r *officeRepository) GetByName(ctx context.Context, name string) (*domain.Office, error) {
	return scanOffice(r.pool.QueryRow(ctx, `SELECT `+officeColumns+` FROM offices WHERE name=$1`, name))
}

// List restricts to filter.OfficeID when set, so non-super callers only see their own office.
func (r *officeRepository) List(ctx context.Context, filter ListFilter) (Page[domain.Office], error) {
	w := newWhere().eq("id", filter.OfficeID).search(filter.Search, "name", "city", "country")
	rows, err := r.pool.Query(ctx, w.paged(`SELECT `+officeColumns+`, COUNT(*) OVER() FROM offices`, "name", filter), w.args...)
	if err != nil {
		return Page[domain.Office]{}, err
	}
	defer rows.Close()

	var (
		offices []domain.Office
		total   int
	)
	for rows.Next() {
		var o domain.Office
		if err := rows.Scan(&o.ID, &o.Name, &o.Address, &o.City, &o.State, &o.Country, &o.CreatedAt, &o.UpdatedAt, &total); err != nil {
			return Page[domain.Office]{}, err
		}
		offices = append(offices, o)
	}
	if err := rows.Err(); err != nil {
		return Page[domain.Office]{}, err
	}
	return NewPage(offices, total, filter), nil
}

func scanOffice(row pgx.Row) (*domain.Office, error) {
	var o domain.Office
	if err := row.Scan(&o.ID, &o.Name, &o.Address, &o.City, &o.State, &o.Country, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}
