package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// DesignationFilter narrows designation listings.
type DesignationFilter struct {
	ListFilter
	DepartmentID string
}

// DesignationRepository manages job titles. The owning office is read through the department.
type DesignationRepository interface {
	Create(ctx context.Context, d *domain.Designation) error
	Update(ctx context.Context, d *domain.Designation) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Designation, error)
	List(ctx context.Context, filter DesignationFilter) (Page[domain.Designation], error)
}

type designationRepository struct {
	pool *pgxpool.Pool
}

// NewDesignationRepository builds the repository.
func NewDesignationRepository(pool *pgxpool.Pool) DesignationRepository {
	return &designationRepository{pool: pool}
}

const designationSelect = `
        SELECT g.id, g.department_id, d.office_id, g.title, g.created_at, g.updated_at
        FROM designations g JOIN departments d ON d.id = g.department_id`

func (r *designationRepository) Create(ctx context.Context, d *domain.Designation) error {
	const query = `
        INSERT INTO designations (department_id, title)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, d.DepartmentID, d.Title).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *designationRepository) Update(ctx context.Context, d *domain.Designation) error {
	const query = `
        UPDATE designations SET title=$1, department_id=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, d.Title, d.DepartmentID, d.ID).Scan(&d.UpdatedAt)
}

func (r *designationRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.pool, `DELETE FROM designations WHERE id=$1`, id)
}

func (r *designationRepository) GetByID(ctx context.Context, id string) (*domain.Designation, error) {
	var d domain.Designation
	if err := r.pool.QueryRow(ctx, designationSelect+` WHERE g.id=$1`, id).Scan(
		&d.ID, &d.DepartmentID, &d.OfficeID, &d.Title, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *designationRepository) List(ctx context.Context, filter DesignationFilter) (Page[domain.Designation], error) {
	w := newWhere().
		eq("d.office_id", filter.OfficeID).
		eq("g.department_id", filter.DepartmentID).
		search(filter.Search, "g.title")
	base := `
        SELECT g.id, g.department_id, d.office_id, g.title, g.created_at, g.updated_at, COUNT(*) OVER()
        FROM designations g JOIN departments d ON d.id = g.department_id`
	rows, err := r.pool.Query(ctx, w.paged(base, "g.title", filter.ListFilter), w.args...)
	if err != nil {
		return Page[domain.Designation]{}, err
	}
	defer rows.Close()

	items, total, err := collectCounted(rows, func(row pgx.Rows, total *int) (domain.Designation, error) {
		var d domain.Designation
		err := row.Scan(&d.ID, &d.DepartmentID, &d.OfficeID, &d.Title, &d.CreatedAt, &d.UpdatedAt, total)
		return d, err
	})
	if err != nil {
		return Page[domain.Designation]{}, err
	}
	return NewPage(items, total, filter.ListFilter), nil
}
