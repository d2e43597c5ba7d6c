package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// DepartmentRepository manages department persistence.
type DepartmentRepository interface {
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, filter ListFilter) (Page[domain.Department], error)
}

type departmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository builds the repository.
func NewDepartmentRepository(pool *pgxpool.Pool) DepartmentRepository {
	return &departmentRepository{pool: pool}
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (office_id, name)
        VALUES ($1,$2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		dept.OfficeID,
		dept.Name,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
}

func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	const query = `
        UPDATE departments SET name=$1, updated_at=NOW()
        WHERE id=$2
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, dept.Name, dept.ID).Scan(&dept.UpdatedAt)
}

func (r *departmentRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.pool, `DELETE FROM departments WHERE id=$1`, id)
}

func (r *departmentRepository) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	const query = `
        SELECT id, office_id, name, created_at, updated_at
        FROM departments WHERE id=$1`
	var dept domain.Department
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&dept.ID,
		&dept.OfficeID,
		&dept.Name,
		&dept.CreatedAt,
		&dept.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context, filter ListFilter) (Page[domain.Department], error) {
	w := newWhere().eq("office_id", filter.OfficeID).search(filter.Search, "name")
	base := `SELECT id, office_id, name, created_at, updated_at, COUNT(*) OVER() FROM departments`
	rows, err := r.pool.Query(ctx, w.paged(base, "name", filter), w.args...)
	if err != nil {
		return Page[domain.Department]{}, err
	}
	defer rows.Close()

	depts, total, err := collectCounted(rows, func(row pgx.Rows, total *int) (domain.Department, error) {
		var d domain.Department
		err := row.Scan(&d.ID, &d.OfficeID, &d.Name, &d.CreatedAt, &d.UpdatedAt, total)
		return d, err
	})
	if err != nil {
		return Page[domain.Department]{}, err
	}
	return NewPage(depts, total, filter), nil
}
