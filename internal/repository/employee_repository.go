package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// EmployeeFilter narrows employee listings.
type EmployeeFilter struct {
	ListFilter
	DepartmentID string
}

// EmployeeRepository manages HR records.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, e *domain.Employee) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) (Page[domain.Employee], error)
}

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository builds the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

const employeeColumns = `id, user_id, office_id, department_id, designation_id, first_name, last_name,
                         mobile_number, date_of_birth, gender, hire_date, created_at, updated_at`

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	const query = `
        INSERT INTO employees (user_id, office_id, department_id, designation_id, first_name, last_name,
                               mobile_number, date_of_birth, gender, hire_date)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		e.UserID,
		e.OfficeID,
		e.DepartmentID,
		e.DesignationID,
		e.FirstName,
		e.LastName,
		e.MobileNumber,
		e.DateOfBirth,
		e.Gender,
		e.HireDate,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	const query = `
        UPDATE employees SET user_id=$1, department_id=$2, designation_id=$3, first_name=$4, last_name=$5,
                             mobile_number=$6, date_of_birth=$7, gender=$8, hire_date=$9, updated_at=NOW()
        WHERE id=$10
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		e.UserID,
		e.DepartmentID,
		e.DesignationID,
		e.FirstName,
		e.LastName,
		e.MobileNumber,
		e.DateOfBirth,
		e.Gender,
		e.HireDate,
		e.ID,
	).Scan(&e.UpdatedAt)
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.pool, `DELETE FROM employees WHERE id=$1`, id)
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id=$1`, id)
	e, err := scanEmployee(row, nil)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) (Page[domain.Employee], error) {
	w := newWhere().
		eq("office_id", filter.OfficeID).
		eq("department_id", filter.DepartmentID).
		search(filter.Search, "first_name", "last_name", "COALESCE(mobile_number, '')")
	base := `SELECT ` + employeeColumns + `, COUNT(*) OVER() FROM employees`
	rows, err := r.pool.Query(ctx, w.paged(base, "last_name, first_name", filter.ListFilter), w.args...)
	if err != nil {
		return Page[domain.Employee]{}, err
	}
	defer rows.Close()

	items, total, err := collectCounted(rows, func(row pgx.Rows, total *int) (domain.Employee, error) {
		return scanEmployee(row, total)
	})
	if err != nil {
		return Page[domain.Employee]{}, err
	}
	return NewPage(items, total, filter.ListFilter), nil
}

func scanEmployee(row pgx.Row, total *int) (domain.Employee, error) {
	var e domain.Employee
	dest := []any{
		&e.ID,
		&e.UserID,
		&e.OfficeID,
		&e.DepartmentID,
		&e.DesignationID,
		&e.FirstName,
		&e.LastName,
		&e.MobileNumber,
		&e.DateOfBirth,
		&e.Gender,
		&e.HireDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	err := row.Scan(dest...)
	return e, err
}
