package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// ErrUnknownPermission is returned when a grant names a permission that does not exist.
var ErrUnknownPermission = errors.New("unknown permission")

// PermissionRepository manages the permission catalog.
type PermissionRepository interface {
	Create(ctx context.Context, perm *domain.Permission) error
	List(ctx context.Context) ([]domain.Permission, error)
}

type permissionRepository struct {
	pool *pgxpool.Pool
}

// NewPermissionRepository builds the repository.
func NewPermissionRepository(pool *pgxpool.Pool) PermissionRepository {
	return &permissionRepository{pool: pool}
}

func (r *permissionRepository) Create(ctx context.Context, perm *domain.Permission) error {
	const query = `
        INSERT INTO permissions (name, description) VALUES ($1, $2)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query, perm.Name, perm.Description).Scan(&perm.ID, &perm.CreatedAt, &perm.UpdatedAt)
}

func (r *permissionRepository) List(ctx context.Context) ([]domain.Permission, error) {
	const query = `SELECT id, name, description, created_at, updated_at FROM permissions ORDER BY name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perms []domain.Permission
	for rows.Next() {
		var p domain.Permission
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}
