package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// RoleRepository manages roles and their permission grants.
type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Role, error)
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	List(ctx context.Context) ([]domain.Role, error)
	FindRolePermissions(ctx context.Context, roleID string) ([]string, error)
	SetRolePermissions(ctx context.Context, roleID string, permissions []string) error
}

type roleRepository struct {
	pool *pgxpool.Pool
}

// NewRoleRepository builds the repository.
func NewRoleRepository(pool *pgxpool.Pool) RoleRepository {
	return &roleRepository{pool: pool}
}

const roleSelect = `
        SELECT r.id, r.name, r.description,
               COALESCE(array_agg(p.name ORDER BY p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
        FROM roles r
        LEFT JOIN role_permissions rp ON rp.role_id = r.id
        LEFT JOIN permissions p ON p.id = rp.permission_id`

func (r *roleRepository) Create(ctx context.Context, role *domain.Role) error {
	const query = `INSERT INTO roles (name, description) VALUES ($1, $2) RETURNING id`
	if err := r.pool.QueryRow(ctx, query, role.Name, role.Description).Scan(&role.ID); err != nil {
		return err
	}
	if len(role.Permissions) == 0 {
		return nil
	}
	return r.SetRolePermissions(ctx, role.ID, role.Permissions)
}

func (r *roleRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.pool, `DELETE FROM roles WHERE id=$1`, id)
}

func (r *roleRepository) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, roleSelect+` WHERE r.id=$1 GROUP BY r.id`, id))
}

func (r *roleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return scanRole(r.pool.QueryRow(ctx, roleSelect+` WHERE r.name=$1 GROUP BY r.id`, name))
}

func (r *roleRepository) List(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.pool.Query(ctx, roleSelect+` GROUP BY r.id ORDER BY r.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, *role)
	}
	return roles, rows.Err()
}

// FindRolePermissions returns the permission names granted to roleID.
func (r *roleRepository) FindRolePermissions(ctx context.Context, roleID string) ([]string, error) {
	const query = `
        SELECT p.name FROM role_permissions rp
        JOIN permissions p ON p.id = rp.permission_id
        WHERE rp.role_id = $1
        ORDER BY p.name`
	rows, err := r.pool.Query(ctx, query, roleID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// SetRolePermissions replaces the grants of roleID. Unknown permission names are
// a validation failure and leave the previous grants untouched.
func (r *roleRepository) SetRolePermissions(ctx context.Context, roleID string, permissions []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id=$1`, roleID); err != nil {
			return err
		}
		if len(permissions) == 0 {
			return nil
		}
		const insert = `
            INSERT INTO role_permissions (role_id, permission_id)
            SELECT $1, p.id FROM permissions p WHERE p.name = ANY($2)`
		cmd, err := tx.Exec(ctx, insert, roleID, permissions)
		if err != nil {
			return err
		}
		if int(cmd.RowsAffected()) != len(uniqueStrings(permissions)) {
			return ErrUnknownPermission
		}
		return nil
	})
}

func scanRole(row pgx.Row) (*domain.Role, error) {
	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Permissions); err != nil {
		return nil, err
	}
	return &role, nil
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
