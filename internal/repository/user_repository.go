package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/invento/inventory-api/internal/domain"
)

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter ListFilter) (Page[domain.User], error)

	FindIdentityByEmail(ctx context.Context, email string) (*domain.IdentityRecord, error)
	FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `u.id, u.name, u.email, u.mobile_number, u.password_hash, u.office_id,
                     u.role_id, r.name, u.status, u.created_at, u.updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, mobile_number, password_hash, office_id, role_id, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.MobileNumber,
		user.PasswordHash,
		user.OfficeID,
		nullable(user.RoleID),
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, mobile_number=$3, password_hash=$4, office_id=$5,
                         role_id=$6, status=$7, updated_at=NOW()
        WHERE id=$8
        RETURNING updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.MobileNumber,
		user.PasswordHash,
		user.OfficeID,
		nullable(user.RoleID),
		user.Status,
		user.ID,
	).Scan(&user.UpdatedAt)
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return execOne(ctx, r.pool, `DELETE FROM users WHERE id=$1`, id)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u LEFT JOIN roles r ON r.id = u.role_id WHERE u.id=$1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u LEFT JOIN roles r ON r.id = u.role_id WHERE LOWER(u.email)=LOWER($1)`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context, filter ListFilter) (Page[domain.User], error) {
	w := newWhere().eq("u.office_id", filter.OfficeID).search(filter.Search, "u.name", "u.email")
	base := `SELECT ` + userColumns + `, COUNT(*) OVER() FROM users u LEFT JOIN roles r ON r.id = u.role_id`

	rows, err := r.pool.Query(ctx, w.paged(base, "u.created_at DESC", filter), w.args...)
	if err != nil {
		return Page[domain.User]{}, err
	}
	defer rows.Close()

	var (
		users []domain.User
		total int
	)
	for rows.Next() {
		user, n, err := scanUserRow(rows)
		if err != nil {
			return Page[domain.User]{}, err
		}
		users = append(users, *user)
		total = n
	}
	if err := rows.Err(); err != nil {
		return Page[domain.User]{}, err
	}
	return NewPage(users, total, filter), nil
}

// FindIdentityByEmail loads the credential record for a login attempt.
func (r *userRepository) FindIdentityByEmail(ctx context.Context, email string) (*domain.IdentityRecord, error) {
	const query = `
        SELECT u.id, u.email, u.name, u.role_id, r.name, u.office_id, u.status, u.password_hash
        FROM users u
        LEFT JOIN roles r ON r.id = u.role_id
        WHERE LOWER(u.email) = LOWER($1)`

	var (
		rec      domain.IdentityRecord
		roleID   *string
		roleName *string
	)
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&rec.SubjectID,
		&rec.Email,
		&rec.Name,
		&roleID,
		&roleName,
		&rec.OfficeID,
		&rec.Status,
		&rec.PasswordHash,
	); err != nil {
		return nil, err
	}
	rec.RoleID = deref(roleID)
	rec.RoleName = deref(roleName)
	return &rec, nil
}

// FindIdentityByID re-reads the subject with its role, office and permission
// names in a single round-trip.
func (r *userRepository) FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	const query = `
        SELECT u.id, u.email, u.name, u.role_id, r.name, u.office_id, u.status,
               COALESCE(array_agg(p.name) FILTER (WHERE p.name IS NOT NULL), '{}')
        FROM users u
        LEFT JOIN roles r ON r.id = u.role_id
        LEFT JOIN role_permissions rp ON rp.role_id = r.id
        LEFT JOIN permissions p ON p.id = rp.permission_id
        WHERE u.id = $1
        GROUP BY u.id, r.id`

	var (
		identity domain.Identity
		roleID   *string
		roleName *string
		perms    []string
	)
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&identity.SubjectID,
		&identity.Email,
		&identity.Name,
		&roleID,
		&roleName,
		&identity.OfficeID,
		&identity.Status,
		&perms,
	); err != nil {
		return nil, err
	}
	identity.RoleID = deref(roleID)
	identity.RoleName = deref(roleName)
	identity.Permissions = domain.NewPermissionSet(perms...)
	return &identity, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user     domain.User
		roleID   *string
		roleName *string
	)
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.MobileNumber,
		&user.PasswordHash,
		&user.OfficeID,
		&roleID,
		&roleName,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	user.RoleID = deref(roleID)
	user.RoleName = deref(roleName)
	return &user, nil
}

func scanUserRow(rows pgx.Rows) (*domain.User, int, error) {
	var (
		user     domain.User
		roleID   *string
		roleName *string
		total    int
	)
	if err := rows.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.MobileNumber,
		&user.PasswordHash,
		&user.OfficeID,
		&roleID,
		&roleName,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
		&total,
	); err != nil {
		return nil, 0, err
	}
	user.RoleID = deref(roleID)
	user.RoleName = deref(roleName)
	return &user, total, nil
}
