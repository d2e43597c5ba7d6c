package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migration is one schema step. Versions are applied in ascending order and
// recorded in schema_migrations so each runs once.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Migrations is the ordered schema registry compiled into the binary.
var Migrations = []Migration{
	{
		Version: 1,
		Name:    "offices_roles_permissions",
		SQL: `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS offices (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name       TEXT NOT NULL UNIQUE,
    address    TEXT NOT NULL DEFAULT '',
    city       TEXT NOT NULL DEFAULT '',
    state      TEXT NOT NULL DEFAULT '',
    country    TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS roles (
    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS permissions (
    id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name        TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL DEFAULT '',
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS role_permissions (
    role_id       UUID NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
    permission_id UUID NOT NULL REFERENCES permissions(id) ON DELETE CASCADE,
    PRIMARY KEY (role_id, permission_id)
);`,
	},
	{
		Version: 2,
		Name:    "users",
		SQL: `
CREATE TABLE IF NOT EXISTS users (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name          TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    mobile_number TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    office_id     UUID NOT NULL REFERENCES offices(id),
    role_id       UUID REFERENCES roles(id) ON DELETE SET NULL,
    status        TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS users_office_idx ON users(office_id);`,
	},
	{
		Version: 3,
		Name:    "departments_designations_employees",
		SQL: `
CREATE TABLE IF NOT EXISTS departments (
    id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    office_id  UUID NOT NULL REFERENCES offices(id) ON DELETE CASCADE,
    name       TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (office_id, name)
);

CREATE TABLE IF NOT EXISTS designations (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    department_id UUID NOT NULL REFERENCES departments(id) ON DELETE CASCADE,
    title         TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (department_id, title)
);

CREATE TABLE IF NOT EXISTS employees (
    id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id        UUID UNIQUE REFERENCES users(id) ON DELETE SET NULL,
    office_id      UUID NOT NULL REFERENCES offices(id),
    department_id  UUID REFERENCES departments(id) ON DELETE SET NULL,
    designation_id UUID REFERENCES designations(id) ON DELETE SET NULL,
    first_name     TEXT NOT NULL,
    last_name      TEXT NOT NULL DEFAULT '',
    mobile_number  TEXT,
    date_of_birth  DATE,
    gender         TEXT CHECK (gender IN ('male', 'female', 'other')),
    hire_date      DATE,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS employees_office_idx ON employees(office_id);`,
	},
	{
		Version: 4,
		Name:    "inventory",
		SQL: `
CREATE TABLE IF NOT EXISTS inventory (
    id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    office_id     UUID NOT NULL REFERENCES offices(id),
    name          TEXT NOT NULL,
    description   TEXT NOT NULL DEFAULT '',
    qty           INTEGER NOT NULL DEFAULT 0 CHECK (qty >= 0),
    item_type     TEXT NOT NULL CHECK (item_type IN ('pane','notebook','chair','laptop','tv','av','fan','mobile','charger','pandrive')),
    serial_number TEXT NOT NULL DEFAULT '',
    bill_number   TEXT NOT NULL DEFAULT '',
    value         DOUBLE PRECISION,
    is_reusable   BOOLEAN NOT NULL DEFAULT FALSE,
    remarks       TEXT NOT NULL DEFAULT '',
    status        TEXT NOT NULL DEFAULT 'available' CHECK (status IN ('available','issued','repair','disposed')),
    issued_to     UUID REFERENCES users(id),
    issued_by     UUID REFERENCES users(id),
    issued_date   TIMESTAMPTZ,
    return_date   TIMESTAMPTZ,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    CHECK ((status = 'issued') = (issued_to IS NOT NULL AND issued_date IS NOT NULL))
);

CREATE INDEX IF NOT EXISTS inventory_office_idx ON inventory(office_id);`,
	},
	{
		Version: 5,
		Name:    "seed_roles_permissions",
		SQL: `
INSERT INTO roles (name, description) VALUES
    ('super_admin', 'Unrestricted access to every office'),
    ('admin', 'Office administrator'),
    ('manager', 'Office manager'),
    ('employee', 'Regular employee')
ON CONFLICT (name) DO NOTHING;

INSERT INTO permissions (name, description) VALUES
    ('view_user', 'List and read users'),
    ('create_user', 'Create users'),
    ('edit_user', 'Update users'),
    ('delete_user', 'Delete users'),
    ('inventory.read', 'Read inventory'),
    ('inventory.write', 'Create, update and delete inventory'),
    ('inventory.issue', 'Issue and return inventory'),
    ('employee.read', 'Read employees'),
    ('employee.write', 'Create, update and delete employees'),
    ('department.write', 'Manage departments'),
    ('designation.write', 'Manage designations')
ON CONFLICT (name) DO NOTHING;

INSERT INTO role_permissions (role_id, permission_id)
SELECT r.id, p.id FROM roles r CROSS JOIN permissions p
WHERE r.name = 'admin'
ON CONFLICT DO NOTHING;

INSERT INTO role_permissions (role_id, permission_id)
SELECT r.id, p.id FROM roles r JOIN permissions p
  ON p.name IN ('view_user','inventory.read','inventory.write','inventory.issue','employee.read','employee.write')
WHERE r.name = 'manager'
ON CONFLICT DO NOTHING;

INSERT INTO role_permissions (role_id, permission_id)
SELECT r.id, p.id FROM roles r JOIN permissions p
  ON p.name IN ('inventory.read','employee.read')
WHERE r.name = 'employee'
ON CONFLICT DO NOTHING;`,
	},
}

// RunMigrations applies every registered migration not yet recorded in schema_migrations.
// Each migration runs in its own transaction.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping migrations")
		return nil
	}

	const bootstrap = `
        CREATE TABLE IF NOT EXISTS schema_migrations (
            version    INTEGER PRIMARY KEY,
            name       TEXT NOT NULL,
            applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`
	if _, err := pool.Exec(ctx, bootstrap); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedVersions(ctx, pool)
	if err != nil {
		return err
	}

	count := 0
	for _, m := range Pending(Migrations, applied) {
		logger.Info("applying migration", zap.Int("version", m.Version), zap.String("name", m.Name))
		if err := applyMigration(ctx, pool, m); err != nil {
			return fmt.Errorf("apply migration %d_%s: %w", m.Version, m.Name, err)
		}
		count++
	}

	logger.Info("migrations applied", zap.Int("count", count), zap.Int("known", len(Migrations)))
	return nil
}

// Pending returns the migrations absent from applied, in version order.
func Pending(all []Migration, applied map[int]bool) []Migration {
	out := make([]Migration, 0, len(all))
	last := 0
	for _, m := range all {
		if m.Version <= last {
			panic(fmt.Sprintf("migration %d (%s) is out of order", m.Version, m.Name))
		}
		last = m.Version
		if !applied[m.Version] {
			out = append(out, m)
		}
	}
	return out
}

func appliedVersions(ctx context.Context, pool *pgxpool.Pool) (map[int]bool, error) {
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int32])
	if err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[int(v)] = true
	}
	return applied, nil
}

func applyMigration(ctx context.Context, pool *pgxpool.Pool, m Migration) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, m.SQL); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name)
		return err
	})
}
