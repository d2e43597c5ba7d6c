package repository

import (
	"context"

	"github.com/invento/inventory-api/internal/domain"
)

// IdentityStore is the storage collaborator of the auth core: credential and
// identity lookups from users, permission lookups from roles.
type IdentityStore struct {
	users UserRepository
	roles RoleRepository
}

// NewIdentityStore combines the user and role repositories.
func NewIdentityStore(users UserRepository, roles RoleRepository) *IdentityStore {
	return &IdentityStore{users: users, roles: roles}
}

func (s *IdentityStore) FindIdentityByEmail(ctx context.Context, email string) (*domain.IdentityRecord, error) {
	return s.users.FindIdentityByEmail(ctx, email)
}

func (s *IdentityStore) FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	return s.users.FindIdentityByID(ctx, id)
}

func (s *IdentityStore) FindRolePermissions(ctx context.Context, roleID string) ([]string, error) {
	return s.roles.FindRolePermissions(ctx, roleID)
}
