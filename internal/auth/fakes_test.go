package auth

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/invento/inventory-api/internal/domain"
)

type fakeStore struct {
	mu        sync.Mutex
	byEmail   map[string]*domain.IdentityRecord
	byID      map[string]*domain.Identity
	rolePerms map[string][]string
	err       error
	block     bool
	calls     int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		byEmail:   map[string]*domain.IdentityRecord{},
		byID:      map[string]*domain.Identity{},
		rolePerms: map[string][]string{},
	}
}

func (f *fakeStore) FindIdentityByEmail(_ context.Context, email string) (*domain.IdentityRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeStore) FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	f.mu.Lock()
	f.calls++
	block, err := f.block, f.err
	identity, ok := f.byID[id]
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *identity
	return &cp, nil
}

func (f *fakeStore) FindRolePermissions(_ context.Context, roleID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.rolePerms[roleID], nil
}

func testIdentity(id, role, office string, perms ...string) *domain.Identity {
	return &domain.Identity{
		SubjectID:   id,
		Email:       id + "@x.com",
		RoleID:      "role-" + role,
		RoleName:    role,
		OfficeID:    office,
		Permissions: domain.NewPermissionSet(perms...),
		Status:      domain.UserStatusActive,
	}
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounter) Count(_ context.Context, key string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.counts[key], nil
}

func (f *fakeCounter) Reset(_ context.Context, key string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.counts, key)
	return nil
}
