package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invento/inventory-api/internal/domain"
)

// IdentityStore is the storage collaborator used to re-hydrate identities.
// FindIdentityByID returns the subject with role, office and permissions in one round-trip
// and pgx.ErrNoRows when the subject does not exist.
type IdentityStore interface {
	FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error)
}

// IdentityLoader turns verified claims into an Identity, either trusting the
// token or re-reading the authoritative record.
type IdentityLoader struct {
	store         IdentityStore
	alwaysRefresh bool
}

// NewIdentityLoader constructs a loader. When alwaysRefresh is set every
// protected request re-reads storage.
func NewIdentityLoader(store IdentityStore, alwaysRefresh bool) *IdentityLoader {
	return &IdentityLoader{store: store, alwaysRefresh: alwaysRefresh}
}

// NeedsRefresh reports whether req must be evaluated against storage rather than claims.
func (l *IdentityLoader) NeedsRefresh(req Requirement) bool {
	return l.alwaysRefresh || req.Permission != ""
}

// FromClaims trusts the embedded claims.
func (l *IdentityLoader) FromClaims(claims *Claims) *domain.Identity {
	return claims.Identity()
}

// Refresh loads the current identity of subjectID. It never degrades silently:
// a vanished subject or role, an inactive account or a storage failure is an error.
func (l *IdentityLoader) Refresh(ctx context.Context, subjectID string) (*domain.Identity, error) {
	if l.store == nil {
		return nil, fmt.Errorf("%w: identity store not configured", ErrStorageUnavailable)
	}
	identity, err := l.store.FindIdentityByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserVanished
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if identity == nil {
		return nil, ErrUserVanished
	}
	if identity.RoleID == "" || identity.RoleName == "" {
		return nil, ErrRoleVanished
	}
	if !identity.Active() {
		return nil, ErrIdentityInactive
	}
	if identity.Permissions == nil {
		identity.Permissions = domain.NewPermissionSet()
	}
	return identity, nil
}

// Resolve returns the identity to authorize req with.
func (l *IdentityLoader) Resolve(ctx context.Context, claims *Claims, req Requirement) (*domain.Identity, error) {
	if !l.NeedsRefresh(req) {
		return l.FromClaims(claims), nil
	}
	return l.Refresh(ctx, claims.Subject)
}
