package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderTrustsClaimsForRoleChecks(t *testing.T) {
	store := newFakeStore()
	loader := NewIdentityLoader(store, false)
	claims := &Claims{RoleName: "admin", OfficeID: "O1"}
	claims.Subject = "u1"

	identity, err := loader.Resolve(context.Background(), claims, Roles("admin"))
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.SubjectID)
	assert.Equal(t, 0, store.calls)
}

func TestLoaderRefreshesForPermissions(t *testing.T) {
	store := newFakeStore()
	store.byID["u1"] = testIdentity("u1", "manager", "O3", "view_user")
	loader := NewIdentityLoader(store, false)
	claims := &Claims{RoleName: "admin", OfficeID: "O1"}
	claims.Subject = "u1"

	identity, err := loader.Resolve(context.Background(), claims, Requirement{Permission: "view_user"})
	require.NoError(t, err)
	assert.Equal(t, "manager", identity.RoleName)
	assert.Equal(t, "O3", identity.OfficeID)
	assert.True(t, identity.Permissions.Has("view_user"))
	assert.Equal(t, 1, store.calls)
}

func TestLoaderAlwaysRefresh(t *testing.T) {
	store := newFakeStore()
	store.byID["u1"] = testIdentity("u1", "admin", "O1")
	loader := NewIdentityLoader(store, true)
	assert.True(t, loader.NeedsRefresh(Requirement{}))
}

func TestLoaderRefreshFailures(t *testing.T) {
	store := newFakeStore()
	noRole := testIdentity("u2", "", "O1")
	noRole.RoleID = ""
	store.byID["u2"] = noRole
	inactive := testIdentity("u3", "admin", "O1")
	inactive.Status = "inactive"
	store.byID["u3"] = inactive
	loader := NewIdentityLoader(store, false)

	_, err := loader.Refresh(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserVanished)
	assert.Equal(t, ReasonIdentityNotFound, ReasonFor(err))

	_, err = loader.Refresh(context.Background(), "u2")
	assert.ErrorIs(t, err, ErrRoleVanished)

	_, err = loader.Refresh(context.Background(), "u3")
	assert.ErrorIs(t, err, ErrIdentityInactive)

	store.err = errors.New("connection refused")
	_, err = loader.Refresh(context.Background(), "u3")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, ReasonUnavailable, ReasonFor(err))
}

func TestLoaderWithoutStoreFailsClosed(t *testing.T) {
	_, err := NewIdentityLoader(nil, false).Refresh(context.Background(), "u1")
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}
