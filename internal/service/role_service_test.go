package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invento/inventory-api/internal/events"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

func TestRoleSetPermissions(t *testing.T) {
	roles := newFakeRoles("super_admin", "manager")
	dispatcher := &recordingDispatcher{}
	svc := NewRoleService(roles, nil, dispatcher, nil, "super_admin")

	role, err := svc.SetPermissions(context.Background(), nil, "role-manager", []string{"view_user", "inventory.read", "view_user"})
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory.read", "view_user"}, role.Permissions)
	assert.Equal(t, []events.EventType{events.EventRolePermissionsChanged}, dispatcher.types())

	_, err = svc.SetPermissions(context.Background(), nil, "role-manager", []string{"bogus"})
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)

	_, err = svc.SetPermissions(context.Background(), nil, "role-missing", nil)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)
}

func TestRoleDeleteProtectsSuperRole(t *testing.T) {
	roles := newFakeRoles("super_admin", "manager")
	svc := NewRoleService(roles, nil, nil, nil, "super_admin")

	err := svc.DeleteRole(context.Background(), "role-super_admin")
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)
	assert.NoError(t, svc.DeleteRole(context.Background(), "role-manager"))
}
