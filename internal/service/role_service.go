package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// RoleService administers roles and the permission catalog.
type RoleService struct {
	roles       repository.RoleRepository
	permissions repository.PermissionRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	superRole   string
}

// NewRoleService constructs the service.
func NewRoleService(roles repository.RoleRepository, permissions repository.PermissionRepository, dispatcher events.Dispatcher, logger *zap.Logger, superRole string) *RoleService {
	return &RoleService{
		roles:       roles,
		permissions: permissions,
		dispatcher:  dispatcher,
		logger:      nopIfNil(logger),
		superRole:   superRole,
	}
}

func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	roles, err := s.roles.List(ctx)
	return roles, storeErr(err, "role")
}

func (s *RoleService) GetRole(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "role")
	}
	return role, nil
}

func (s *RoleService) CreateRole(ctx context.Context, name, description string, permissions []string) (*domain.Role, error) {
	role := &domain.Role{
		Name:        strings.TrimSpace(name),
		Description: description,
		Permissions: permissions,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, permissionErr(err)
	}
	return role, nil
}

// DeleteRole removes a role. Users holding it lose their role and are denied
// until reassigned. The super role cannot be deleted.
func (s *RoleService) DeleteRole(ctx context.Context, id string) error {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return err
	}
	if role.Name == s.superRole {
		return apperrors.NewConflict("the super role cannot be deleted", nil)
	}
	return storeErr(s.roles.Delete(ctx, id), "role")
}

// SetPermissions replaces the grants of a role. Changes apply to permission-gated
// routes on the next request because those routes re-read the identity.
func (s *RoleService) SetPermissions(ctx context.Context, actor *domain.Identity, id string, permissions []string) (*domain.Role, error) {
	role, err := s.GetRole(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.roles.SetRolePermissions(ctx, role.ID, permissions); err != nil {
		return nil, permissionErr(err)
	}
	role.Permissions = domain.NewPermissionSet(permissions...).Slice()
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventRolePermissionsChanged, role.ID, "", events.ActorFrom(actor),
		events.RolePermissionsChangedPayload{Role: role.Name, Permissions: role.Permissions}))
	return role, nil
}

func (s *RoleService) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	perms, err := s.permissions.List(ctx)
	return perms, storeErr(err, "permission")
}

func (s *RoleService) CreatePermission(ctx context.Context, name, description string) (*domain.Permission, error) {
	perm := &domain.Permission{Name: strings.TrimSpace(name), Description: description}
	if err := s.permissions.Create(ctx, perm); err != nil {
		return nil, storeErr(err, "permission")
	}
	return perm, nil
}

func permissionErr(err error) error {
	if errors.Is(err, repository.ErrUnknownPermission) {
		return apperrors.NewValidationError("unknown permission", map[string]any{"permissions": "contains an unknown name"})
	}
	return storeErr(err, "role")
}
