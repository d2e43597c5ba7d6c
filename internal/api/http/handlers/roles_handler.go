package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/invento/inventory-api/internal/api/dto"
	"github.com/invento/inventory-api/internal/service"
)

// RolesHandler exposes role and permission administration.
type RolesHandler struct {
	roles *service.RoleService
}

func NewRolesHandler(roles *service.RoleService) *RolesHandler {
	return &RolesHandler{roles: roles}
}

func (h *RolesHandler) List(c *fiber.Ctx) error {
	roles, err := h.roles.ListRoles(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, mapAll(roles, dto.NewRoleResponse))
}

func (h *RolesHandler) Get(c *fiber.Ctx) error {
	role, err := h.roles.GetRole(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewRoleResponse(role))
}

func (h *RolesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	role, err := h.roles.CreateRole(c.UserContext(), req.Name, req.Description, req.Permissions)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewRoleResponse(role))
}

func (h *RolesHandler) Delete(c *fiber.Ctx) error {
	if err := h.roles.DeleteRole(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SetPermissions handles PUT /api/roles/:id/permissions.
func (h *RolesHandler) SetPermissions(c *fiber.Ctx) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.RolePermissionsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	role, err := h.roles.SetPermissions(c.UserContext(), identity, c.Params("id"), req.Permissions)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewRoleResponse(role))
}

func (h *RolesHandler) ListPermissions(c *fiber.Ctx) error {
	perms, err := h.roles.ListPermissions(c.UserContext())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, mapAll(perms, dto.NewPermissionResponse))
}

func (h *RolesHandler) CreatePermission(c *fiber.Ctx) error {
	var req dto.CreatePermissionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	perm, err := h.roles.CreatePermission(c.UserContext(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewPermissionResponse(perm))
}

func mapAll[S, T any](items []S, fn func(*S) T) []T {
	out := make([]T, len(items))
	for i := range items {
		out[i] = fn(&items[i])
	}
	return out
}
