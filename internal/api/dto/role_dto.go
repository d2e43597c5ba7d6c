package dto

import (
	"github.com/invento/inventory-api/internal/domain"
)

type CreateRoleRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=50"`
	Description string   `json:"description" validate:"omitempty,max=255"`
	Permissions []string `json:"permissions" validate:"omitempty,dive,required,max=100"`
}

// RolePermissionsRequest replaces the full permission set of a role.
type RolePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"dive,required,max=100"`
}

type CreatePermissionRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

type RoleResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions"`
}

func NewRoleResponse(r *domain.Role) RoleResponse {
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return RoleResponse{ID: r.ID, Name: r.Name, Description: r.Description, Permissions: perms}
}

type PermissionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func NewPermissionResponse(p *domain.Permission) PermissionResponse {
	return PermissionResponse{ID: p.ID, Name: p.Name, Description: p.Description}
}
