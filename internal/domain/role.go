package domain

import "time"

// Built-in role names seeded at migration time.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleEmployee   = "employee"
)

// Built-in permission names.
const (
	PermViewUser         = "view_user"
	PermCreateUser       = "create_user"
	PermEditUser         = "edit_user"
	PermDeleteUser       = "delete_user"
	PermInventoryRead    = "inventory.read"
	PermInventoryWrite   = "inventory.write"
	PermInventoryIssue   = "inventory.issue"
	PermEmployeeRead     = "employee.read"
	PermEmployeeWrite    = "employee.write"
	PermDepartmentWrite  = "department.write"
	PermDesignationWrite = "designation.write"
)

// Role groups permissions. Many users reference one role.
type Role struct {
	ID          string
	Name        string
	Description string
	Permissions []string
}

// Permission is a capability string that can be granted to roles.
type Permission struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
