package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/invento/inventory-api/internal/api/http/handlers"
	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Offices     *handlers.OfficesHandler
	Departments *handlers.DepartmentsHandler
	Employees   *handlers.EmployeesHandler
	Inventory   *handlers.InventoryHandler
	Users       *handlers.UsersHandler
	Roles       *handlers.RolesHandler
	Gate        *auth.Gate
	Metrics     *observability.Metrics
	SuperRole   string
}

// RegisterRoutes wires HTTP routes. Every protected route declares its
// requirement next to the handler it guards.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	gate := cfg.Gate
	app.Use(gate.Authenticate)

	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	const (
		admin    = domain.RoleAdmin
		manager  = domain.RoleManager
		employee = domain.RoleEmployee
	)
	staff := []string{admin, manager, employee}
	super := auth.Roles(cfg.SuperRole)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", gate.Require(auth.Requirement{}), cfg.Auth.Me)

	offices := api.Group("/offices")
	offices.Get("/", gate.Require(auth.Roles(staff...)), cfg.Offices.List)
	offices.Post("/", gate.Require(super), cfg.Offices.Create)
	offices.Get("/:officeId", gate.Require(auth.Roles(staff...).Scoped()), cfg.Offices.Get)
	offices.Put("/:officeId", gate.Require(super), cfg.Offices.Update)
	offices.Delete("/:officeId", gate.Require(super), cfg.Offices.Delete)
	offices.Get("/:officeId/inventory",
		gate.Require(auth.Roles(staff...).Needs(domain.PermInventoryRead).Scoped()), cfg.Inventory.List)

	departments := api.Group("/departments")
	departments.Get("/", gate.Require(auth.Roles(staff...).Scoped()), cfg.Departments.List)
	departments.Get("/:id", gate.Require(auth.Roles(staff...).Scoped()), cfg.Departments.Get)
	departments.Post("/", gate.Require(auth.Roles(admin).Needs(domain.PermDepartmentWrite).Scoped()), cfg.Departments.Create)
	departments.Put("/:id", gate.Require(auth.Roles(admin).Needs(domain.PermDepartmentWrite).Scoped()), cfg.Departments.Update)
	departments.Delete("/:id", gate.Require(auth.Roles(admin).Needs(domain.PermDepartmentWrite).Scoped()), cfg.Departments.Delete)

	designations := api.Group("/designations")
	designations.Get("/", gate.Require(auth.Roles(staff...).Scoped()), cfg.Departments.ListDesignations)
	designations.Get("/:id", gate.Require(auth.Roles(staff...).Scoped()), cfg.Departments.GetDesignation)
	designations.Post("/", gate.Require(auth.Roles(admin).Needs(domain.PermDesignationWrite).Scoped()), cfg.Departments.CreateDesignation)
	designations.Put("/:id", gate.Require(auth.Roles(admin).Needs(domain.PermDesignationWrite).Scoped()), cfg.Departments.UpdateDesignation)
	designations.Delete("/:id", gate.Require(auth.Roles(admin).Needs(domain.PermDesignationWrite).Scoped()), cfg.Departments.DeleteDesignation)

	employees := api.Group("/employees")
	employees.Get("/", gate.Require(auth.Roles(staff...).Needs(domain.PermEmployeeRead).Scoped()), cfg.Employees.List)
	employees.Get("/:id", gate.Require(auth.Roles(staff...).Needs(domain.PermEmployeeRead).Scoped()), cfg.Employees.Get)
	employees.Post("/", gate.Require(auth.Roles(admin, manager).Needs(domain.PermEmployeeWrite).Scoped()), cfg.Employees.Create)
	employees.Put("/:id", gate.Require(auth.Roles(admin, manager).Needs(domain.PermEmployeeWrite).Scoped()), cfg.Employees.Update)
	employees.Delete("/:id", gate.Require(auth.Roles(admin, manager).Needs(domain.PermEmployeeWrite).Scoped()), cfg.Employees.Delete)

	inventory := api.Group("/inventory")
	read := gate.Require(auth.Roles(staff...).Needs(domain.PermInventoryRead).Scoped())
	write := gate.Require(auth.Roles(admin, manager).Needs(domain.PermInventoryWrite).Scoped())
	issue := gate.Require(auth.Roles(admin, manager).Needs(domain.PermInventoryIssue).Scoped())
	inventory.Get("/", read, cfg.Inventory.List)
	inventory.Get("/:id", read, cfg.Inventory.Get)
	inventory.Post("/", write, cfg.Inventory.Create)
	inventory.Put("/:id", write, cfg.Inventory.Update)
	inventory.Delete("/:id", write, cfg.Inventory.Delete)
	inventory.Post("/:id/issue", issue, cfg.Inventory.Issue)
	inventory.Post("/:id/return", issue, cfg.Inventory.Return)
	inventory.Patch("/:id/status", write, cfg.Inventory.SetStatus)

	users := api.Group("/users")
	users.Get("/", gate.Require(auth.Roles(admin, manager).Needs(domain.PermViewUser).Scoped()), cfg.Users.List)
	users.Get("/:id", gate.Require(auth.Roles(admin, manager).Needs(domain.PermViewUser).Scoped()), cfg.Users.Get)
	users.Post("/", gate.Require(auth.Roles(admin).Needs(domain.PermCreateUser).Scoped()), cfg.Users.Create)
	users.Put("/:id", gate.Require(auth.Roles(admin).Needs(domain.PermEditUser).Scoped()), cfg.Users.Update)
	users.Delete("/:id", gate.Require(auth.Roles(admin).Needs(domain.PermDeleteUser).Scoped()), cfg.Users.Delete)

	roles := api.Group("/roles", gate.Require(super))
	roles.Get("/", cfg.Roles.List)
	roles.Post("/", cfg.Roles.Create)
	roles.Get("/:id", cfg.Roles.Get)
	roles.Delete("/:id", cfg.Roles.Delete)
	roles.Put("/:id/permissions", cfg.Roles.SetPermissions)

	permissions := api.Group("/permissions", gate.Require(super))
	permissions.Get("/", cfg.Roles.ListPermissions)
	permissions.Post("/", cfg.Roles.CreatePermission)
}
