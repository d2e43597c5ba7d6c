package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/invento/inventory-api/internal/api/http"
	"github.com/invento/inventory-api/internal/api/http/handlers"
	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/config"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/observability"
	"github.com/invento/inventory-api/internal/persistence"
	"github.com/invento/inventory-api/internal/repository"
	"github.com/invento/inventory-api/internal/service"
	"github.com/invento/inventory-api/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics("invento")

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	permissionRepo := repository.NewPermissionRepository(pool)
	officeRepo := repository.NewOfficeRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	designationRepo := repository.NewDesignationRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	inventoryRepo := repository.NewInventoryRepository(pool)
	identityStore := repository.NewIdentityStore(userRepo, roleRepo)

	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret)
	loader := auth.NewIdentityLoader(identityStore, cfg.Auth.AlwaysRefreshIdentity)
	engine := auth.NewEngine(cfg.Auth.SuperRole)
	gate := auth.NewGate(codec, loader, engine, logger.Named("gate"), metrics, auth.GateConfig{
		PublicPaths: cfg.Auth.PublicPaths,
		CookieName:  cfg.Auth.CookieName,
		Timeout:     cfg.Auth.AuthorizeTimeout(),
	})
	verifier := auth.NewCredentialVerifier(identityStore, logger.Named("credentials"))
	throttle := auth.NewLoginThrottle(redis, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow(), logger)

	dispatcher := events.NewInMemoryDispatcher()
	audit := service.NewAuditService(dispatcher, logger, metrics)
	worker.StartAuditWorker(audit)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		Verifier:   verifier,
		Codec:      codec,
		Throttle:   throttle,
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		OfficeRepo: officeRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	officeService := service.NewOfficeService(officeRepo)
	departmentService := service.NewDepartmentService(departmentRepo, designationRepo)
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:    employeeRepo,
		DepartmentRepo:  departmentRepo,
		DesignationRepo: designationRepo,
		UserRepo:        userRepo,
	})
	inventoryService := service.NewInventoryService(service.InventoryDependencies{
		InventoryRepo: inventoryRepo,
		UserRepo:      userRepo,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	userService := service.NewUserService(cfg.Auth, service.UserDependencies{
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	roleService := service.NewRoleService(roleRepo, permissionRepo, dispatcher, logger, cfg.Auth.SuperRole)

	if err := authService.SeedSuperAdmin(ctx, cfg.Seed); err != nil {
		logger.Fatal("failed to seed super admin", zap.Error(err))
	}

	debugErrors := cfg.App.IsDevelopment()
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.Security.BodyLimitBytes,
		ErrorHandler: httptransport.ErrorHandler(logger, debugErrors),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, httptransport.MiddlewareConfig{
		Timeout:  cfg.App.RequestTimeout(),
		Security: cfg.Security,
		Debug:    debugErrors,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:        handlers.NewAuthHandler(authService, handlers.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}),
		Offices:     handlers.NewOfficesHandler(officeService),
		Departments: handlers.NewDepartmentsHandler(departmentService),
		Employees:   handlers.NewEmployeesHandler(employeeService),
		Inventory:   handlers.NewInventoryHandler(inventoryService),
		Users:       handlers.NewUsersHandler(userService),
		Roles:       handlers.NewRolesHandler(roleService),
		Gate:        gate,
		Metrics:     metrics,
		SuperRole:   cfg.Auth.SuperRole,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown incomplete", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
