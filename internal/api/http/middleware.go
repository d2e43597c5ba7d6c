package http

import (
	"context"
	"errors"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/config"
	"github.com/invento/inventory-api/internal/observability"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// MiddlewareConfig carries the settings for the global middleware chain.
type MiddlewareConfig struct {
	Timeout  time.Duration
	Security config.SecurityConfig
	// Debug exposes the internal cause of 5xx errors in responses.
	Debug bool
}

// RegisterMiddlewares attaches global middlewares such as error handling, logging and edge protection.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(logger, metrics, cfg.Debug))
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(helmet.New())
	app.Use(cors.New(corsConfig(cfg.Security.AllowedOrigins)))
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	if cfg.Security.RateLimitPerMin > 0 {
		app.Use("/api", newIPRateLimiter(cfg.Security.RateLimitPerMin, cfg.Security.RateLimitBurst).Handler)
	}
}

// ErrorHandler renders errors that escape the middleware chain, such as
// body limit violations raised by fiber itself.
func ErrorHandler(logger *zap.Logger, debugMode bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, logger, nil, toDomainError(err), debugMode)
	}
}

// corsConfig allows credentials only for an explicit origin list; fiber rejects
// credentials combined with a wildcard.
func corsConfig(origins []string) cors.Config {
	allow := strings.Join(origins, ",")
	credentials := allow != "" && allow != "*"
	if allow == "" {
		allow = "*"
	}
	return cors.Config{
		AllowOrigins:     allow,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: credentials,
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics, debugMode bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				_ = writeError(c, logger, metrics, toDomainError(err), debugMode)
				err = nil
			}
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, domainErr *apperrors.DomainError, debugMode bool) error {
	metrics.RecordError(routePath(c), c.Method(), domainErr.Code)

	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	if domainErr.HTTPStatus >= 500 {
		logger.Error("request failed",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.Error(domainErr))
		if debugMode && domainErr.Err != nil {
			body["debug"] = domainErr.Err.Error()
		}
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}

// toDomainError extends apperrors.ToDomainError with fiber's own errors.
func toDomainError(err error) *apperrors.DomainError {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusBadRequest:
			return apperrors.NewValidationError(fe.Message, nil).(*apperrors.DomainError)
		case fiber.StatusNotFound:
			return apperrors.NewDomainError(apperrors.CodeNotFound, fe.Message, fe.Code, nil)
		case fiber.StatusRequestEntityTooLarge:
			return apperrors.NewDomainError("PAYLOAD_TOO_LARGE", fe.Message, fe.Code, nil)
		case fiber.StatusMethodNotAllowed:
			return apperrors.NewDomainError("METHOD_NOT_ALLOWED", fe.Message, fe.Code, nil)
		case fiber.StatusTooManyRequests:
			return apperrors.NewTooManyRequests(fe.Message).(*apperrors.DomainError)
		}
		if fe.Code < 500 {
			return apperrors.NewDomainError("HTTP_"+strings.ReplaceAll(strings.ToUpper(fe.Message), " ", "_"), fe.Message, fe.Code, nil)
		}
	}
	return apperrors.ToDomainError(err)
}

func routePath(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return c.Path()
}
