package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/invento/inventory-api/internal/api/dto"
	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// bind decodes the JSON body into req and validates it.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	return dto.Validate(req)
}

// bindQuery decodes and validates query string parameters.
func bindQuery(c *fiber.Ctx, req any) error {
	if err := c.QueryParser(req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid query")
	}
	return dto.Validate(req)
}

// actor returns the identity attached by the request gate.
func actor(c *fiber.Ctx) (*domain.Identity, error) {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return identity, nil
}

func data(c *fiber.Ctx, status int, payload any) error {
	return c.Status(status).JSON(fiber.Map{"data": payload})
}
