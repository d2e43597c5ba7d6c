package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/invento/inventory-api/internal/api/dto"
	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/service"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// OfficesHandler exposes office endpoints.
type OfficesHandler struct {
	offices *service.OfficeService
}

func NewOfficesHandler(offices *service.OfficeService) *OfficesHandler {
	return &OfficesHandler{offices: offices}
}

// List handles GET /api/offices.
func (h *OfficesHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	page, err := h.offices.List(c.UserContext(), auth.ScopeFromContext(c), q.Filter())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(page, dto.NewOfficeResponse))
}

// Get handles GET /api/offices/:officeId.
func (h *OfficesHandler) Get(c *fiber.Ctx) error {
	office, err := h.offices.Get(c.UserContext(), auth.ScopeFromContext(c), c.Params("officeId"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewOfficeResponse(office))
}

// Create handles POST /api/offices.
func (h *OfficesHandler) Create(c *fiber.Ctx) error {
	var req dto.OfficeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Name == "" {
		return apperrors.NewValidationError("payload validation failed", map[string]any{"name": "required"})
	}
	office := req.Office()
	if err := h.offices.Create(c.UserContext(), &office); err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewOfficeResponse(&office))
}

// Update handles PUT /api/offices/:officeId.
func (h *OfficesHandler) Update(c *fiber.Ctx) error {
	var req dto.OfficeRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	office, err := h.offices.Update(c.UserContext(), c.Params("officeId"), req.Office())
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewOfficeResponse(office))
}

// Delete handles DELETE /api/offices/:officeId.
func (h *OfficesHandler) Delete(c *fiber.Ctx) error {
	if err := h.offices.Delete(c.UserContext(), c.Params("officeId")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
