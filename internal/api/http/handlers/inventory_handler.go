package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/invento/inventory-api/internal/api/dto"
	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/repository"
	"github.com/invento/inventory-api/internal/service"
)

// InventoryHandler exposes inventory endpoints and the issue/return lifecycle.
type InventoryHandler struct {
	inventory *service.InventoryService
}

func NewInventoryHandler(inventory *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// List handles GET /api/inventory and GET /api/offices/:officeId/inventory.
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var q dto.InventoryQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	filter := repository.InventoryFilter{
		ListFilter: q.Filter(),
		Status:     domain.InventoryStatus(q.Status),
		ItemType:   domain.ItemType(q.ItemType),
	}
	if office := c.Params("officeId"); office != "" {
		filter.OfficeID = office
	}
	page, err := h.inventory.List(c.UserContext(), auth.ScopeFromContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(page, dto.NewInventoryResponse))
}

func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	item, err := h.inventory.Get(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewInventoryResponse(item))
}

func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.CreateInventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	itemType := domain.ItemType(req.ItemType)
	in := service.InventoryInput{
		OfficeID:     req.OfficeID,
		Name:         &req.Name,
		Description:  &req.Description,
		Qty:          req.Qty,
		ItemType:     &itemType,
		SerialNumber: &req.SerialNumber,
		BillNumber:   &req.BillNumber,
		Value:        req.Value,
		IsReusable:   req.IsReusable,
		Remarks:      &req.Remarks,
	}
	item, err := h.inventory.Create(c.UserContext(), identity, auth.ScopeFromContext(c), in)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewInventoryResponse(item))
}

func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateInventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	in := service.InventoryInput{
		Name:         req.Name,
		Description:  req.Description,
		Qty:          req.Qty,
		SerialNumber: req.SerialNumber,
		BillNumber:   req.BillNumber,
		Value:        req.Value,
		IsReusable:   req.IsReusable,
		Remarks:      req.Remarks,
	}
	if req.ItemType != nil {
		t := domain.ItemType(*req.ItemType)
		in.ItemType = &t
	}
	item, err := h.inventory.Update(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewInventoryResponse(item))
}

func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.inventory.Delete(c.UserContext(), identity, auth.ScopeFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Issue handles POST /api/inventory/:id/issue.
func (h *InventoryHandler) Issue(c *fiber.Ctx) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.IssueInventoryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.inventory.Issue(c.UserContext(), identity, auth.ScopeFromContext(c), c.Params("id"), req.IssuedTo)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewInventoryResponse(item))
}

// Return handles POST /api/inventory/:id/return.
func (h *InventoryHandler) Return(c *fiber.Ctx) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}
	item, err := h.inventory.Return(c.UserContext(), identity, auth.ScopeFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewInventoryResponse(item))
}

// SetStatus handles PATCH /api/inventory/:id/status.
func (h *InventoryHandler) SetStatus(c *fiber.Ctx) error {
	identity, err := actor(c)
	if err != nil {
		return err
	}
	var req dto.InventoryStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	item, err := h.inventory.SetStatus(c.UserContext(), identity, auth.ScopeFromContext(c), c.Params("id"), domain.InventoryStatus(req.Status))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewInventoryResponse(item))
}
