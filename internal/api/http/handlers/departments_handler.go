package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/invento/inventory-api/internal/api/dto"
	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/repository"
	"github.com/invento/inventory-api/internal/service"
)

// DepartmentsHandler exposes department and designation endpoints.
type DepartmentsHandler struct {
	departments *service.DepartmentService
}

func NewDepartmentsHandler(departments *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{departments: departments}
}

func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	page, err := h.departments.List(c.UserContext(), auth.ScopeFromContext(c), q.Filter())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(page, dto.NewDepartmentResponse))
}

func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	dept, err := h.departments.Get(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDepartmentResponse(dept))
}

func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dept, err := h.departments.Create(c.UserContext(), auth.ScopeFromContext(c), req.OfficeID, req.Name)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewDepartmentResponse(dept))
}

// Update handles PUT /api/departments/:id. Only the name can change.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dept, err := h.departments.Rename(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDepartmentResponse(dept))
}

func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.departments.Delete(c.UserContext(), auth.ScopeFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListDesignations handles GET /api/designations, optionally filtered by department_id.
func (h *DepartmentsHandler) ListDesignations(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	filter := repository.DesignationFilter{ListFilter: q.Filter(), DepartmentID: c.Query("department_id")}
	page, err := h.departments.ListDesignations(c.UserContext(), auth.ScopeFromContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(page, dto.NewDesignationResponse))
}

func (h *DepartmentsHandler) GetDesignation(c *fiber.Ctx) error {
	des, err := h.departments.GetDesignation(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDesignationResponse(des))
}

func (h *DepartmentsHandler) CreateDesignation(c *fiber.Ctx) error {
	var req dto.DesignationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	des, err := h.departments.CreateDesignation(c.UserContext(), auth.ScopeFromContext(c), req.DepartmentID, req.Title)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewDesignationResponse(des))
}

func (h *DepartmentsHandler) UpdateDesignation(c *fiber.Ctx) error {
	var req dto.DesignationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	des, err := h.departments.UpdateDesignation(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"), req.DepartmentID, req.Title)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewDesignationResponse(des))
}

func (h *DepartmentsHandler) DeleteDesignation(c *fiber.Ctx) error {
	if err := h.departments.DeleteDesignation(c.UserContext(), auth.ScopeFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
