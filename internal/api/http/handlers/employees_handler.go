package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/invento/inventory-api/internal/api/dto"
	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/repository"
	"github.com/invento/inventory-api/internal/service"
)

// EmployeesHandler exposes employee endpoints.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

func NewEmployeesHandler(employees *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employees}
}

func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	var q dto.ListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	filter := repository.EmployeeFilter{ListFilter: q.Filter(), DepartmentID: c.Query("department_id")}
	page, err := h.employees.List(c.UserContext(), auth.ScopeFromContext(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(page, dto.NewEmployeeResponse))
}

func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	emp, err := h.employees.Get(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewEmployeeResponse(emp))
}

func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	in, err := employeeInput(c)
	if err != nil {
		return err
	}
	emp, err := h.employees.Create(c.UserContext(), auth.ScopeFromContext(c), in)
	if err != nil {
		return err
	}
	return data(c, http.StatusCreated, dto.NewEmployeeResponse(emp))
}

func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	in, err := employeeInput(c)
	if err != nil {
		return err
	}
	emp, err := h.employees.Update(c.UserContext(), auth.ScopeFromContext(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return data(c, http.StatusOK, dto.NewEmployeeResponse(emp))
}

func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	if err := h.employees.Delete(c.UserContext(), auth.ScopeFromContext(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func employeeInput(c *fiber.Ctx) (service.EmployeeInput, error) {
	var req dto.EmployeeRequest
	if err := bind(c, &req); err != nil {
		return service.EmployeeInput{}, err
	}
	fields, err := req.Fields()
	if err != nil {
		return service.EmployeeInput{}, err
	}
	return service.EmployeeInput(fields), nil
}
