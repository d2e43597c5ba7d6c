package service

import (
	"context"
	"time"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// EmployeeInput carries the writable employee fields. Nil pointers are left unchanged on update.
type EmployeeInput struct {
	OfficeID      string
	UserID        *string
	DepartmentID  *string
	DesignationID *string
	FirstName     string
	LastName      string
	MobileNumber  *string
	DateOfBirth   *time.Time
	Gender        *domain.Gender
	HireDate      *time.Time
}

// EmployeeService manages HR records within an office.
type EmployeeService struct {
	employees    repository.EmployeeRepository
	departments  repository.DepartmentRepository
	designations repository.DesignationRepository
	users        repository.UserRepository
}

// EmployeeDependencies encapsulates repositories required by the employee service.
type EmployeeDependencies struct {
	EmployeeRepo    repository.EmployeeRepository
	DepartmentRepo  repository.DepartmentRepository
	DesignationRepo repository.DesignationRepository
	UserRepo        repository.UserRepository
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	return &EmployeeService{
		employees:    deps.EmployeeRepo,
		departments:  deps.DepartmentRepo,
		designations: deps.DesignationRepo,
		users:        deps.UserRepo,
	}
}

func (s *EmployeeService) List(ctx context.Context, scope auth.ScopeFilter, filter repository.EmployeeFilter) (repository.Page[domain.Employee], error) {
	filter.OfficeID = scope.Office(filter.OfficeID)
	page, err := s.employees.List(ctx, filter)
	return page, storeErr(err, "employee")
}

func (s *EmployeeService) Get(ctx context.Context, scope auth.ScopeFilter, id string) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "employee")
	}
	if err := ensureVisible(scope, e.OfficeID, "employee"); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EmployeeService) Create(ctx context.Context, scope auth.ScopeFilter, in EmployeeInput) (*domain.Employee, error) {
	office, err := targetOffice(scope, in.OfficeID)
	if err != nil {
		return nil, err
	}
	e := &domain.Employee{OfficeID: office}
	apply(e, in)
	if err := s.checkLinks(ctx, e); err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, storeErr(err, "employee")
	}
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, scope auth.ScopeFilter, id string, in EmployeeInput) (*domain.Employee, error) {
	e, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	apply(e, in)
	if err := s.checkLinks(ctx, e); err != nil {
		return nil, err
	}
	if err := s.employees.Update(ctx, e); err != nil {
		return nil, storeErr(err, "employee")
	}
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, scope auth.ScopeFilter, id string) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	return storeErr(s.employees.Delete(ctx, id), "employee")
}

// checkLinks requires the linked user, department and designation to live in the employee's office.
func (s *EmployeeService) checkLinks(ctx context.Context, e *domain.Employee) error {
	if e.UserID != nil {
		user, err := s.users.GetByID(ctx, *e.UserID)
		if err != nil {
			return linkErr(err, "user_id")
		}
		if !auth.SameOffice(user.OfficeID, e.OfficeID) {
			return apperrors.NewValidationError("user belongs to another office", map[string]any{"user_id": *e.UserID})
		}
	}
	if e.DepartmentID != nil {
		dept, err := s.departments.GetByID(ctx, *e.DepartmentID)
		if err != nil {
			return linkErr(err, "department_id")
		}
		if !auth.SameOffice(dept.OfficeID, e.OfficeID) {
			return apperrors.NewValidationError("department belongs to another office", map[string]any{"department_id": *e.DepartmentID})
		}
	}
	if e.DesignationID != nil {
		d, err := s.designations.GetByID(ctx, *e.DesignationID)
		if err != nil {
			return linkErr(err, "designation_id")
		}
		if e.DepartmentID != nil && d.DepartmentID != *e.DepartmentID {
			return apperrors.NewValidationError("designation belongs to another department", map[string]any{"designation_id": *e.DesignationID})
		}
		if !auth.SameOffice(d.OfficeID, e.OfficeID) {
			return apperrors.NewValidationError("designation belongs to another office", map[string]any{"designation_id": *e.DesignationID})
		}
	}
	return nil
}

func linkErr(err error, field string) error {
	mapped := storeErr(err, field)
	if de := apperrors.ToDomainError(mapped); de.Code == apperrors.CodeNotFound {
		return apperrors.NewValidationError("referenced resource does not exist", map[string]any{field: "not found"})
	}
	return mapped
}

func apply(e *domain.Employee, in EmployeeInput) {
	if in.FirstName != "" {
		e.FirstName = in.FirstName
	}
	if in.LastName != "" {
		e.LastName = in.LastName
	}
	if in.UserID != nil {
		e.UserID = in.UserID
	}
	if in.DepartmentID != nil {
		e.DepartmentID = in.DepartmentID
	}
	if in.DesignationID != nil {
		e.DesignationID = in.DesignationID
	}
	if in.MobileNumber != nil {
		e.MobileNumber = in.MobileNumber
	}
	if in.DateOfBirth != nil {
		e.DateOfBirth = in.DateOfBirth
	}
	if in.Gender != nil {
		e.Gender = in.Gender
	}
	if in.HireDate != nil {
		e.HireDate = in.HireDate
	}
}
