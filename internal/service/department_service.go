package service

import (
	"context"
	"strings"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/repository"
)

// DepartmentService manages office departments and their designations.
type DepartmentService struct {
	departments  repository.DepartmentRepository
	designations repository.DesignationRepository
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, designations repository.DesignationRepository) *DepartmentService {
	return &DepartmentService{departments: departments, designations: designations}
}

func (s *DepartmentService) List(ctx context.Context, scope auth.ScopeFilter, filter repository.ListFilter) (repository.Page[domain.Department], error) {
	filter.OfficeID = scope.Office(filter.OfficeID)
	page, err := s.departments.List(ctx, filter)
	return page, storeErr(err, "department")
}

func (s *DepartmentService) Get(ctx context.Context, scope auth.ScopeFilter, id string) (*domain.Department, error) {
	dept, err := s.departments.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "department")
	}
	if err := ensureVisible(scope, dept.OfficeID, "department"); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Create(ctx context.Context, scope auth.ScopeFilter, officeID, name string) (*domain.Department, error) {
	office, err := targetOffice(scope, officeID)
	if err != nil {
		return nil, err
	}
	dept := &domain.Department{OfficeID: office, Name: strings.TrimSpace(name)}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, storeErr(err, "department")
	}
	return dept, nil
}

func (s *DepartmentService) Rename(ctx context.Context, scope auth.ScopeFilter, id, name string) (*domain.Department, error) {
	dept, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	dept.Name = strings.TrimSpace(name)
	if err := s.departments.Update(ctx, dept); err != nil {
		return nil, storeErr(err, "department")
	}
	return dept, nil
}

func (s *DepartmentService) Delete(ctx context.Context, scope auth.ScopeFilter, id string) error {
	if _, err := s.Get(ctx, scope, id); err != nil {
		return err
	}
	return storeErr(s.departments.Delete(ctx, id), "department")
}

func (s *DepartmentService) ListDesignations(ctx context.Context, scope auth.ScopeFilter, filter repository.DesignationFilter) (repository.Page[domain.Designation], error) {
	filter.OfficeID = scope.Office(filter.OfficeID)
	page, err := s.designations.List(ctx, filter)
	return page, storeErr(err, "designation")
}

func (s *DepartmentService) GetDesignation(ctx context.Context, scope auth.ScopeFilter, id string) (*domain.Designation, error) {
	d, err := s.designations.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "designation")
	}
	if err := ensureVisible(scope, d.OfficeID, "designation"); err != nil {
		return nil, err
	}
	return d, nil
}

// CreateDesignation adds a title to a department the caller can see.
func (s *DepartmentService) CreateDesignation(ctx context.Context, scope auth.ScopeFilter, departmentID, title string) (*domain.Designation, error) {
	dept, err := s.Get(ctx, scope, departmentID)
	if err != nil {
		return nil, err
	}
	d := &domain.Designation{DepartmentID: dept.ID, OfficeID: dept.OfficeID, Title: strings.TrimSpace(title)}
	if err := s.designations.Create(ctx, d); err != nil {
		return nil, storeErr(err, "designation")
	}
	return d, nil
}

// UpdateDesignation renames a designation and optionally moves it to another
// department of the same office.
func (s *DepartmentService) UpdateDesignation(ctx context.Context, scope auth.ScopeFilter, id, departmentID, title string) (*domain.Designation, error) {
	d, err := s.GetDesignation(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if departmentID != "" && departmentID != d.DepartmentID {
		dept, err := s.Get(ctx, scope, departmentID)
		if err != nil {
			return nil, err
		}
		if !auth.SameOffice(dept.OfficeID, d.OfficeID) {
			return nil, auth.Deny(auth.ReasonOfficeMismatch, nil)
		}
		d.DepartmentID = dept.ID
	}
	if t := strings.TrimSpace(title); t != "" {
		d.Title = t
	}
	if err := s.designations.Update(ctx, d); err != nil {
		return nil, storeErr(err, "designation")
	}
	return d, nil
}

func (s *DepartmentService) DeleteDesignation(ctx context.Context, scope auth.ScopeFilter, id string) error {
	if _, err := s.GetDesignation(ctx, scope, id); err != nil {
		return err
	}
	return storeErr(s.designations.Delete(ctx, id), "designation")
}
