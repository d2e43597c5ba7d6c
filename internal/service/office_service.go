package service

import (
	"context"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/repository"
)

// OfficeService manages offices. Mutations are reserved to the super role by route metadata.
type OfficeService struct {
	offices repository.OfficeRepository
}

// NewOfficeService constructs the service.
func NewOfficeService(offices repository.OfficeRepository) *OfficeService {
	return &OfficeService{offices: offices}
}

// List returns every office for unrestricted callers, otherwise only the caller's own.
func (s *OfficeService) List(ctx context.Context, scope auth.ScopeFilter, filter repository.ListFilter) (repository.Page[domain.Office], error) {
	filter.OfficeID = scope.Office(filter.OfficeID)
	page, err := s.offices.List(ctx, filter)
	if err != nil {
		return page, storeErr(err, "office")
	}
	return page, nil
}

func (s *OfficeService) Get(ctx context.Context, scope auth.ScopeFilter, id string) (*domain.Office, error) {
	if err := ensureVisible(scope, id, "office"); err != nil {
		return nil, err
	}
	office, err := s.offices.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "office")
	}
	return office, nil
}

func (s *OfficeService) Create(ctx context.Context, office *domain.Office) error {
	return storeErr(s.offices.Create(ctx, office), "office")
}

// Update applies patch to the stored office. Empty patch fields keep their value.
func (s *OfficeService) Update(ctx context.Context, id string, patch domain.Office) (*domain.Office, error) {
	office, err := s.offices.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "office")
	}
	setIfNotEmpty(&office.Name, patch.Name)
	setIfNotEmpty(&office.Address, patch.Address)
	setIfNotEmpty(&office.City, patch.City)
	setIfNotEmpty(&office.State, patch.State)
	setIfNotEmpty(&office.Country, patch.Country)
	if err := s.offices.Update(ctx, office); err != nil {
		return nil, storeErr(err, "office")
	}
	return office, nil
}

func (s *OfficeService) Delete(ctx context.Context, id string) error {
	return storeErr(s.offices.Delete(ctx, id), "office")
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
