package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// InventoryInput carries writable item fields. Nil pointers are left unchanged on update.
type InventoryInput struct {
	OfficeID     string
	Name         *string
	Description  *string
	Qty          *int
	ItemType     *domain.ItemType
	SerialNumber *string
	BillNumber   *string
	Value        *float64
	IsReusable   *bool
	Remarks      *string
}

// InventoryService manages items and their issue/return lifecycle.
type InventoryService struct {
	items      repository.InventoryRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// InventoryDependencies encapsulates collaborators for the inventory service.
type InventoryDependencies struct {
	InventoryRepo repository.InventoryRepository
	UserRepo      repository.UserRepository
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// NewInventoryService constructs the service.
func NewInventoryService(deps InventoryDependencies) *InventoryService {
	return &InventoryService{
		items:      deps.InventoryRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		logger:     nopIfNil(deps.Logger),
		now:        time.Now,
	}
}

// List returns items visible under scope. Restricted scopes never see other offices.
func (s *InventoryService) List(ctx context.Context, scope auth.ScopeFilter, filter repository.InventoryFilter) (repository.Page[domain.InventoryItem], error) {
	filter.OfficeID = scope.Office(filter.OfficeID)
	page, err := s.items.List(ctx, filter)
	return page, storeErr(err, "inventory item")
}

func (s *InventoryService) Get(ctx context.Context, scope auth.ScopeFilter, id string) (*domain.InventoryItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "inventory item")
	}
	if err := ensureVisible(scope, item.OfficeID, "inventory item"); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *InventoryService) Create(ctx context.Context, actor *domain.Identity, scope auth.ScopeFilter, in InventoryInput) (*domain.InventoryItem, error) {
	office, err := targetOffice(scope, in.OfficeID)
	if err != nil {
		return nil, err
	}
	item := &domain.InventoryItem{OfficeID: office, Qty: 1, Status: domain.InventoryAvailable}
	applyInventory(item, in)
	if strings.TrimSpace(item.Name) == "" || item.ItemType == "" {
		return nil, apperrors.NewValidationError("name and item_type are required", nil)
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, storeErr(err, "inventory item")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventInventoryCreated, item.ID, item.OfficeID, events.ActorFrom(actor), nil))
	return item, nil
}

func (s *InventoryService) Update(ctx context.Context, scope auth.ScopeFilter, id string, in InventoryInput) (*domain.InventoryItem, error) {
	item, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	applyInventory(item, in)
	if err := s.items.Update(ctx, item); err != nil {
		return nil, storeErr(err, "inventory item")
	}
	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, actor *domain.Identity, scope auth.ScopeFilter, id string) error {
	item, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if item.Status == domain.InventoryIssued {
		return apperrors.NewConflict("item is issued; return it before deleting", map[string]any{"status": item.Status})
	}
	if err := s.items.Delete(ctx, id); err != nil {
		return storeErr(err, "inventory item")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventInventoryDeleted, item.ID, item.OfficeID, events.ActorFrom(actor), nil))
	return nil
}

// Issue hands an available item to a user of the same office. The caller is recorded as issuer.
func (s *InventoryService) Issue(ctx context.Context, actor *domain.Identity, scope auth.ScopeFilter, id, issuedTo string) (*domain.InventoryItem, error) {
	if actor == nil {
		return nil, auth.Deny(auth.ReasonIdentityNotFound, nil)
	}
	item, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	recipient, err := s.users.GetByID(ctx, issuedTo)
	if err != nil {
		return nil, linkErr(err, "issued_to")
	}
	if !auth.SameOffice(recipient.OfficeID, item.OfficeID) {
		return nil, apperrors.NewValidationError("recipient belongs to another office", map[string]any{"issued_to": issuedTo})
	}
	if err := item.Issue(recipient.ID, actor.SubjectID, s.now().UTC()); err != nil {
		return nil, transitionErr(err)
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, storeErr(err, "inventory item")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventInventoryIssued, item.ID, item.OfficeID, events.ActorFrom(actor),
		events.InventoryIssuedPayload{IssuedTo: recipient.ID, IssuedBy: actor.SubjectID}))
	return item, nil
}

// Return takes an issued item back into stock.
func (s *InventoryService) Return(ctx context.Context, actor *domain.Identity, scope auth.ScopeFilter, id string) (*domain.InventoryItem, error) {
	item, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if err := item.Return(s.now().UTC()); err != nil {
		return nil, transitionErr(err)
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, storeErr(err, "inventory item")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventInventoryReturned, item.ID, item.OfficeID, events.ActorFrom(actor), nil))
	return item, nil
}

// SetStatus moves an item to repair, disposed or available.
func (s *InventoryService) SetStatus(ctx context.Context, actor *domain.Identity, scope auth.ScopeFilter, id string, status domain.InventoryStatus) (*domain.InventoryItem, error) {
	item, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	old := item.Status
	if err := item.SetStatus(status, s.now().UTC()); err != nil {
		return nil, transitionErr(err)
	}
	if err := s.items.Update(ctx, item); err != nil {
		return nil, storeErr(err, "inventory item")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventInventoryStatusChanged, item.ID, item.OfficeID, events.ActorFrom(actor),
		events.InventoryStatusChangedPayload{OldStatus: old, NewStatus: status}))
	return item, nil
}

func transitionErr(err error) error {
	if errors.Is(err, domain.ErrInvalidTransition) {
		return apperrors.NewConflict(err.Error(), nil)
	}
	return apperrors.MapError(err)
}

func applyInventory(item *domain.InventoryItem, in InventoryInput) {
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Qty != nil {
		item.Qty = *in.Qty
	}
	if in.ItemType != nil {
		item.ItemType = *in.ItemType
	}
	if in.SerialNumber != nil {
		item.SerialNumber = *in.SerialNumber
	}
	if in.BillNumber != nil {
		item.BillNumber = *in.BillNumber
	}
	if in.Value != nil {
		item.Value = in.Value
	}
	if in.IsReusable != nil {
		item.IsReusable = *in.IsReusable
	}
	if in.Remarks != nil {
		item.Remarks = *in.Remarks
	}
}
