package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

type inventoryFixture struct {
	svc        *InventoryService
	items      *fakeInventory
	users      *fakeUsers
	dispatcher *recordingDispatcher
	admin      *domain.Identity
}

func newInventoryFixture() *inventoryFixture {
	items := newFakeInventory()
	users := newFakeUsers()
	users.add(&domain.User{ID: "u-o1", OfficeID: "O1", Status: domain.UserStatusActive})
	users.add(&domain.User{ID: "u-o2", OfficeID: "O2", Status: domain.UserStatusActive})
	dispatcher := &recordingDispatcher{}
	svc := NewInventoryService(InventoryDependencies{InventoryRepo: items, UserRepo: users, Dispatcher: dispatcher})
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return &inventoryFixture{
		svc: svc, items: items, users: users, dispatcher: dispatcher,
		admin: &domain.Identity{SubjectID: "u-admin", RoleName: "admin", OfficeID: "O1"},
	}
}

func (f *inventoryFixture) seed(office, name string) *domain.InventoryItem {
	item := &domain.InventoryItem{OfficeID: office, Name: name, ItemType: domain.ItemLaptop, Status: domain.InventoryAvailable}
	_ = f.items.Create(context.Background(), item)
	return item
}

func TestInventoryListHonorsOfficeScope(t *testing.T) {
	f := newInventoryFixture()
	f.seed("O1", "laptop-1")
	f.seed("O1", "laptop-2")
	f.seed("O2", "laptop-3")

	page, err := f.svc.List(context.Background(), auth.ScopeFilter{OfficeID: "O1"}, repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Equal(t, "O1", item.OfficeID)
	}

	// a restricted scope ignores a requested office
	page, err = f.svc.List(context.Background(), auth.ScopeFilter{OfficeID: "O1"},
		repository.InventoryFilter{ListFilter: repository.ListFilter{OfficeID: "O2"}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	page, err = f.svc.List(context.Background(), auth.ScopeFilter{Unrestricted: true}, repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
}

func TestInventoryListWithoutGrantedScopeIsEmpty(t *testing.T) {
	f := newInventoryFixture()
	f.seed("O1", "laptop-1")
	f.seed("O2", "laptop-2")

	page, err := f.svc.List(context.Background(), auth.ScopeFilter{}, repository.InventoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	page, err = f.svc.List(context.Background(), auth.ScopeFilter{},
		repository.InventoryFilter{ListFilter: repository.ListFilter{OfficeID: "O2"}})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestInventoryGetHidesOtherOffices(t *testing.T) {
	f := newInventoryFixture()
	other := f.seed("O2", "tv")

	_, err := f.svc.Get(context.Background(), auth.ScopeFilter{OfficeID: "O1"}, other.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.ToDomainError(err).HTTPStatus)

	got, err := f.svc.Get(context.Background(), auth.ScopeFilter{Unrestricted: true}, other.ID)
	require.NoError(t, err)
	assert.Equal(t, "tv", got.Name)
}

func TestInventoryCreateUsesCallerOffice(t *testing.T) {
	f := newInventoryFixture()
	name, kind := "chair", domain.ItemChair

	item, err := f.svc.Create(context.Background(), f.admin, auth.ScopeFilter{OfficeID: "O1"}, InventoryInput{Name: &name, ItemType: &kind})
	require.NoError(t, err)
	assert.Equal(t, "O1", item.OfficeID)
	assert.Equal(t, domain.InventoryAvailable, item.Status)

	_, err = f.svc.Create(context.Background(), f.admin, auth.ScopeFilter{OfficeID: "O1"}, InventoryInput{OfficeID: "O2", Name: &name, ItemType: &kind})
	assert.Equal(t, string(auth.ReasonOfficeMismatch), apperrors.ToDomainError(err).Code)

	_, err = f.svc.Create(context.Background(), f.admin, auth.ScopeFilter{Unrestricted: true}, InventoryInput{Name: &name, ItemType: &kind})
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)
}

func TestInventoryIssueAndReturn(t *testing.T) {
	f := newInventoryFixture()
	item := f.seed("O1", "laptop")
	scope := auth.ScopeFilter{OfficeID: "O1"}

	issued, err := f.svc.Issue(context.Background(), f.admin, scope, item.ID, "u-o1")
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryIssued, issued.Status)
	require.NotNil(t, issued.IssuedTo)
	assert.Equal(t, "u-o1", *issued.IssuedTo)
	assert.Equal(t, "u-admin", *issued.IssuedBy)
	assert.NotNil(t, issued.IssuedDate)

	_, err = f.svc.Issue(context.Background(), f.admin, scope, item.ID, "u-o1")
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)

	returned, err := f.svc.Return(context.Background(), f.admin, scope, item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryAvailable, returned.Status)
	assert.Nil(t, returned.IssuedTo)
	assert.Nil(t, returned.IssuedDate)
	assert.NotNil(t, returned.ReturnDate)

	stored, _ := f.items.GetByID(context.Background(), item.ID)
	assert.Equal(t, domain.InventoryAvailable, stored.Status)
	assert.Equal(t, []events.EventType{events.EventInventoryIssued, events.EventInventoryReturned}, f.dispatcher.types())
}

func TestInventoryIssueRejectsRecipientFromOtherOffice(t *testing.T) {
	f := newInventoryFixture()
	item := f.seed("O1", "laptop")

	_, err := f.svc.Issue(context.Background(), f.admin, auth.ScopeFilter{OfficeID: "O1"}, item.ID, "u-o2")
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)

	_, err = f.svc.Issue(context.Background(), f.admin, auth.ScopeFilter{OfficeID: "O1"}, item.ID, "missing")
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)
}

func TestInventorySetStatusAndDelete(t *testing.T) {
	f := newInventoryFixture()
	item := f.seed("O1", "fan")
	scope := auth.ScopeFilter{OfficeID: "O1"}

	_, err := f.svc.Issue(context.Background(), f.admin, scope, item.ID, "u-o1")
	require.NoError(t, err)
	err = f.svc.Delete(context.Background(), f.admin, scope, item.ID)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)

	repaired, err := f.svc.SetStatus(context.Background(), f.admin, scope, item.ID, domain.InventoryRepair)
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryRepair, repaired.Status)
	assert.Nil(t, repaired.IssuedTo)

	_, err = f.svc.SetStatus(context.Background(), f.admin, scope, item.ID, domain.InventoryIssued)
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)

	require.NoError(t, f.svc.Delete(context.Background(), f.admin, scope, item.ID))
}
