package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/repository"
)

type idSeq struct {
	mu sync.Mutex
	n  int
}

func (s *idSeq) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", prefix, s.n)
}

type fakeUsers struct {
	seq  idSeq
	byID map[string]*domain.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[string]*domain.User{}} }

func (f *fakeUsers) add(u *domain.User) *domain.User {
	cp := *u
	f.byID[u.ID] = &cp
	return u
}

func (f *fakeUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return fmt.Errorf("duplicate email")
		}
	}
	u.ID = f.seq.next("user")
	f.add(u)
	return nil
}

func (f *fakeUsers) Update(_ context.Context, u *domain.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.add(u)
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) List(_ context.Context, filter repository.ListFilter) (repository.Page[domain.User], error) {
	var out []domain.User
	for _, u := range f.byID {
		if filter.OfficeID == "" || u.OfficeID == filter.OfficeID {
			out = append(out, *u)
		}
	}
	return repository.NewPage(out, len(out), filter), nil
}

func (f *fakeUsers) FindIdentityByEmail(ctx context.Context, email string) (*domain.IdentityRecord, error) {
	u, err := f.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &domain.IdentityRecord{
		Identity: domain.Identity{
			SubjectID: u.ID, Email: u.Email, Name: u.Name, RoleID: u.RoleID,
			RoleName: u.RoleName, OfficeID: u.OfficeID, Status: u.Status,
		},
		PasswordHash: u.PasswordHash,
	}, nil
}

func (f *fakeUsers) FindIdentityByID(ctx context.Context, id string) (*domain.Identity, error) {
	u, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.Identity{SubjectID: u.ID, Email: u.Email, RoleID: u.RoleID, RoleName: u.RoleName, OfficeID: u.OfficeID, Status: u.Status}, nil
}

type fakeRoles struct {
	byID map[string]*domain.Role
}

func newFakeRoles(names ...string) *fakeRoles {
	f := &fakeRoles{byID: map[string]*domain.Role{}}
	for _, n := range names {
		f.byID["role-"+n] = &domain.Role{ID: "role-" + n, Name: n}
	}
	return f
}

func (f *fakeRoles) Create(_ context.Context, r *domain.Role) error {
	r.ID = "role-" + r.Name
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRoles) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRoles) GetByID(_ context.Context, id string) (*domain.Role, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRoles) GetByName(_ context.Context, name string) (*domain.Role, error) {
	for _, r := range f.byID {
		if r.Name == name {
			cp := *r
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRoles) List(context.Context) ([]domain.Role, error) {
	var out []domain.Role
	for _, r := range f.byID {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRoles) FindRolePermissions(_ context.Context, roleID string) ([]string, error) {
	if r, ok := f.byID[roleID]; ok {
		return r.Permissions, nil
	}
	return nil, nil
}

func (f *fakeRoles) SetRolePermissions(_ context.Context, roleID string, perms []string) error {
	r, ok := f.byID[roleID]
	if !ok {
		return pgx.ErrNoRows
	}
	for _, p := range perms {
		if p == "bogus" {
			return repository.ErrUnknownPermission
		}
	}
	r.Permissions = perms
	return nil
}

type fakeOffices struct {
	byID map[string]*domain.Office
}

func newFakeOffices(ids ...string) *fakeOffices {
	f := &fakeOffices{byID: map[string]*domain.Office{}}
	for _, id := range ids {
		f.byID[id] = &domain.Office{ID: id, Name: "Office " + id}
	}
	return f
}

func (f *fakeOffices) Create(_ context.Context, o *domain.Office) error {
	o.ID = "office-" + o.Name
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOffices) Update(_ context.Context, o *domain.Office) error {
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOffices) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeOffices) GetByID(_ context.Context, id string) (*domain.Office, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOffices) GetByName(_ context.Context, name string) (*domain.Office, error) {
	for _, o := range f.byID {
		if o.Name == name {
			cp := *o
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeOffices) List(_ context.Context, filter repository.ListFilter) (repository.Page[domain.Office], error) {
	var out []domain.Office
	for _, o := range f.byID {
		if filter.OfficeID == "" || o.ID == filter.OfficeID {
			out = append(out, *o)
		}
	}
	return repository.NewPage(out, len(out), filter), nil
}

type fakeInventory struct {
	seq     idSeq
	byID    map[string]*domain.InventoryItem
	filters []repository.InventoryFilter
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{byID: map[string]*domain.InventoryItem{}}
}

func (f *fakeInventory) Create(_ context.Context, item *domain.InventoryItem) error {
	item.ID = f.seq.next("item")
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeInventory) Update(_ context.Context, item *domain.InventoryItem) error {
	if _, ok := f.byID[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *item
	f.byID[item.ID] = &cp
	return nil
}

func (f *fakeInventory) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeInventory) GetByID(_ context.Context, id string) (*domain.InventoryItem, error) {
	item, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *item
	return &cp, nil
}

func (f *fakeInventory) List(_ context.Context, filter repository.InventoryFilter) (repository.Page[domain.InventoryItem], error) {
	f.filters = append(f.filters, filter)
	var out []domain.InventoryItem
	for _, item := range f.byID {
		if filter.OfficeID != "" && item.OfficeID != filter.OfficeID {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		out = append(out, *item)
	}
	return repository.NewPage(out, len(out), filter.ListFilter), nil
}

type fakeDepartments struct {
	byID map[string]*domain.Department
}

func (f *fakeDepartments) Create(_ context.Context, d *domain.Department) error {
	d.ID = "dept-" + d.Name
	f.byID[d.ID] = d
	return nil
}

func (f *fakeDepartments) Update(_ context.Context, d *domain.Department) error {
	f.byID[d.ID] = d
	return nil
}

func (f *fakeDepartments) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeDepartments) GetByID(_ context.Context, id string) (*domain.Department, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDepartments) List(_ context.Context, filter repository.ListFilter) (repository.Page[domain.Department], error) {
	var out []domain.Department
	for _, d := range f.byID {
		if filter.OfficeID == "" || d.OfficeID == filter.OfficeID {
			out = append(out, *d)
		}
	}
	return repository.NewPage(out, len(out), filter), nil
}

type recordingDispatcher struct {
	events []events.Event
}

func (r *recordingDispatcher) Publish(_ context.Context, e events.Event) error {
	r.events = append(r.events, e)
	return nil
}

func (r *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) func() { return func() {} }

func (r *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.Type
	}
	return out
}
