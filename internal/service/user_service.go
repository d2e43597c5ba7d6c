package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/config"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// UserInput carries writable account fields. Empty values are left unchanged on update.
type UserInput struct {
	Name         string
	Email        string
	Password     string
	MobileNumber string
	OfficeID     string
	Role         string
	Status       domain.UserStatus
}

// UserService administers accounts.
type UserService struct {
	users       repository.UserRepository
	roles       repository.RoleRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	bcryptCost  int
	defaultRole string
	superRole   string
}

// UserDependencies encapsulates collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(cfg config.AuthConfig, deps UserDependencies) *UserService {
	return &UserService{
		users:       deps.UserRepo,
		roles:       deps.RoleRepo,
		dispatcher:  deps.Dispatcher,
		logger:      nopIfNil(deps.Logger),
		bcryptCost:  cfg.BcryptCost,
		defaultRole: cfg.DefaultRole,
		superRole:   cfg.SuperRole,
	}
}

func (s *UserService) List(ctx context.Context, scope auth.ScopeFilter, filter repository.ListFilter) (repository.Page[domain.User], error) {
	filter.OfficeID = scope.Office(filter.OfficeID)
	page, err := s.users.List(ctx, filter)
	return page, storeErr(err, "user")
}

func (s *UserService) Get(ctx context.Context, scope auth.ScopeFilter, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	if err := ensureVisible(scope, user.OfficeID, "user"); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Create(ctx context.Context, actor *domain.Identity, scope auth.ScopeFilter, in UserInput) (*domain.User, error) {
	office, err := targetOffice(scope, in.OfficeID)
	if err != nil {
		return nil, err
	}
	if in.Password == "" {
		return nil, apperrors.NewValidationError("password is required", map[string]any{"password": "required"})
	}
	roleName := in.Role
	if roleName == "" {
		roleName = s.defaultRole
	}
	role, err := s.assignableRole(ctx, scope, roleName)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	status := in.Status
	if status == "" {
		status = domain.UserStatusActive
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        auth.NormalizeEmail(in.Email),
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		PasswordHash: hash,
		OfficeID:     office,
		RoleID:       role.ID,
		RoleName:     role.Name,
		Status:       status,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, storeErr(err, "user")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserCreated, user.ID, user.OfficeID, events.ActorFrom(actor), nil))
	return user, nil
}

func (s *UserService) Update(ctx context.Context, scope auth.ScopeFilter, id string, in UserInput) (*domain.User, error) {
	user, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if user.RoleName == s.superRole && !scope.Unrestricted {
		return nil, apperrors.NewForbidden("only the super role may modify this account")
	}
	setIfNotEmpty(&user.Name, strings.TrimSpace(in.Name))
	setIfNotEmpty(&user.MobileNumber, strings.TrimSpace(in.MobileNumber))
	if in.Email != "" {
		user.Email = auth.NormalizeEmail(in.Email)
	}
	if in.Status != "" {
		user.Status = in.Status
	}
	if in.OfficeID != "" && !auth.SameOffice(in.OfficeID, user.OfficeID) {
		if !scope.Unrestricted {
			return nil, auth.Deny(auth.ReasonOfficeMismatch, nil)
		}
		user.OfficeID = in.OfficeID
	}
	if in.Role != "" && in.Role != user.RoleName {
		role, err := s.assignableRole(ctx, scope, in.Role)
		if err != nil {
			return nil, err
		}
		user.RoleID, user.RoleName = role.ID, role.Name
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, storeErr(err, "user")
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.Identity, scope auth.ScopeFilter, id string) error {
	user, err := s.Get(ctx, scope, id)
	if err != nil {
		return err
	}
	if actor != nil && actor.SubjectID == user.ID {
		return apperrors.NewConflict("cannot delete your own account", nil)
	}
	if user.RoleName == s.superRole && !scope.Unrestricted {
		return apperrors.NewForbidden("only the super role may delete this account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return storeErr(err, "user")
	}
	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserDeleted, user.ID, user.OfficeID, events.ActorFrom(actor), nil))
	return nil
}

// assignableRole resolves name, refusing to hand out the super role to restricted callers.
func (s *UserService) assignableRole(ctx context.Context, scope auth.ScopeFilter, name string) (*domain.Role, error) {
	if name == s.superRole && !scope.Unrestricted {
		return nil, apperrors.NewForbidden("only the super role may grant the super role")
	}
	role, err := s.roles.GetByName(ctx, name)
	if err != nil {
		return nil, linkErr(err, "role")
	}
	return role, nil
}
