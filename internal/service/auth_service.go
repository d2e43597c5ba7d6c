package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/config"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Identity  *domain.Identity
}

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	MobileNumber string
	OfficeID     string
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	verifier    *auth.CredentialVerifier
	codec       *auth.TokenCodec
	throttle    *auth.LoginThrottle
	users       repository.UserRepository
	roles       repository.RoleRepository
	offices     repository.OfficeRepository
	dispatcher  events.Dispatcher
	logger      *zap.Logger
	tokenTTL    time.Duration
	bcryptCost  int
	defaultRole string
	superRole   string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Verifier   *auth.CredentialVerifier
	Codec      *auth.TokenCodec
	Throttle   *auth.LoginThrottle
	UserRepo   repository.UserRepository
	RoleRepo   repository.RoleRepository
	OfficeRepo repository.OfficeRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	return &AuthService{
		verifier:    deps.Verifier,
		codec:       deps.Codec,
		throttle:    deps.Throttle,
		users:       deps.UserRepo,
		roles:       deps.RoleRepo,
		offices:     deps.OfficeRepo,
		dispatcher:  deps.Dispatcher,
		logger:      nopIfNil(deps.Logger),
		tokenTTL:    cfg.TokenTTL(),
		bcryptCost:  cfg.BcryptCost,
		defaultRole: cfg.DefaultRole,
		superRole:   cfg.SuperRole,
	}
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password, sourceIP string) (*Session, error) {
	if !s.throttle.Allow(ctx, email, sourceIP) {
		s.logger.Warn("login throttled", zap.String("email", auth.NormalizeEmail(email)), zap.String("ip", sourceIP))
		return nil, apperrors.NewTooManyRequests("too many failed login attempts, try again later")
	}

	identity, err := s.verifier.Verify(ctx, email, password, sourceIP)
	if err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			s.throttle.Failed(ctx, email, sourceIP)
			return nil, auth.Deny(auth.ReasonAuthenticationFailed, nil)
		}
		return nil, apperrors.NewUnavailable(err)
	}
	s.throttle.Succeeded(ctx, email, sourceIP)

	token, exp, err := s.codec.Encode(identity, s.tokenTTL)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{Token: token, ExpiresAt: exp, Identity: identity}, nil
}

// Register creates an active account with the default role in an existing office.
// The password is hashed here, before the repository sees the record.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := auth.NormalizeEmail(in.Email)
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	office, err := s.offices.GetByID(ctx, in.OfficeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("office does not exist", map[string]any{"office_id": in.OfficeID})
		}
		return nil, apperrors.MapError(err)
	}

	role, err := s.roles.GetByName(ctx, s.defaultRole)
	if err != nil {
		return nil, storeErr(err, "role")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		MobileNumber: strings.TrimSpace(in.MobileNumber),
		PasswordHash: hash,
		OfficeID:     office.ID,
		RoleID:       role.ID,
		RoleName:     role.Name,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}

	publish(ctx, s.dispatcher, s.logger, events.New(events.EventUserRegistered, user.ID, user.OfficeID,
		events.Actor{SubjectID: user.ID, Role: role.Name},
		events.UserRegisteredPayload{Email: user.Email, Role: role.Name}))
	return user, nil
}

// SeedSuperAdmin creates the bootstrap super admin and its office if they do not exist yet.
func (s *AuthService) SeedSuperAdmin(ctx context.Context, seed config.SeedConfig) error {
	email := auth.NormalizeEmail(seed.SuperAdminEmail)
	if email == "" || seed.SuperAdminPassword == "" {
		return nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	office, err := s.offices.GetByName(ctx, seed.OfficeName)
	if errors.Is(err, pgx.ErrNoRows) {
		office = &domain.Office{Name: seed.OfficeName}
		err = s.offices.Create(ctx, office)
	}
	if err != nil {
		return err
	}

	role, err := s.roles.GetByName(ctx, s.superRole)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(seed.SuperAdminPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user := &domain.User{
		Name:         seed.SuperAdminName,
		Email:        email,
		PasswordHash: hash,
		OfficeID:     office.ID,
		RoleID:       role.ID,
		RoleName:     role.Name,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return err
	}
	s.logger.Info("seeded super admin", zap.String("email", email), zap.String("office_id", office.ID))
	return nil
}
