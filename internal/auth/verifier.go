package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/domain"
)

// CredentialStore is the storage collaborator used to check credentials.
type CredentialStore interface {
	FindIdentityByEmail(ctx context.Context, email string) (*domain.IdentityRecord, error)
	FindRolePermissions(ctx context.Context, roleID string) ([]string, error)
}

// CredentialVerifier checks an email/password pair against the stored hash.
type CredentialVerifier struct {
	store  CredentialStore
	logger *zap.Logger
}

// NewCredentialVerifier constructs a verifier.
func NewCredentialVerifier(store CredentialStore, logger *zap.Logger) *CredentialVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CredentialVerifier{store: store, logger: logger}
}

// Verify returns the full identity for valid credentials. Unknown email, inactive
// account and wrong password all yield ErrAuthenticationFailed; storage failures
// yield ErrStorageUnavailable.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password, sourceIP string) (*domain.Identity, error) {
	email = NormalizeEmail(email)
	fail := func(cause string) (*domain.Identity, error) {
		v.logger.Warn("login failed",
			zap.String("email", email),
			zap.String("ip", sourceIP),
			zap.String("cause", cause))
		return nil, ErrAuthenticationFailed
	}

	record, err := v.store.FindIdentityByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			burnCompare(password)
			return fail("no_such_user")
		}
		v.logger.Error("login lookup failed", zap.String("email", email), zap.String("ip", sourceIP), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	if record.Status != domain.UserStatusActive {
		burnCompare(password)
		return fail("inactive")
	}
	if record.RoleID == "" || record.RoleName == "" {
		burnCompare(password)
		return fail("role_missing")
	}
	if err := ComparePassword(record.PasswordHash, password); err != nil {
		return fail("bad_password")
	}

	perms, err := v.store.FindRolePermissions(ctx, record.RoleID)
	if err != nil {
		v.logger.Error("load role permissions failed", zap.String("role_id", record.RoleID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	identity := record.Identity
	identity.Email = email
	identity.Permissions = domain.NewPermissionSet(perms...)

	v.logger.Info("login succeeded",
		zap.String("email", email),
		zap.String("ip", sourceIP),
		zap.String("subject", identity.SubjectID),
		zap.String("role", identity.RoleName))
	return &identity, nil
}

// NormalizeEmail trims and lower-cases an address for lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
