package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/invento/inventory-api/internal/auth"
	"github.com/invento/inventory-api/internal/config"
	"github.com/invento/inventory-api/internal/domain"
	"github.com/invento/inventory-api/internal/events"
	"github.com/invento/inventory-api/internal/repository"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

type memCounter struct{ counts map[string]int64 }

func (m *memCounter) Incr(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.counts[key]++
	return m.counts[key], nil
}

func (m *memCounter) Count(_ context.Context, key string) (int64, error) { return m.counts[key], nil }

func (m *memCounter) Reset(_ context.Context, key string) error {
	delete(m.counts, key)
	return nil
}

type authFixture struct {
	svc        *AuthService
	users      *fakeUsers
	codec      *auth.TokenCodec
	dispatcher *recordingDispatcher
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	users := newFakeUsers()
	roles := newFakeRoles("super_admin", "admin", "employee")
	roles.byID["role-admin"].Permissions = []string{domain.PermInventoryWrite}
	offices := newFakeOffices("O1", "O2")

	hash, err := auth.HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	users.add(&domain.User{
		ID: "u-admin", Name: "Admin", Email: "a@x.com", PasswordHash: hash,
		OfficeID: "O1", RoleID: "role-admin", RoleName: "admin", Status: domain.UserStatusActive,
	})

	cfg := config.AuthConfig{
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
		SuperRole:             "super_admin",
		DefaultRole:           "employee",
	}
	codec := auth.NewTokenCodec("test-secret")
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(cfg, AuthDependencies{
		Verifier:   auth.NewCredentialVerifier(repository.NewIdentityStore(users, roles), nil),
		Codec:      codec,
		Throttle:   auth.NewLoginThrottle(&memCounter{counts: map[string]int64{}}, 3, time.Minute, nil),
		UserRepo:   users,
		RoleRepo:   roles,
		OfficeRepo: offices,
		Dispatcher: dispatcher,
	})
	return &authFixture{svc: svc, users: users, codec: codec, dispatcher: dispatcher}
}

func TestLoginIssuesTokenWithRoleAndOffice(t *testing.T) {
	f := newAuthFixture(t)

	session, err := f.svc.Login(context.Background(), "a@x.com", "secret1", "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	claims, err := f.codec.Decode(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.RoleName)
	assert.Equal(t, "O1", claims.OfficeID)
	assert.Equal(t, "u-admin", claims.Subject)
	assert.Contains(t, claims.Permissions, domain.PermInventoryWrite)
}

func TestLoginFailuresAreUniformAndThrottled(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "nobody@x.com", "secret1", "10.0.0.9")
	assert.Equal(t, string(auth.ReasonAuthenticationFailed), apperrors.ToDomainError(err).Code)

	for _, creds := range [][2]string{{"a@x.com", "wrong"}, {"A@x.com", "nope"}, {"a@x.com", "secret2"}} {
		_, err := f.svc.Login(ctx, creds[0], creds[1], "10.0.0.9")
		de := apperrors.ToDomainError(err)
		assert.Equal(t, string(auth.ReasonAuthenticationFailed), de.Code)
		assert.Equal(t, http.StatusUnauthorized, de.HTTPStatus)
	}

	_, err = f.svc.Login(ctx, "a@x.com", "secret1", "10.0.0.9")
	assert.Equal(t, http.StatusTooManyRequests, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.svc.Login(ctx, "a@x.com", "secret1", "10.0.0.10")
	assert.NoError(t, err)
}

func TestRegisterCreatesActiveEmployee(t *testing.T) {
	f := newAuthFixture(t)

	user, err := f.svc.Register(context.Background(), RegisterInput{
		Name: "New Person", Email: " New@X.com ", Password: "secret1", OfficeID: "O2",
	})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	assert.Equal(t, "employee", user.RoleName)
	assert.Equal(t, "O2", user.OfficeID)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "secret1"))
	assert.Equal(t, []events.EventType{events.EventUserRegistered}, f.dispatcher.types())
}

func TestRegisterRejectsDuplicateAndUnknownOffice(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{Email: "a@x.com", Password: "secret1", OfficeID: "O1"})
	assert.Equal(t, http.StatusConflict, apperrors.ToDomainError(err).HTTPStatus)

	_, err = f.svc.Register(context.Background(), RegisterInput{Email: "b@x.com", Password: "secret1", OfficeID: "O9"})
	assert.Equal(t, apperrors.CodeValidation, apperrors.ToDomainError(err).Code)
}

func TestSeedSuperAdminIsIdempotent(t *testing.T) {
	f := newAuthFixture(t)
	seed := config.SeedConfig{SuperAdminEmail: "root@x.com", SuperAdminPassword: "pw", SuperAdminName: "Root", OfficeName: "HQ"}

	require.NoError(t, f.svc.SeedSuperAdmin(context.Background(), seed))
	require.NoError(t, f.svc.SeedSuperAdmin(context.Background(), seed))

	root, err := f.users.GetByEmail(context.Background(), "root@x.com")
	require.NoError(t, err)
	assert.Equal(t, "super_admin", root.RoleName)
	assert.Len(t, f.users.byID, 2)

	assert.NoError(t, f.svc.SeedSuperAdmin(context.Background(), config.SeedConfig{}))
}
