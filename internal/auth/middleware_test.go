package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invento/inventory-api/internal/domain"
	apperrors "github.com/invento/inventory-api/pkg/util"
)

const testSecret = "test-secret"

type recorded struct {
	outcomes []string
}

func (r *recorded) RecordAuthDecision(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

type gateFixture struct {
	app      *fiber.App
	store    *fakeStore
	codec    *TokenCodec
	recorder *recorded
}

func newGateFixture(t *testing.T, timeout time.Duration) *gateFixture {
	t.Helper()
	store := newFakeStore()
	codec := NewTokenCodec(testSecret)
	recorder := &recorded{}
	gate := NewGate(codec, NewIdentityLoader(store, false), NewEngine("super_admin"), nil, recorder, GateConfig{
		PublicPaths: []string{"/api/auth/login", "/health", "/public/*"},
		CookieName:  "session",
		Timeout:     timeout,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{"code": de.Code, "message": de.Message}})
		},
	})
	app.Use(gate.Authenticate)

	scopeHandler := func(c *fiber.Ctx) error {
		scope := ScopeFromContext(c)
		return c.JSON(fiber.Map{"unrestricted": scope.Unrestricted, "office_id": scope.OfficeID})
	}
	app.Post("/api/auth/login", func(c *fiber.Ctx) error { return c.SendString("login") })
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/public/docs", func(c *fiber.Ctx) error { return c.SendString("docs") })
	app.Get("/api/inventory", gate.Require(Roles("admin", "manager").Scoped()), scopeHandler)
	app.Post("/api/inventory", gate.Require(Roles("admin", "manager").Scoped()), scopeHandler)
	app.Get("/api/offices/:officeId/inventory", gate.Require(Roles("admin", "manager").Scoped()), scopeHandler)
	app.Get("/api/admin", gate.Require(Roles("admin")), scopeHandler)
	app.Get("/api/users", gate.Require(Requirement{Permission: domain.PermViewUser}), scopeHandler)

	return &gateFixture{app: app, store: store, codec: codec, recorder: recorder}
}

func (f *gateFixture) token(t *testing.T, identity *domain.Identity) string {
	t.Helper()
	tok, _, err := f.codec.Encode(identity, time.Hour)
	require.NoError(t, err)
	return tok
}

func (f *gateFixture) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func errorCode(body map[string]any) string {
	envelope, _ := body["error"].(map[string]any)
	code, _ := envelope["code"].(string)
	return code
}

func bearer(req *http.Request, token string) *http.Request {
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestGatePublicPathsBypass(t *testing.T) {
	f := newGateFixture(t, time.Second)
	for _, path := range []string{"/health", "/health/", "/public/docs"} {
		status, _ := f.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, status, path)
	}
	status, _ := f.do(t, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	assert.Equal(t, http.StatusOK, status)
}

func TestGateRejectsMissingAndMalformedTokens(t *testing.T) {
	f := newGateFixture(t, time.Second)

	status, body := f.do(t, httptest.NewRequest(http.MethodGet, "/api/inventory", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, string(ReasonMissingToken), errorCode(body))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Basic dXNlcjpwYXNz")
	status, body = f.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, string(ReasonTokenInvalid), errorCode(body))

	status, body = f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/inventory", nil), "garbage"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, string(ReasonTokenInvalid), errorCode(body))
}

func TestGateRejectsExpiredToken(t *testing.T) {
	f := newGateFixture(t, time.Second)
	past := f.codec.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	tok, _, err := past.Encode(testIdentity("u1", "admin", "O1"), time.Hour)
	require.NoError(t, err)

	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/inventory", nil), tok))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, string(ReasonTokenExpired), errorCode(body))
}

func TestGateRoleNotAllowed(t *testing.T) {
	f := newGateFixture(t, time.Second)
	tok := f.token(t, testIdentity("u2", "employee", "O1"))

	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/admin", nil), tok))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(ReasonRoleNotAllowed), errorCode(body))
	assert.Contains(t, f.recorder.outcomes, string(ReasonRoleNotAllowed))
}

func TestGateForwardsOfficeScope(t *testing.T) {
	f := newGateFixture(t, time.Second)
	tok := f.token(t, testIdentity("u1", "admin", "O1"))

	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/inventory", nil), tok))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, body["unrestricted"])
	assert.Equal(t, "O1", body["office_id"])
	assert.Contains(t, f.recorder.outcomes, "allow")
}

func TestGateOfficeMismatch(t *testing.T) {
	f := newGateFixture(t, time.Second)
	tok := f.token(t, testIdentity("u1", "admin", "O1"))

	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/inventory?office_id=O2", nil), tok))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(ReasonOfficeMismatch), errorCode(body))

	status, body = f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/offices/O2/inventory", nil), tok))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(ReasonOfficeMismatch), errorCode(body))

	req := bearer(httptest.NewRequest(http.MethodPost, "/api/inventory", strings.NewReader(`{"office_id":"O2","name":"desk"}`)), tok)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	status, body = f.do(t, req)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(ReasonOfficeMismatch), errorCode(body))

	status, _ = f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/inventory?office_id=O1", nil), tok))
	assert.Equal(t, http.StatusOK, status)
}

func TestGateSuperRoleIsUnrestricted(t *testing.T) {
	f := newGateFixture(t, time.Second)
	tok := f.token(t, testIdentity("root", "super_admin", "O1"))

	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/inventory?office_id=O2", nil), tok))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["unrestricted"])

	status, _ = f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/admin", nil), tok))
	assert.Equal(t, http.StatusOK, status)
}

func TestGatePermissionUsesStoredIdentity(t *testing.T) {
	f := newGateFixture(t, time.Second)
	claimed := testIdentity("u1", "admin", "O1", domain.PermViewUser)
	tok := f.token(t, claimed)

	f.store.byID["u1"] = testIdentity("u1", "admin", "O1", domain.PermViewUser)
	status, _ := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/users", nil), tok))
	assert.Equal(t, http.StatusOK, status)

	// permission revoked after the token was issued
	f.store.byID["u1"] = testIdentity("u1", "admin", "O1")
	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/users", nil), tok))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, string(ReasonPermissionDenied), errorCode(body))
}

func TestGateVanishedIdentity(t *testing.T) {
	f := newGateFixture(t, time.Second)
	tok := f.token(t, testIdentity("gone", "admin", "O1", domain.PermViewUser))

	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/users", nil), tok))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, string(ReasonIdentityNotFound), errorCode(body))
}

func TestGateStorageFailuresFailClosed(t *testing.T) {
	f := newGateFixture(t, 20*time.Millisecond)
	tok := f.token(t, testIdentity("u1", "admin", "O1", domain.PermViewUser))

	f.store.err = errors.New("connection reset")
	status, body := f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/users", nil), tok))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, string(ReasonUnavailable), errorCode(body))

	f.store.err = nil
	f.store.block = true
	status, body = f.do(t, bearer(httptest.NewRequest(http.MethodGet, "/api/users", nil), tok))
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, string(ReasonUnavailable), errorCode(body))
}

func TestGateReadsCookieWhenHeaderMissing(t *testing.T) {
	f := newGateFixture(t, time.Second)
	tok := f.token(t, testIdentity("u1", "manager", "O1"))

	req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: tok})
	status, body := f.do(t, req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "O1", body["office_id"])
}
