package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invento/inventory-api/internal/domain"
)

const (
	claimsKey   = "auth_claims"
	identityKey = "auth_identity"
	scopeKey    = "auth_scope"
)

// IdentityFromContext retrieves the identity attached by the gate.
func IdentityFromContext(c *fiber.Ctx) (*domain.Identity, bool) {
	identity, ok := c.Locals(identityKey).(*domain.Identity)
	return identity, ok && identity != nil
}

// ClaimsFromContext retrieves the verified token claims.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*Claims)
	return claims, ok && claims != nil
}

// ScopeFromContext returns the scope filter granted for this request. Handlers
// reached without authorization get an empty, restricted scope that matches nothing.
func ScopeFromContext(c *fiber.Ctx) ScopeFilter {
	scope, _ := c.Locals(scopeKey).(ScopeFilter)
	return scope
}
