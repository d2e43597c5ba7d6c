package auth

import (
	"strings"

	"github.com/google/uuid"

	"github.com/invento/inventory-api/internal/domain"
)

// Requirement is the declarative capability a route demands.
type Requirement struct {
	// Roles allowed to call the route. Empty means any authenticated role.
	Roles []string
	// Permission that must be held, if any. Forces a storage refresh of the identity.
	Permission string
	// OfficeScoped routes compare the requested office with the caller's office.
	OfficeScoped bool
}

// Roles is shorthand for a role-only requirement.
func Roles(roles ...string) Requirement {
	return Requirement{Roles: roles}
}

// Scoped returns a copy of r that is office scoped.
func (r Requirement) Scoped() Requirement {
	r.OfficeScoped = true
	return r
}

// Needs returns a copy of r that requires permission.
func (r Requirement) Needs(permission string) Requirement {
	r.Permission = permission
	return r
}

// ScopeFilter constrains the data a handler may read or write.
type ScopeFilter struct {
	Unrestricted bool
	OfficeID     string
}

// NoOffice is an office id no entity carries. A restricted scope without an
// office filters on it so that it matches nothing.
const NoOffice = "00000000-0000-0000-0000-000000000000"

// Office returns the office a query must be restricted to. requested narrows
// an unrestricted scope; it is ignored for restricted scopes. An empty result
// means no office filter and is only returned for unrestricted scopes.
func (s ScopeFilter) Office(requested string) string {
	if s.Unrestricted {
		return strings.TrimSpace(requested)
	}
	if strings.TrimSpace(s.OfficeID) == "" {
		return NoOffice
	}
	return s.OfficeID
}

// Permits reports whether an entity owned by officeID is visible under the scope.
func (s ScopeFilter) Permits(officeID string) bool {
	return s.Unrestricted || SameOffice(s.OfficeID, officeID)
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  Reason
	Scope   ScopeFilter
}

// Engine evaluates requirements against identities. It is pure and safe for concurrent use.
type Engine struct {
	superRole string
}

// NewEngine builds an engine where superRole bypasses every check.
func NewEngine(superRole string) *Engine {
	return &Engine{superRole: superRole}
}

// SuperRole returns the configured unrestricted role name.
func (e *Engine) SuperRole() string {
	return e.superRole
}

// Authorize decides whether identity may proceed. Checks run in a fixed order
// (role, permission, office) and the first failure determines the reason.
func (e *Engine) Authorize(identity *domain.Identity, req Requirement, requestOfficeID string) Decision {
	if identity == nil {
		return Decision{Reason: ReasonIdentityNotFound}
	}
	if e.superRole != "" && identity.RoleName == e.superRole {
		return Decision{Allowed: true, Scope: ScopeFilter{Unrestricted: true}}
	}
	if len(req.Roles) > 0 && !containsRole(req.Roles, identity.RoleName) {
		return Decision{Reason: ReasonRoleNotAllowed}
	}
	if req.Permission != "" && !identity.Permissions.Has(req.Permission) {
		return Decision{Reason: ReasonPermissionDenied}
	}
	requestOfficeID = strings.TrimSpace(requestOfficeID)
	if req.OfficeScoped && requestOfficeID != "" && !SameOffice(requestOfficeID, identity.OfficeID) {
		return Decision{Reason: ReasonOfficeMismatch}
	}
	return Decision{Allowed: true, Scope: ScopeFilter{OfficeID: identity.OfficeID}}
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// SameOffice compares office identifiers, canonicalising UUIDs so case and
// formatting differences do not matter.
func SameOffice(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA == nil && errB == nil {
		return ua == ub
	}
	return a == b
}
