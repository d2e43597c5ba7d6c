package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DecisionRecorder receives one outcome per authorization attempt.
type DecisionRecorder interface {
	RecordAuthDecision(outcome string)
}

// GateConfig configures the request gate.
type GateConfig struct {
	// PublicPaths bypass the gate. A trailing "/*" matches a prefix.
	PublicPaths []string
	// CookieName, when set, is read if no Authorization header is present.
	CookieName string
	// Timeout bounds the identity refresh round-trip.
	Timeout time.Duration
}

// Gate authenticates and authorizes every protected request.
type Gate struct {
	codec    *TokenCodec
	loader   *IdentityLoader
	engine   *Engine
	logger   *zap.Logger
	recorder DecisionRecorder
	cfg      GateConfig
	exact    map[string]struct{}
	prefixes []string
}

// NewGate constructs the gate.
func NewGate(codec *TokenCodec, loader *IdentityLoader, engine *Engine, logger *zap.Logger, recorder DecisionRecorder, cfg GateConfig) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	g := &Gate{
		codec:    codec,
		loader:   loader,
		engine:   engine,
		logger:   logger,
		recorder: recorder,
		cfg:      cfg,
		exact:    make(map[string]struct{}, len(cfg.PublicPaths)),
	}
	for _, p := range cfg.PublicPaths {
		if strings.HasSuffix(p, "/*") {
			g.prefixes = append(g.prefixes, strings.TrimSuffix(p, "*"))
			continue
		}
		g.exact[normalizePath(p)] = struct{}{}
	}
	return g
}

// IsPublic reports whether path bypasses authentication.
func (g *Gate) IsPublic(path string) bool {
	path = normalizePath(path)
	if _, ok := g.exact[path]; ok {
		return true
	}
	for _, prefix := range g.prefixes {
		if strings.HasPrefix(path+"/", prefix) {
			return true
		}
	}
	return false
}

// Authenticate verifies the session token and attaches claims and the claimed
// identity. Public paths pass through untouched.
func (g *Gate) Authenticate(c *fiber.Ctx) error {
	if g.IsPublic(c.Path()) {
		return c.Next()
	}

	raw, err := g.extractToken(c)
	if err != nil {
		return g.deny(c, ReasonFor(err), nil, err)
	}
	if raw == "" {
		return g.deny(c, ReasonMissingToken, nil, nil)
	}

	claims, err := g.codec.Decode(raw)
	if err != nil {
		return g.deny(c, ReasonFor(err), nil, err)
	}

	c.Locals(claimsKey, claims)
	c.Locals(identityKey, g.loader.FromClaims(claims))
	g.logger.Debug("token authenticated",
		zap.String("subject", claims.Subject),
		zap.String("role", claims.RoleName),
		zap.String("path", c.Path()))
	return c.Next()
}

// Require authorizes the request against req and forwards the resulting scope.
func (g *Gate) Require(req Requirement) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return g.deny(c, ReasonMissingToken, nil, nil)
		}

		identity, _ := IdentityFromContext(c)
		if g.loader.NeedsRefresh(req) {
			ctx, cancel := context.WithTimeout(c.UserContext(), g.cfg.Timeout)
			fresh, err := g.loader.Refresh(ctx, claims.Subject)
			cancel()
			if err != nil {
				return g.deny(c, ReasonFor(err), claims, err)
			}
			identity = fresh
			c.Locals(identityKey, identity)
		}

		decision := g.engine.Authorize(identity, req, RequestOfficeID(c))
		if !decision.Allowed {
			return g.deny(c, decision.Reason, claims, nil)
		}

		g.record("allow")
		c.Locals(scopeKey, decision.Scope)
		return c.Next()
	}
}

// RequestOfficeID finds the office a request targets: route parameter, then
// query string, then JSON body.
func RequestOfficeID(c *fiber.Ctx) string {
	for _, key := range []string{"officeId", "office_id"} {
		if v := c.Params(key); v != "" {
			return v
		}
	}
	for _, key := range []string{"officeId", "office_id"} {
		if v := c.Query(key); v != "" {
			return v
		}
	}
	if len(c.Body()) == 0 || !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEApplicationJSON) {
		return ""
	}
	var body struct {
		OfficeID      string `json:"office_id"`
		OfficeIDCamel string `json:"officeId"`
	}
	if err := c.BodyParser(&body); err != nil {
		return ""
	}
	if body.OfficeID != "" {
		return body.OfficeID
	}
	return body.OfficeIDCamel
}

func (g *Gate) extractToken(c *fiber.Ctx) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		if g.cfg.CookieName != "" {
			return c.Cookies(g.cfg.CookieName), nil
		}
		return "", nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", ErrTokenMalformed
	}
	return strings.TrimSpace(parts[1]), nil
}

func (g *Gate) deny(c *fiber.Ctx, reason Reason, claims *Claims, cause error) error {
	fields := []zap.Field{
		zap.String("reason", string(reason)),
		zap.String("path", c.Path()),
		zap.String("method", c.Method()),
		zap.String("ip", c.IP()),
	}
	if claims != nil {
		fields = append(fields, zap.String("subject", claims.Subject), zap.String("role", claims.RoleName))
	}
	if cause != nil {
		fields = append(fields, zap.Error(cause))
	}
	g.logger.Warn("access denied", fields...)
	g.record(string(reason))
	return Deny(reason, cause)
}

func (g *Gate) record(outcome string) {
	if g.recorder != nil {
		g.recorder.RecordAuthDecision(outcome)
	}
}

func normalizePath(p string) string {
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
