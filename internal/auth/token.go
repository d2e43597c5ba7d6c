package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/invento/inventory-api/internal/domain"
)

const tokenIssuer = "invento-api"

// Claims is the signed payload of a session token.
type Claims struct {
	Email       string   `json:"email,omitempty"`
	RoleID      string   `json:"role_id,omitempty"`
	RoleName    string   `json:"role"`
	OfficeID    string   `json:"office_id"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

// Identity converts embedded claims into an identity. The result is only as fresh as the token.
func (c *Claims) Identity() *domain.Identity {
	return &domain.Identity{
		SubjectID:   c.Subject,
		Email:       c.Email,
		RoleID:      c.RoleID,
		RoleName:    c.RoleName,
		OfficeID:    c.OfficeID,
		Permissions: domain.NewPermissionSet(c.Permissions...),
		Status:      domain.UserStatusActive,
	}
}

// TokenCodec issues and verifies HS256 session tokens. It holds no mutable state.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec around the process-wide signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), now: time.Now}
}

// WithClock returns a copy of the codec reading time from now.
func (tc *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	return &TokenCodec{secret: tc.secret, now: now}
}

// Encode signs a token for identity that expires after ttl.
func (tc *TokenCodec) Encode(identity *domain.Identity, ttl time.Duration) (string, time.Time, error) {
	if identity == nil || identity.SubjectID == "" {
		return "", time.Time{}, errors.New("identity subject required")
	}
	if ttl <= 0 {
		return "", time.Time{}, errors.New("token ttl must be positive")
	}
	issuedAt := tc.now()
	expiresAt := issuedAt.Add(ttl)
	claims := &Claims{
		Email:       identity.Email,
		RoleID:      identity.RoleID,
		RoleName:    identity.RoleName,
		OfficeID:    identity.OfficeID,
		Permissions: identity.Permissions.Slice(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   identity.SubjectID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tc.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Decode verifies the signature, algorithm and expiry of tokenStr and returns its claims.
// Errors wrap ErrTokenExpired or ErrTokenMalformed.
func (tc *TokenCodec) Decode(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return tc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(tc.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: invalid token claims", ErrTokenMalformed)
	}
	if claims.Subject == "" || claims.RoleName == "" {
		return nil, fmt.Errorf("%w: missing identity claims", ErrTokenMalformed)
	}
	return claims, nil
}
