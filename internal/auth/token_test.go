package auth

import (
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Now()
	codec := NewTokenCodec("secret").WithClock(fixedClock(now))
	identity := testIdentity("u1", "admin", "O1", "inventory.write", "view_user")

	token, exp, err := codec.Encode(identity, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), exp)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.WithClock(fixedClock(now.Add(30 * time.Minute))).Decode(token)
	require.NoError(t, err)

	got := claims.Identity()
	assert.Equal(t, identity.SubjectID, got.SubjectID)
	assert.Equal(t, identity.Email, got.Email)
	assert.Equal(t, identity.RoleID, got.RoleID)
	assert.Equal(t, "admin", got.RoleName)
	assert.Equal(t, "O1", got.OfficeID)
	assert.Equal(t, identity.Permissions, got.Permissions)
	assert.True(t, got.Active())
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	codec := NewTokenCodec("secret").WithClock(fixedClock(now.Add(-2 * time.Hour)))
	token, _, err := codec.Encode(testIdentity("u1", "admin", "O1"), time.Hour)
	require.NoError(t, err)

	_, err = NewTokenCodec("secret").Decode(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Equal(t, ReasonTokenExpired, ReasonFor(err))
}

func TestTokenSignatureMustVerify(t *testing.T) {
	codec := NewTokenCodec("secret")
	token, _, err := codec.Encode(testIdentity("u1", "admin", "O1"), time.Hour)
	require.NoError(t, err)

	_, err = NewTokenCodec("other-secret").Decode(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	_, err = codec.Decode(tampered)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenBadSignatureWinsOverExpiry(t *testing.T) {
	old := NewTokenCodec("other").WithClock(fixedClock(time.Now().Add(-48 * time.Hour)))
	token, _, err := old.Encode(testIdentity("u1", "admin", "O1"), time.Hour)
	require.NoError(t, err)

	_, err = NewTokenCodec("secret").Decode(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := &Claims{
		RoleName: "super_admin",
		OfficeID: "O1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenCodec("secret").Decode(hs512)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewTokenCodec("secret").Decode(none)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenRequiresExpiryAndIdentity(t *testing.T) {
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RoleName:         "admin",
		RegisteredClaims: jwt.RegisteredClaims{Issuer: tokenIssuer, Subject: "u1"},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenCodec("secret").Decode(noExp)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	noRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewTokenCodec("secret").Decode(noRole)
	assert.ErrorIs(t, err, ErrTokenMalformed)

	_, err = NewTokenCodec("secret").Decode("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenEncodeValidatesInput(t *testing.T) {
	codec := NewTokenCodec("secret")
	_, _, err := codec.Encode(nil, time.Hour)
	assert.Error(t, err)
	_, _, err = codec.Encode(testIdentity("u1", "admin", "O1"), 0)
	assert.Error(t, err)
}
