package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_PUBLIC_PATHS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "super_admin", cfg.Auth.SuperRole)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Contains(t, cfg.Auth.PublicPaths, "/api/auth/login")
	assert.Contains(t, cfg.Auth.PublicPaths, "/health")
}

func TestLoadRequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRequiresSecretWhenEnvironmentUnset(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadDefaultsToProduction(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.False(t, cfg.App.IsDevelopment())
}

func TestLoadParsesLists(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "s3cret")
	t.Setenv("AUTH_PUBLIC_PATHS", " /a , /b ,,")
	t.Setenv("AUTH_AUTHORIZE_TIMEOUT_MS", "250")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"/a", "/b"}, cfg.Auth.PublicPaths)
	assert.Equal(t, 250*time.Millisecond, cfg.Auth.AuthorizeTimeout())
	assert.False(t, cfg.App.IsDevelopment())
}
