package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/config"
)

func TestPoolConfigAppliesOverrides(t *testing.T) {
	cfg, err := poolConfig(config.PostgresConfig{
		DSN:            "postgres://app:pw@localhost:5432/invento?sslmode=disable",
		MaxConns:       8,
		MinConns:       2,
		ConnMaxIdleSec: 30,
		ConnMaxLifeSec: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(8), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.Equal(t, 30*time.Second, cfg.MaxConnIdleTime)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
}

func TestPoolConfigIgnoresMinAboveMax(t *testing.T) {
	cfg, err := poolConfig(config.PostgresConfig{DSN: "postgres://localhost/invento", MaxConns: 2, MinConns: 5})
	require.NoError(t, err)
	assert.Equal(t, int32(0), cfg.MinConns)
}

func TestPoolConfigRejectsBadDSN(t *testing.T) {
	_, err := poolConfig(config.PostgresConfig{DSN: "postgres://%zz"})
	assert.Error(t, err)
}

func TestUnconfiguredHandles(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.ErrorIs(t, pg.Ping(context.Background()), errPostgresNotConfigured)
	assert.Nil(t, pg.PoolHandle())
	pg.Close()

	var rd *Redis
	assert.Error(t, rd.Ping(context.Background()))
}
