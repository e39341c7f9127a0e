package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.App.Environment)
	require.Equal(t, "8080", cfg.App.Port)
	require.Equal(t, "http://localhost", cfg.App.BaseURL)
	require.Equal(t, "festivals", cfg.App.CollectionName)
	require.Equal(t, time.Hour, cfg.JWT.AccessTokenTTL)
	require.Equal(t, "admin", cfg.Auth.Username)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "3000")
	t.Setenv("JWT_EXPIRES", "30m")
	t.Setenv("DB_PORT", "5433")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "3000", cfg.App.Port)
	require.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	require.Equal(t, 5433, cfg.Database.Port)
}

func TestLoad_ProductionNeedsRealSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "an-actual-secret")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "production", cfg.App.Environment)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "pw",
		Database: "festivals", SSLMode: "disable",
	}
	require.Equal(t, "postgresql://app:pw@db:5432/festivals?sslmode=disable", cfg.DSN())
}
