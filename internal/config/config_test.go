package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearDBEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MATCHDAY_DATABASE_URL", "DATABASE_URL", "SUPABASE_DB_URL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	clearDBEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_FallbackChain(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("SUPABASE_DB_URL", "postgres://supabase")
	t.Setenv("DATABASE_URL", "postgres://plain")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://plain", cfg.DatabaseURL)

	t.Setenv("MATCHDAY_DATABASE_URL", "postgres://preferred")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://preferred", cfg.DatabaseURL)
}

func TestLoad_Defaults(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DATABASE_URL", "postgres://x")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5001, cfg.APIPort)
	assert.Equal(t, 30*time.Minute, cfg.DBPoolMaxLife)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.RateLimitEnabled)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_PoolBounds(t *testing.T) {
	clearDBEnv(t)
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("DB_POOL_MIN_CONNS", "8")
	t.Setenv("DB_POOL_MAX_CONNS", "4")

	_, err := Load()
	require.Error(t, err)
}

func TestDriver(t *testing.T) {
	cases := map[string]string{
		"postgres://u:p@host/db":   DriverPostgres,
		"postgresql://host/db":     DriverPostgres,
		"sqlite://matchday.db":     DriverSQLite,
		"file:matchday.db?mode=ro": DriverSQLite,
	}
	for url, want := range cases {
		cfg := &Config{DatabaseURL: url}
		assert.Equal(t, want, cfg.Driver(), url)
	}

	cfg := &Config{DatabaseURL: "sqlite://data/matchday.db"}
	assert.Equal(t, "data/matchday.db", cfg.SQLitePath())
}
