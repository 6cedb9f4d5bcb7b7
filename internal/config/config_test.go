package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "ORACLE_PROVIDER", "ORACLE_CACHE", "PLAN_TIMEOUT", "PLAN_MAX_NEIGHBORS", "PLAN_MAX_CONCURRENCY", "DATABASE_URL"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderOSRM, cfg.OracleProvider)
	assert.Equal(t, CacheNone, cfg.OracleCache)
	assert.Equal(t, 30*time.Second, cfg.PlanTimeout)
	assert.Equal(t, 3, cfg.PlanMaxNeighbors)
	assert.Equal(t, 4, cfg.PlanMaxConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ORACLE_PROVIDER", "ORS")
	t.Setenv("ORS_API_KEY", "secret")
	t.Setenv("PLAN_TIMEOUT", "5s")
	t.Setenv("PLAN_MAX_NEIGHBORS", "2")
	t.Setenv("ORACLE_CACHE", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderORS, cfg.OracleProvider)
	assert.Equal(t, 5*time.Second, cfg.PlanTimeout)
	assert.Equal(t, 2, cfg.PlanMaxNeighbors)
	assert.Equal(t, CacheRedis, cfg.OracleCache)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("ors without key", func(t *testing.T) {
		t.Setenv("ORACLE_PROVIDER", "ors")
		t.Setenv("ORS_API_KEY", "")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ORS_API_KEY")
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("PLAN_TIMEOUT", "soon")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PLAN_TIMEOUT")
	})

	t.Run("postgres cache without database", func(t *testing.T) {
		t.Setenv("ORACLE_CACHE", "postgres")
		t.Setenv("DATABASE_URL", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("zero concurrency", func(t *testing.T) {
		t.Setenv("PLAN_MAX_CONCURRENCY", "0")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestGetBool(t *testing.T) {
	t.Setenv("FLAG", "true")
	v, err := GetBool("FLAG", false)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = GetBool("UNSET_FLAG_FOR_TEST", true)
	require.NoError(t, err)
	assert.True(t, v)
}
