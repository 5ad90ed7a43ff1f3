package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"USERS_ADDR", "USERS_STORE", "USERS_DSN", "USERS_SEED", "USERS_READ_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":10000", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Store)
	assert.Equal(t, "file:users.db?cache=shared&mode=rwc", cfg.DSN)
	assert.Equal(t, "users", cfg.Collection)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("USERS_STORE", "postgres")
	t.Setenv("USERS_DSN", "")
	t.Setenv("USERS_SEED", "100")
	t.Setenv("USERS_WRITE_TIMEOUT", "3s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store)
	assert.Contains(t, cfg.DSN, "postgres://")
	assert.Equal(t, 100, cfg.Seed)
	assert.Equal(t, 3*time.Second, cfg.WriteTimeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("USERS_SEED", "many")
	t.Setenv("USERS_IDLE_TIMEOUT", "forever")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "USERS_SEED")
	assert.Contains(t, err.Error(), "USERS_IDLE_TIMEOUT")
}

func TestGetConfigWithDefault(t *testing.T) {
	t.Setenv("USERS_TEST_KEY", "")
	assert.Equal(t, "fallback", GetConfigWithDefault("USERS_TEST_KEY", "fallback"))

	t.Setenv("USERS_TEST_KEY", "set")
	assert.Equal(t, "set", GetConfigWithDefault("USERS_TEST_KEY", "fallback"))
}

func TestDotEnvDoesNotOverrideEnvironment(t *testing.T) {
	// LoadEnv runs once per process, so exercise godotenv directly here.
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("USERS_LOG_LEVEL=debug\nUSERS_COLLECTION=people\n"), 0o600))
	t.Setenv("USERS_LOG_LEVEL", "warn")
	t.Setenv("USERS_COLLECTION", "")
	os.Unsetenv("USERS_COLLECTION")

	require.NoError(t, loadFile(path))
	assert.Equal(t, "warn", os.Getenv("USERS_LOG_LEVEL"))
	assert.Equal(t, "people", os.Getenv("USERS_COLLECTION"))
}
