package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "public", cfg.App.StaticDir)
	assert.Equal(t, "disable", cfg.DB.SSLMode)
	assert.Equal(t, 5*time.Second, cfg.DB.ConnectTimeout)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, 10*time.Second, cfg.Redis.SlotLockTTL)
	assert.Equal(t, 100, cfg.RateLimit.Burst)
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nDB_NAME=hospitalDB\nREDIS_HOST=cache\nSLOT_LOCK_TTL=3s\nDB_CONNECT_TIMEOUT=bogus\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "hospitalDB", cfg.DB.Name)
	assert.Equal(t, "cache", cfg.Redis.Host)
	assert.Equal(t, 3*time.Second, cfg.Redis.SlotLockTTL)
	assert.Equal(t, 5*time.Second, cfg.DB.ConnectTimeout, "unparsable duration falls back to default")
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=9090\n"), 0o600))
	t.Setenv("APP_PORT", "7070")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
}
