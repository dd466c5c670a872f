package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 5, cfg.Lockout.FailureThreshold)
	assert.Equal(t, time.Second, cfg.Lockout.TickInterval.Duration)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keygate.toml")
	body := `
[server]
addr = ":9000"
session_token_ttl = "30m"

[store]
backend = "sqlite"
sqlite_path = "/tmp/lock.db"

[lockout]
failure_threshold = 3
wrong_clear_delay = "1500ms"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Server.SessionTokenTTL.Duration)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, 3, cfg.Lockout.FailureThreshold)
	assert.Equal(t, 1500*time.Millisecond, cfg.Lockout.WrongClearDelay.Duration)
	// untouched section keeps its default
	assert.Equal(t, 5*time.Second, cfg.Lockout.WakeInterval.Duration)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("KEYGATE_ADDR", ":8181")
	t.Setenv("KEYGATE_GESTURE_HASH", "$2a$10$stub")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8181", cfg.Server.Addr)
	assert.Equal(t, "$2a$10$stub", cfg.Credential.GestureHash)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("KEYGATE_STORE_BACKEND", "redis")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keygate.toml")
	require.NoError(t, os.WriteFile(path, []byte("[lockout]\nfailure_threshold = 0\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
