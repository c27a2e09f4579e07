package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadDefaults verifies the values used when nothing is configured.
func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "memory", cfg.Repository.Backend)
	assert.Equal(t, ":memory:", cfg.Repository.DSN)
	assert.Equal(t, 1000, cfg.Repository.MaxUsers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.Output)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("USERDIR_REPOSITORY_BACKEND", "sqlite")
	t.Setenv("USERDIR_REPOSITORY_MAX_USERS", "25")
	t.Setenv("USERDIR_LOG_LEVEL", "DEBUG")
	t.Setenv("USERDIR_LOG_FORMAT", "json")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Repository.Backend)
	assert.Equal(t, 25, cfg.Repository.MaxUsers)
	assert.Equal(t, "debug", cfg.Log.Level, "level is normalised to lower case")
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdir.yaml")
	err := os.WriteFile(path, []byte(`
repository:
  backend: sqlite
  dsn: /tmp/userdir.db
  max_users: 10
log:
  level: warn
`), 0o600)
	require.NoError(t, err)

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Repository.Backend)
	assert.Equal(t, "/tmp/userdir.db", cfg.Repository.DSN)
	assert.Equal(t, 10, cfg.Repository.MaxUsers)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep their defaults")
}

func TestLoadFile_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "userdir.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("USERDIR_LOG_LEVEL", "error")

	cfg, err := LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := LoadFile(path)

	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "config: reading "+path)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"USERDIR_REPOSITORY_BACKEND": "postgres"}},
		{"zero capacity", map[string]string{"USERDIR_REPOSITORY_MAX_USERS": "0"}},
		{"negative capacity", map[string]string{"USERDIR_REPOSITORY_MAX_USERS": "-5"}},
		{"unknown level", map[string]string{"USERDIR_LOG_LEVEL": "verbose"}},
		{"unknown format", map[string]string{"USERDIR_LOG_FORMAT": "xml"}},
		{"unknown output", map[string]string{"USERDIR_LOG_OUTPUT": "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
