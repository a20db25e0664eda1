package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8750", cfg.ListenAddr())
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30, cfg.Social.RetentionDays)
	assert.Equal(t, 5, cfg.Social.MaxInjectedMemories)
	assert.Equal(t, 5, cfg.Social.MinImportanceScore)
	assert.Equal(t, 0, cfg.Social.DefaultAffection)
	assert.Equal(t, 20, cfg.Social.MaxHistoryEvents)
	assert.True(t, cfg.Social.EnableBondSystem)
	assert.Equal(t, 3, cfg.Social.AffectionPromptLimit)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9000
storage:
  backend: memory
social:
  retention_days: 7
  enable_bond_system: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 7, cfg.Social.RetentionDays)
	assert.False(t, cfg.Social.EnableBondSystem)
	// Untouched keys keep their defaults.
	assert.Equal(t, "127.0.0.1", cfg.Server.Bind)
	assert.Equal(t, 5, cfg.Social.MaxInjectedMemories)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SOCIALMEM_SERVER_PORT", "9100")
	t.Setenv("SOCIALMEM_SOCIAL_RETENTION_DAYS", "14")
	t.Setenv("SOCIALMEM_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 14, cfg.Social.RetentionDays)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))
	t.Setenv("SOCIALMEM_SERVER_PORT", "9200")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("SOCIALMEM_STORAGE_BACKEND", "cassandra")

	_, err := Load("")
	assert.Error(t, err, "unknown backend must fail validation")
}

func TestLoadRejectsBadFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
	_, err = Load(path)
	assert.Error(t, err, "only yaml and json are supported")
}

func TestValidateRanges(t *testing.T) {
	cfg := Default()
	cfg.Social.DefaultAffection = 500
	assert.Error(t, Validate(&cfg))

	cfg = Default()
	cfg.Social.MinImportanceScore = 11
	assert.Error(t, Validate(&cfg))

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, Validate(&cfg))

	cfg = Default()
	assert.NoError(t, Validate(&cfg))
}
