package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "./backups", cfg.Backup.RootDir)
	assert.Equal(t, 5, cfg.Backup.Retention)
	assert.Equal(t, "./exports", cfg.Export.DataDir)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BACKUP_ROOT_DIR", "/var/backups")
	t.Setenv("BACKUP_RETENTION", "9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/var/backups", cfg.Backup.RootDir)
	assert.Equal(t, 9, cfg.Backup.Retention)
}

func TestLoadClampsNegativeRetention(t *testing.T) {
	t.Setenv("BACKUP_RETENTION", "-3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Backup.Retention)
}
