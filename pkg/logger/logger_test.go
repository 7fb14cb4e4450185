package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/akademos/campus-records/pkg/config"
)

func TestNewDevelopmentDefaults(t *testing.T) {
	log, err := New(&config.Config{Env: config.EnvDevelopment})
	require.NoError(t, err)
	defer log.Sync()

	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRespectsLevel(t *testing.T) {
	log, err := New(&config.Config{
		Env: config.EnvProduction,
		Log: config.LogConfig{Level: "warn", Format: "json"},
	})
	require.NoError(t, err)
	defer log.Sync()

	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackOnBadLevel(t *testing.T) {
	log, err := New(&config.Config{
		Env: config.EnvProduction,
		Log: config.LogConfig{Level: "shouting", Format: "console"},
	})
	require.NoError(t, err)
	defer log.Sync()

	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}
