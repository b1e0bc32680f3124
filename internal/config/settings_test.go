package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadSettings_Defaults(t *testing.T) {
	settings, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "", settings.RulesPath)
	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "console", settings.Logging.Format)
	assert.Equal(t, "", settings.Logging.OutputFile)
}

func TestLoadSettings_EnvironmentOverrides(t *testing.T) {
	t.Setenv("RULESCALC_LOG_LEVEL", "debug")
	t.Setenv("RULESCALC_RULES", "/etc/rulescalc/2026.yaml")

	settings, err := LoadSettings(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", settings.Logging.Level)
	assert.Equal(t, "/etc/rulescalc/2026.yaml", settings.RulesPath)
}

func TestLoadSettings_File(t *testing.T) {
	path := writeFile(t, "settings.yaml", `
rules: custom-rules.yaml
log-format: json
`)

	settings, err := LoadSettings(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "custom-rules.yaml", settings.RulesPath)
	assert.Equal(t, "json", settings.Logging.Format)
	assert.Equal(t, "warn", settings.Logging.Level)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading settings file")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"info", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, level)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		logger, err := NewLogger(LoggingConfig{Level: "debug", Format: "console"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "rulescalc.log")
		logger, err := NewLogger(LoggingConfig{Level: "error", Format: "json", OutputFile: path})
		require.NoError(t, err)
		assert.False(t, logger.Core().Enabled(zapcore.WarnLevel))
		assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
		assert.DirExists(t, filepath.Dir(path))
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewLogger(LoggingConfig{Format: "xml"})
		assert.Error(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewLogger(LoggingConfig{Level: "loud"})
		assert.Error(t, err)
	})
}
