package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/GlebRadaev/equb/internal/config"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		format        string
		expectedError string
		enabled       zapcore.Level
		disabled      zapcore.Level
	}{
		{name: "debug enables everything", level: "debug", format: FormatConsole, enabled: zapcore.DebugLevel, disabled: zapcore.DebugLevel - 1},
		{name: "info hides debug", level: "info", format: FormatJSON, enabled: zapcore.InfoLevel, disabled: zapcore.DebugLevel},
		{name: "warn hides info", level: "warn", enabled: zapcore.WarnLevel, disabled: zapcore.InfoLevel},
		{name: "error hides warn", level: "error", format: FormatJSON, enabled: zapcore.ErrorLevel, disabled: zapcore.WarnLevel},
		{name: "unknown level", level: "verbose", format: FormatConsole, expectedError: "unsupported log lvl: verbose"},
		{name: "unknown format", level: "info", format: "xml", expectedError: "unsupported log format: xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.level, tt.format)

			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.enabled))
			assert.False(t, logger.Core().Enabled(tt.disabled))
		})
	}
}

func TestInitLogger(t *testing.T) {
	previous := zap.L()
	t.Cleanup(func() { zap.ReplaceGlobals(previous) })

	require.NoError(t, InitLogger(&config.Config{LogLvl: "warn", LogFormat: FormatJSON}))
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))

	assert.Error(t, InitLogger(&config.Config{LogLvl: "loud"}))
	assert.True(t, zap.L().Core().Enabled(zapcore.WarnLevel))
}
