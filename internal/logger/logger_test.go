package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pedrohavay/medforms/internal/config"
)

func TestNewHonoursLevel(t *testing.T) {
	l, err := New(config.LogConfig{Level: "debug", Format: "json", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(config.LogConfig{Level: "warn", Format: "console", OutputPath: "stderr"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud", OutputPath: "stderr"})
	assert.ErrorContains(t, err, "invalid log level")
}
