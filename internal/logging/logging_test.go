package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultConfig(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, NewDefaultConfig(false).Level)
	assert.Equal(t, zapcore.DebugLevel, NewDefaultConfig(true).Level)
}

func TestNew(t *testing.T) {
	logger, err := New(NewDefaultConfig(false))
	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	verbose, err := New(NewDefaultConfig(true))
	require.NoError(t, err)
	assert.True(t, verbose.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_JSONFormat(t *testing.T) {
	logger, err := New(Config{Level: zapcore.InfoLevel, Format: "json"})
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Config{Level: zapcore.InfoLevel, Format: "xml"})
	assert.Error(t, err)
}
