package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	level, ok := ParseLevel("debug")
	require.True(t, ok)
	require.Equal(t, zapcore.DebugLevel, level)

	level, ok = ParseLevel(" WARN ")
	require.True(t, ok)
	require.Equal(t, zapcore.WarnLevel, level)

	level, ok = ParseLevel("verbose")
	require.False(t, ok)
	require.Equal(t, zapcore.InfoLevel, level)
}

func TestGlobalLogger(t *testing.T) {
	require.NotNil(t, L())

	SetLevel(zapcore.WarnLevel)
	require.Equal(t, zapcore.WarnLevel, defaultLevel.Level())
	SetLevel(zapcore.InfoLevel)
}
