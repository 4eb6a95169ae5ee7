package util

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", TruncateString("Ada Lovelace", 20))
	assert.Equal(t, "Ada Lo...", TruncateString("Ada Lovelace", 9))
	assert.Equal(t, "세종대...", TruncateString("세종대왕 이도", 6))
	assert.Equal(t, "Ada", TruncateString("Ada Lovelace", 3))
	assert.Equal(t, "unchanged", TruncateString("unchanged", 0))
}

func TestFirstNonBlank(t *testing.T) {
	assert.Equal(t, "India", FirstNonBlank("  ", "", "India", "Peru"))
	assert.Equal(t, "", FirstNonBlank(" ", "\n"))
}

func TestSingleLine(t *testing.T) {
	assert.Equal(t, "Grew up poor. Became a chemist.", SingleLine("Grew up poor.\n  Became a chemist.\t"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("chatty"))
}

func TestNewLoggerWritesToFallback(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger("info", "", &buf)
	require.NoError(t, err)

	logger.Info("Figures loaded")
	logger.Debug("hidden")
	require.NoError(t, logger.Sync())

	assert.Contains(t, buf.String(), "INFO | ")
	assert.Contains(t, buf.String(), "Figures loaded")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerCreatesLogDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "figures.log")
	logger, err := NewLogger("debug", path, nil)
	require.NoError(t, err)
	logger.Debug("written")
	require.NoError(t, logger.Sync())
	assert.FileExists(t, path)
}

func TestNewLoggerWithoutSinkIsNop(t *testing.T) {
	logger, err := NewLogger("info", "", nil)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.ErrorLevel))
}
