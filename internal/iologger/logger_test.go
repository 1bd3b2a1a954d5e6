package iologger

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tebreak/pkg/config"
	"github.com/gnames/tebreak/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	require.NoError(t, Init(dir, cfg, false))
	slog.Info("first", "n", 1)
	slog.Debug("hidden")

	require.NoError(t, Init(dir, cfg, true))
	slog.Warn("second")

	data, err := os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "first", rec["msg"])
	assert.Equal(t, "INFO", rec["level"])

	// fresh file without append
	require.NoError(t, Init(dir, cfg, false))
	slog.Info("third")
	data, err = os.ReadFile(filepath.Join(dir, LogFile))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "first")
	assert.Contains(t, string(data), "third")
}

func TestInitError(t *testing.T) {
	cfg := config.LogConfig{Format: "text", Level: "debug", Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.CreateLogFileError, gnErr.Code)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in  string
		res slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, v := range tests {
		assert.Equal(t, v.res, parseLevel(v.in), v.in)
	}
}
