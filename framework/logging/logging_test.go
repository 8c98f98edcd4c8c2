package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger_WritesModuleAndVersion(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "fixtured", "v1.2.3", slog.LevelInfo)

	l.Info("built fixture", "name", "user")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "fixtured", entry["module"])
	assert.Equal(t, "v1.2.3", entry["version"])
	assert.Equal(t, "user", entry["name"])
	assert.NotContains(t, entry, "source")
}

func TestNewLogger_DebugAddsSource(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "fixtured", "dev", slog.LevelDebug)

	l.Debug("resolving")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Contains(t, entry, "source")
}

func TestNewLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "fixtured", "dev", slog.LevelWarn)

	l.Info("dropped")
	assert.Zero(t, buf.Len())
}

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestSetDefaultStructuredLoggerWithLevel(t *testing.T) {
	restoreDefault(t)

	l := SetDefaultStructuredLoggerWithLevel("fixtured", "dev", "warn")
	assert.Same(t, l, slog.Default())
	assert.IsType(t, &slog.JSONHandler{}, l.Handler())
	assert.True(t, l.Enabled(context.Background(), slog.LevelWarn))
	assert.False(t, l.Enabled(context.Background(), slog.LevelInfo))
}

func TestSetDefaultStructuredLogger_ReadsLogLevel(t *testing.T) {
	restoreDefault(t)
	t.Setenv("LOG_LEVEL", "debug")

	l := SetDefaultStructuredLogger("fixtured", "dev")
	assert.Same(t, l, slog.Default())
	assert.True(t, l.Enabled(context.Background(), slog.LevelDebug))
}
