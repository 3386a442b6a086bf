package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rdcore/internal/core"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"info+2", slog.LevelInfo + 2},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		log, err := newLogger(tt.level, "text", &bytes.Buffer{})
		require.NoError(t, err, tt.level)
		assert.True(t, log.Enabled(context.Background(), tt.want), tt.level)
		assert.False(t, log.Enabled(context.Background(), tt.want-1), tt.level)
	}
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger("info", "JSON", &buf)
	require.NoError(t, err)
	log.Info("loaded", "rule", "Gray-Scott")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "loaded", rec["msg"])
	assert.Equal(t, "Gray-Scott", rec["rule"])
}

func TestNewLoggerRejectsUnknownSettings(t *testing.T) {
	_, err := newLogger("loud", "text", &bytes.Buffer{})
	assert.ErrorIs(t, err, core.ErrUnrecognizedValue)

	_, err = newLogger("info", "xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, core.ErrUnrecognizedValue)
}
