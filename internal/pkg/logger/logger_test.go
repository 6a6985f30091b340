package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.name, slog.LevelInfo))
		})
	}
}

func TestProductionHandlerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(newHandler(&buf, "production", "warn"))

	log.Info("dropped")
	log.Warn("cleaner configured", slog.String("profile", "v1"))

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "cleaner configured", record["msg"])
	assert.Equal(t, "v1", record["profile"])
}

func TestNewServiceLogger(t *testing.T) {
	assert.NotNil(t, NewServiceLogger("jobs"))
	assert.NotNil(t, WithFields(map[string]interface{}{"job_id": "1"}))
}
