package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/homeprice/internal/env"
)

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Production, WithWriter(&buf))

	log.Info("Saved artifacts loaded", "locations", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "Saved artifacts loaded", record["msg"])
	assert.Equal(t, float64(3), record["locations"])
}

func TestNew_DevelopmentRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(env.Development, WithWriter(&buf), WithLevel(slog.LevelWarn))

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_LogToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "homeprice.log")
	log := New(env.Development,
		WithWriter(&buf),
		WithLogToFile(true),
		WithLogFile(path),
	)

	log.With("component", "test").Info("Written to both")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, buf.String(), "Written to both")
}

func TestNew_LogToFileRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "homeprice.log")
	log := New(env.Production,
		WithWriter(&buf),
		WithLevel(slog.LevelWarn),
		WithLogToFile(true),
		WithLogFile(path),
	)

	log.Info("Dropped")
	log.Warn("Kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Dropped")
	assert.Contains(t, string(data), "Kept")
	assert.NotContains(t, buf.String(), "Dropped")
	assert.Contains(t, buf.String(), "Kept")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}
