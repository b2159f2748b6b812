package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug", LevelInfo))
	assert.Equal(t, LevelWarn, ParseLevel(" WARNING ", LevelInfo))
	assert.Equal(t, LevelError, ParseLevel("error", LevelInfo))
	assert.Equal(t, LevelInfo, ParseLevel("nonsense", LevelInfo))
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, LevelInfo).With(String("comp", "test"))

	log.Info("plan ready", Int("blocks", 3), Err(errors.New("boom")))
	log.Debug("dropped")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "plan ready", line["message"])
	assert.Equal(t, "test", line["comp"])
	assert.Equal(t, float64(3), line["blocks"])
	assert.Equal(t, "boom", line["err"])
	assert.Contains(t, line["caller"], "logging_test.go:")
}

func TestLogger_ZeroValueIsNoop(t *testing.T) {
	var log Logger
	assert.NotPanics(t, func() { log.Info("nothing") })
	assert.False(t, log.Enabled(LevelError))
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.log")
	log, closer, err := New(Config{Level: "info", File: path})
	require.NoError(t, err)
	log.Info("hello")
	require.NoError(t, closer.Close())
	assert.FileExists(t, path)
}
