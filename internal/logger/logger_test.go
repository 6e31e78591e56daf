package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, lvl, fmtName string) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	InitWithWriter(buf, lvl, fmtName)
	t.Cleanup(func() { InitWithWriter(os.Stderr, "INFO", "text") })
	return buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, "WARN", "json")
	log := L()
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestJSONFormat_ComponentField(t *testing.T) {
	buf := capture(t, "DEBUG", "json")
	log := Component("selector")
	log.Debug().Str("role", "server").Msg("group created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "selector", entry["component"])
	assert.Equal(t, "server", entry["role"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "group created", entry["message"])
}

func TestSetLevel_Invalid(t *testing.T) {
	assert.Error(t, SetLevel("TRACE"))
	assert.Error(t, SetFormat("xml"))
}

func TestInit_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loops.log")
	t.Cleanup(func() { InitWithWriter(os.Stderr, "INFO", "text") })

	require.NoError(t, Init(Config{Level: "info", Format: "json", Output: path}))
	log := L()
	log.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestInit_ReplacingFileClosesPrevious(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(func() { InitWithWriter(os.Stderr, "INFO", "text") })

	require.NoError(t, Init(Config{Output: filepath.Join(dir, "a.log")}))
	mu.RLock()
	first := logFile
	mu.RUnlock()
	require.NotNil(t, first)

	require.NoError(t, Init(Config{Output: filepath.Join(dir, "b.log")}))
	_, err := first.WriteString("late")
	assert.ErrorIs(t, err, os.ErrClosed)

	mu.RLock()
	second := logFile
	mu.RUnlock()
	require.NotNil(t, second)

	InitWithWriter(new(bytes.Buffer), "INFO", "json")
	_, err = second.WriteString("late")
	assert.ErrorIs(t, err, os.ErrClosed)
	mu.RLock()
	assert.Nil(t, logFile)
	mu.RUnlock()
}
