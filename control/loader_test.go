package control

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loops.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultLoopsConfig(), cfg.Loops)
	assert.GreaterOrEqual(t, cfg.Loops.Workers, 4)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, `
loops:
  prefix: edge
  workers: 6
  select_count: 2
  daemon: false
logging:
  level: DEBUG
  format: json
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, LoopsConfig{Prefix: "edge", Workers: 6, SelectCount: 2, Daemon: false}, cfg.Loops)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "loops:\n  workers: 6\n")
	t.Setenv("HIOLOAD_LOOPS_WORKERS", "3")
	t.Setenv("HIOLOAD_LOOPS_PREFIX", "env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Loops.Workers)
	assert.Equal(t, "env", cfg.Loops.Prefix)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero workers", "loops:\n  workers: 0\n", "Workers"},
		{"negative select", "loops:\n  select_count: -1\n", "SelectCount"},
		{"empty prefix", "loops:\n  prefix: \"\"\n", "Prefix"},
		{"bad level", "logging:\n  level: LOUD\n", "Level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
