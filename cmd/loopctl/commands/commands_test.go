package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := GetRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), "loopctl dev")
}

func TestProbe(t *testing.T) {
	out := run(t, "probe")
	assert.Contains(t, out, "platform:")
	assert.Contains(t, out, "transport:")
}

func TestGroups_JSON(t *testing.T) {
	t.Setenv("HIOLOAD_LOOPS_PREFIX", "cli")
	t.Setenv("HIOLOAD_LOGGING_LEVEL", "ERROR")
	out := run(t, "groups", "--workers", "2", "--select-count", "0", "-o", "json")

	var report groupsReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Groups, 3)

	byRole := make(map[string]groupView)
	for _, g := range report.Groups {
		byRole[g.Role] = g
	}
	assert.Equal(t, "cli-server-nio", byRole["select"].Name)
	assert.Equal(t, byRole["server"].Threads, byRole["select"].Threads)
	assert.False(t, byRole["server"].Colocated)
	assert.True(t, byRole["client"].Colocated)
	assert.Equal(t, []string{"cli-client-nio-3", "cli-client-nio-4"}, byRole["client"].Threads)
	assert.Contains(t, report.Stats, "loops.cli.threads_spawned")

	assert.Equal(t, "cli", report.Config["prefix"])
	assert.EqualValues(t, 2, report.Config["workers"])
	assert.EqualValues(t, 0, report.Config["select_count"])
}

func TestGroups_DedicatedAccept(t *testing.T) {
	t.Setenv("HIOLOAD_LOOPS_PREFIX", "acc")
	t.Setenv("HIOLOAD_LOGGING_LEVEL", "ERROR")
	out := run(t, "groups", "--workers", "1", "--select-count", "1", "-o", "text")

	assert.Contains(t, out, "acc-select-nio-3")
	assert.Contains(t, out, "acc-server-nio-1")
	assert.Contains(t, out, "acc-client-nio-2")
	assert.Contains(t, out, "loops.prefix = acc")
	assert.Contains(t, out, "loops.select_count = 1")
}

func TestGroups_UnknownOutput(t *testing.T) {
	t.Setenv("HIOLOAD_LOGGING_LEVEL", "ERROR")
	cmd := GetRootCmd()
	cmd.SetArgs([]string{"groups", "--workers", "1", "--select-count", "0", "-o", "xml"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
