package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) string {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

func TestConfigPathUsesFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out := runCommand(t, "--config", path, "config", "path")

	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestConfigShowDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out := runCommand(t, "--config", path, "config", "show")

	assert.Contains(t, out, "work: 25 min")
	assert.Contains(t, out, "short break: 5 min")
	assert.Contains(t, out, "long break: 15 min")
	assert.Contains(t, out, "sound: Ping")
	assert.Contains(t, out, "menu bar clock: true")
}

func TestConfigShowReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: 50\nsound: Hero\nmenu_bar_clock: false\n"), 0o644))

	out := runCommand(t, "--config", path, "config", "show")

	assert.Contains(t, out, "work: 50 min")
	assert.Contains(t, out, "sound: Hero")
	assert.Contains(t, out, "menu bar clock: false")
}

func TestConfigShowReportsParseErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("work_minutes: [oops"), 0o644))

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "config", "show"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
}
