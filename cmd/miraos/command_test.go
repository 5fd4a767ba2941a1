package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestBrowseCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "games"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "alpha.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games", "beta.py"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "__init__.py"), nil, 0o644))

	out, err := runCmd(t, "browse", "--apps-dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "alpha.py")
	assert.Contains(t, out, "beta.py")
	assert.NotContains(t, out, "__init__.py")
}

func TestBrowseMissingDirectory(t *testing.T) {
	_, err := runCmd(t, "browse", "--apps-dir", filepath.Join(t.TempDir(), "nope"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestBrowseEmptyDirectory(t *testing.T) {
	out, err := runCmd(t, "browse", "--apps-dir", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No apps found.\n", out)
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "miraos.yaml")
	require.NoError(t, os.WriteFile(file, []byte("apps:\n  dir: /from/file\nlaunch:\n  strategy: pty\n"), 0o644))

	var flags globalFlags
	cmd := &cobra.Command{Use: "test"}
	flags.bind(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--config", file, "--strategy", "emulator"}))

	cfg, err := flags.load(cmd)
	require.NoError(t, err)
	assert.Equal(t, "/from/file", cfg.Apps.Dir)
	assert.Equal(t, "emulator", cfg.Launch.Strategy)
	assert.False(t, cfg.HTTP.Enabled)
}

func TestDevFlagRaisesLogLevel(t *testing.T) {
	var flags globalFlags
	cmd := &cobra.Command{Use: "test"}
	flags.bind(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--dev"}))

	cfg, err := flags.load(cmd)
	require.NoError(t, err)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestInvalidStrategyFlag(t *testing.T) {
	_, err := runCmd(t, "browse", "--apps-dir", t.TempDir(), "--strategy", "teleport")
	assert.ErrorContains(t, err, "unknown launch strategy")
}
