package server

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/config"
	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"alpha.py", "games/beta.py", "__init__.py"} {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}

	cfg := config.Default()
	cfg.Apps.Dir = dir
	return cfg
}

func TestNewServerRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Launch.Strategy = "teleport"

	_, err := NewServer(cfg, Options{In: strings.NewReader(""), Logger: logging.NewNop()})
	assert.ErrorContains(t, err, "invalid config")
}

func TestNewServerNeedsASurface(t *testing.T) {
	_, err := NewServer(config.Default(), Options{Logger: logging.NewNop()})
	assert.ErrorContains(t, err, "nothing to run")
}

func TestNewServerUnsupportedPlatform(t *testing.T) {
	_, err := NewServer(config.Default(), Options{In: strings.NewReader(""), GOOS: "plan9", Logger: logging.NewNop()})
	assert.ErrorContains(t, err, "unsupported platform")
}

func TestRunConsoleSession(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	srv, err := NewServer(cfg, Options{
		In:     strings.NewReader("browse\nrun missing.py\ntask_manager\nexit\n"),
		Out:    &out,
		GOOS:   "linux",
		Logger: logging.NewNop(),
	})
	require.NoError(t, err)

	require.NoError(t, srv.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Welcome to Mira OS!")
	assert.Contains(t, output, "  - alpha.py")
	assert.Contains(t, output, "  - beta.py")
	assert.NotContains(t, output, "__init__.py")
	assert.Contains(t, output, "Error: App 'missing.py' not found.")
	assert.Contains(t, output, "No apps are currently running.")
	assert.Len(t, srv.Controller().Catalog(), 2)
}

func TestRunMissingAppsDirectory(t *testing.T) {
	cfg := config.Default()
	cfg.Apps.Dir = filepath.Join(t.TempDir(), "Modules")
	var out bytes.Buffer

	srv, err := NewServer(cfg, Options{In: strings.NewReader("browse\n"), Out: &out, GOOS: "linux", Logger: logging.NewNop()})
	require.NoError(t, err)

	require.NoError(t, srv.Run(context.Background()))
	assert.Contains(t, out.String(), "does not exist.")
	assert.Contains(t, out.String(), "No apps found.")
}

func TestRunAppsDirectoryUnderFile(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "plain.txt"), nil, 0o644))

	cfg := config.Default()
	cfg.Apps.Dir = filepath.Join(parent, "plain.txt", "Modules")
	var out bytes.Buffer

	srv, err := NewServer(cfg, Options{In: strings.NewReader("browse\nexit\n"), Out: &out, GOOS: "linux", Logger: logging.NewNop()})
	require.NoError(t, err)

	require.NoError(t, srv.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Error: Base directory '"+cfg.Apps.Dir+"' does not exist.")
	assert.Contains(t, output, "Welcome to Mira OS!")
	assert.Contains(t, output, "No apps found.")
	assert.Empty(t, srv.Controller().Catalog())
}

func TestRunReportsConsoleReadError(t *testing.T) {
	readErr := errors.New("terminal detached")

	srv, err := NewServer(testConfig(t), Options{In: iotest.ErrReader(readErr), GOOS: "linux", Logger: logging.NewNop()})
	require.NoError(t, err)

	err = srv.Run(context.Background())
	require.ErrorIs(t, err, readErr)
	assert.ErrorContains(t, err, "console:")
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTP.Enabled = true
	cfg.HTTP.Port = "0"

	srv, err := NewServer(cfg, Options{GOOS: "linux", Logger: logging.NewNop()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancellation")
	}
}
