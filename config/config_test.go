package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Backdrop.StreakCount)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backdrop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window:
  width: 800
backdrop:
  seed: 7
  trace_count: 10
headless:
  progress: [0.1, 0.9]
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height, "unset fields keep defaults")
	assert.Equal(t, uint64(7), cfg.Backdrop.Seed)
	assert.Equal(t, 10, cfg.Backdrop.TraceCount)
	assert.Equal(t, []float64{0.1, 0.9}, cfg.Headless.Progress)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "backdrop.yaml")
	cfg := DefaultConfig()
	cfg.Page.Screens = 5
	require.NoError(t, cfg.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Page.Screens)
}

func TestEnvSeedOverride(t *testing.T) {
	t.Setenv(EnvSeed, "12345")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), cfg.Backdrop.Seed)

	t.Setenv(EnvSeed, "not-a-number")
	_, err = Load("")
	assert.ErrorContains(t, err, EnvSeed)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width = 0
	cfg.Loop.FPS = -1
	cfg.Page.Screens = 0.5
	cfg.Headless.Progress = []float64{1.5}

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"window size", "loop.fps", "page.screens", "headless.progress"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window: [oops"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse config")
}
