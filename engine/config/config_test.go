package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "sandbox.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestExampleFileMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "sandbox.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sandbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: debug
window:
  title: lit cube
  width: 1280
  height: 720
camera:
  position: [1, 2, 3]
  fov: 30
renderer:
  clear_color: [0.1, 0.1, 0.1, 1]
  frame_limit: 144
shaders:
  hot_reload: true
profiling:
  enabled: true
  interval: 500ms
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lit cube", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.Window.VSync, "unset keys keep defaults")
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(30), cfg.Camera.Fov)
	assert.Equal(t, float32(100), cfg.Camera.Far)
	assert.Equal(t, [4]float32{0.1, 0.1, 0.1, 1}, cfg.Renderer.ClearColor)
	assert.Equal(t, 144.0, cfg.Renderer.FrameLimit)
	assert.True(t, cfg.Shaders.HotReload)
	assert.True(t, cfg.Profiling.Enabled)
	assert.Equal(t, 500*time.Millisecond, cfg.Profiling.Interval)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("window:\n  colour: red\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"size":     "window:\n  width: 0\n",
		"planes":   "camera:\n  near: 10\n  far: 1\n",
		"fov":      "camera:\n  fov: 180\n",
		"limit":    "renderer:\n  frame_limit: -1\n",
		"loglevel": "log_level: loud\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestOptionsCoverEverySection(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.WindowOptions(), 5)
	assert.Len(t, cfg.CameraOptions(), 8)
	assert.Len(t, cfg.RendererOptions(), 3)
	assert.Len(t, cfg.ProfilerOptions(), 1)
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	var out bytes.Buffer
	logger := cfg.NewLogger(&out)

	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}
