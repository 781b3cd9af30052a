// Package config loads the sandbox settings from an optional YAML file and translates them into the
// functional options the engine packages accept.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the file Load reads when called with an empty path.
const DefaultPath = "sandbox.yaml"

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// Config is the top-level sandbox configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Renderer  RendererConfig  `yaml:"renderer"`
	Shaders   ShaderConfig    `yaml:"shaders"`
	Profiling ProfilingConfig `yaml:"profiling"`
}

type WindowConfig struct {
	Title         string `yaml:"title"`
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	VSync         bool   `yaml:"vsync"`
	Samples       int    `yaml:"samples"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Pitch       float32    `yaml:"pitch"`
	Yaw         float32    `yaml:"yaw"`
	Fov         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
}

type RendererConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
	DepthTest  bool       `yaml:"depth_test"`
	// FrameLimit caps frames per second; 0 leaves the loop uncapped.
	FrameLimit float64 `yaml:"frame_limit"`
}

type ShaderConfig struct {
	HotReload bool `yaml:"hot_reload"`
}

type ProfilingConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
}

// Default returns the configuration used when no file is present.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Title:         "oxy-gl",
			Width:         800,
			Height:        600,
			VSync:         true,
			CaptureCursor: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 3},
			Pitch:       0,
			Yaw:         -90,
			Fov:         45,
			Near:        0.1,
			Far:         100,
			Speed:       2.5,
			Sensitivity: 0.01,
		},
		Renderer: RendererConfig{
			ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
			DepthTest:  true,
		},
		Profiling: ProfilingConfig{
			Interval: time.Second,
		},
	}
}

// Load reads the YAML file at path on top of Default. A missing file yields the defaults.
//
// Parameters:
//   - path: the file to read, DefaultPath when empty
//
// Returns:
//   - Config: the loaded configuration
//   - error: a read, parse or validation error
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML on top of Default and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: YAML document
//
// Returns:
//   - Config: the decoded configuration
//   - error: a parse or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.Samples < 0 {
		errs = append(errs, fmt.Errorf("window samples must not be negative, got %d", c.Window.Samples))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes must satisfy 0 < near < far, got %g/%g", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180), got %g", c.Camera.Fov))
	}
	if c.Renderer.FrameLimit < 0 {
		errs = append(errs, fmt.Errorf("renderer frame_limit must not be negative, got %g", c.Renderer.FrameLimit))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// NewLogger returns a text logger writing to w at the configured level.
//
// Parameters:
//   - w: the log destination
//
// Returns:
//   - *slog.Logger: the configured logger
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := c.Level()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WindowOptions maps the window section onto window builder options.
func (c Config) WindowOptions() []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(c.Window.Title),
		window.WithSize(c.Window.Width, c.Window.Height),
		window.WithVSync(c.Window.VSync),
		window.WithSamples(c.Window.Samples),
		window.WithCursorCaptured(c.Window.CaptureCursor),
	}
}

// CameraOptions maps the camera section onto camera builder options. The aspect ratio is derived
// from the window size.
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	p := c.Camera.Position
	return []camera.CameraBuilderOption{
		camera.WithPosition(p[0], p[1], p[2]),
		camera.WithEuler(c.Camera.Pitch, c.Camera.Yaw),
		camera.WithFov(c.Camera.Fov),
		camera.WithAspect(float32(c.Window.Width) / float32(c.Window.Height)),
		camera.WithNear(c.Camera.Near),
		camera.WithFar(c.Camera.Far),
		camera.WithSpeed(c.Camera.Speed),
		camera.WithSensitivity(c.Camera.Sensitivity),
	}
}

// RendererOptions maps the renderer section onto renderer builder options.
func (c Config) RendererOptions() []renderer.RendererBuilderOption {
	return []renderer.RendererBuilderOption{
		renderer.WithClearColor(mgl32.Vec4(c.Renderer.ClearColor)),
		renderer.WithViewport(c.Window.Width, c.Window.Height),
		renderer.WithDepthTest(c.Renderer.DepthTest),
	}
}

// ProfilerOptions maps the profiling section onto profiler builder options.
func (c Config) ProfilerOptions() []profiler.ProfilerBuilderOption {
	return []profiler.ProfilerBuilderOption{
		profiler.WithInterval(c.Profiling.Interval),
	}
}
