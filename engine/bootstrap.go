package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/config"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// Sandbox bundles an Engine with the resources NewSandbox created for it.
type Sandbox struct {
	Engine  Engine
	Backend backend.Backend
	// Watcher is nil unless shader hot reload is enabled.
	Watcher shader.Watcher
}

// NewSandbox builds the window, OpenGL backend, renderer, camera and optional shader watcher
// described by cfg and wires them into an Engine. The default slog logger is replaced with a text
// logger on stderr at the configured level.
//
// Parameters:
//   - cfg: the sandbox configuration
//   - options: extra engine options applied after the configured ones
//
// Returns:
//   - *Sandbox: the wired engine and its resources
//   - error: an error if the window, context or watcher could not be created
func NewSandbox(cfg config.Config, options ...EngineBuilderOption) (*Sandbox, error) {
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	win, err := window.NewWindow(cfg.WindowOptions()...)
	if err != nil {
		return nil, err
	}

	b, err := backend.NewGLBackend()
	if err != nil {
		_ = win.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	slog.Info("OpenGL initialized", "version", b.Version())

	// The framebuffer may be larger than the requested window size on high-DPI displays.
	rendererOptions := append(cfg.RendererOptions(), renderer.WithViewport(win.Width(), win.Height()))
	r := renderer.NewRenderer(b, rendererOptions...)

	cam := camera.NewPerspectiveCamera(cfg.CameraOptions()...)

	sb := &Sandbox{Backend: b}
	engineOptions := []EngineBuilderOption{
		WithWindow(win),
		WithRenderer(r),
		WithCamera(cam),
		WithProfiling(cfg.Profiling.Enabled),
		WithProfiler(profiler.NewProfiler(cfg.ProfilerOptions()...)),
		WithRenderFrameLimit(cfg.Renderer.FrameLimit),
	}
	if cfg.Shaders.HotReload {
		w, err := shader.NewWatcher()
		if err != nil {
			_ = win.Close()
			return nil, fmt.Errorf("failed to start shader watcher: %w", err)
		}
		sb.Watcher = w
		engineOptions = append(engineOptions, WithShaderWatcher(w))
	}

	sb.Engine = NewEngine(append(engineOptions, options...)...)
	return sb, nil
}

// Close stops the shader watcher and destroys the window.
func (s *Sandbox) Close() error {
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			slog.Warn("failed to close shader watcher", "error", err)
		}
	}
	return s.Engine.Window().Close()
}
