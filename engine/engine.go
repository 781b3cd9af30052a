package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// ErrMissingDependency is returned by Run when the engine was built without a window or renderer.
var ErrMissingDependency = errors.New("engine: missing dependency")

// FrameContext carries per-frame state to the update and render callbacks.
type FrameContext struct {
	Window   window.Window
	Camera   camera.Camera
	Renderer renderer.Renderer

	// DeltaTime is the time since the previous frame in seconds.
	DeltaTime float32
	// Time is the window clock in seconds.
	Time float64
	// Frame counts frames from 0.
	Frame uint64
}

// engine implements the Engine interface.
// Runs a single-threaded frame loop on the goroutine that owns the GL context.
type engine struct {
	mu *sync.Mutex

	quitOnce sync.Once
	quit     bool

	window   window.Window
	camera   camera.Camera
	renderer renderer.Renderer
	watcher  shader.Watcher
	mouse    *MouseTracker

	profiler         *profiler.Profiler
	profilingEnabled bool

	mouseLook bool
	keyboard  bool

	updateCallback func(ctx *FrameContext)
	renderCallback func(ctx *FrameContext)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        uint64        // 0 = unbounded
}

// Engine is the main entry point for the engine.
// It wires window input to the camera and drives the frame loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Camera returns the camera driven by window input.
	Camera() camera.Camera

	// Renderer returns the renderer used for each frame.
	Renderer() renderer.Renderer

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetUpdateCallback registers the function called each frame after input is applied and before
	// rendering. Use this for animation and game logic.
	//
	// Parameters:
	//   - callback: function receiving the frame context
	SetUpdateCallback(callback func(ctx *FrameContext))

	// SetRenderCallback registers the function called each frame between BeginScene and EndScene.
	//
	// Parameters:
	//   - callback: function receiving the frame context
	SetRenderCallback(callback func(ctx *FrameContext))

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the frame loop and blocks until the window closes, Quit is called or the frame
	// limit set by WithMaxFrames is reached.
	//
	// Returns:
	//   - error: ErrMissingDependency, or an error recovered from a panicking callback
	Run() error

	// Quit stops the loop after the current frame and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When no camera is given one is created with the window's aspect ratio.
// Input callbacks are registered on the window immediately.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:        &sync.Mutex{},
		mouse:     NewMouseTracker(),
		mouseLook: true,
		keyboard:  true,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}

	if e.window == nil {
		return e
	}

	if e.camera == nil {
		aspect := float32(800.0 / 600.0)
		if e.window.Height() > 0 {
			aspect = float32(e.window.Width()) / float32(e.window.Height())
		}
		e.camera = camera.NewPerspectiveCamera(camera.WithAspect(aspect))
	}

	e.window.SetResizeCallback(e.handleResize)
	e.window.SetScrollCallback(func(delta float32) {
		e.camera.ProcessScrollEvent(delta)
	})
	e.window.SetMouseMoveCallback(func(x, y float64) {
		dx, dy := e.mouse.Offset(x, y)
		if !e.mouseLook {
			return
		}
		// Screen y grows downwards; pitch grows upwards.
		e.camera.ProcessMouseEvent(dx, -dy, true)
	})

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetUpdateCallback(callback func(ctx *FrameContext)) {
	e.updateCallback = callback
}

func (e *engine) SetRenderCallback(callback func(ctx *FrameContext)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

// Quit stops the loop after the current frame.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.quit = true
		e.mu.Unlock()
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

func (e *engine) Run() (err error) {
	if e.window == nil || e.renderer == nil {
		return fmt.Errorf("%w: window and renderer are required", ErrMissingDependency)
	}

	// Recover from panics inside frame callbacks so the caller can still release GL resources.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("frame loop recovered from panic", "panic", r)
			err = fmt.Errorf("frame loop panicked: %v", r)
			e.Quit()
		}
	}()

	ctx := &FrameContext{
		Window:   e.window,
		Camera:   e.camera,
		Renderer: e.renderer,
		Time:     e.window.Time(),
	}
	lastFrame := ctx.Time

	for e.running() {
		frameStart := time.Now()

		e.window.PollEvents()

		now := e.window.Time()
		ctx.DeltaTime = float32(now - lastFrame)
		ctx.Time = now
		lastFrame = now

		if e.keyboard {
			processMovement(e.window, e.camera, ctx.DeltaTime)
		}

		if e.watcher != nil {
			if n, pollErr := e.watcher.Poll(); pollErr != nil {
				slog.Error("shader reload failed, keeping previous program", "error", pollErr)
			} else if n > 0 {
				slog.Info("shaders reloaded", "count", n)
			}
		}

		if e.updateCallback != nil {
			e.updateCallback(ctx)
		}

		e.renderer.Clear()
		e.renderer.BeginScene(e.camera)
		if e.renderCallback != nil {
			e.renderCallback(ctx)
		}
		e.renderer.EndScene()
		e.window.SwapBuffers()

		e.mu.Lock()
		profiling, limit := e.profilingEnabled, e.renderFrameLimit
		e.mu.Unlock()

		if profiling {
			e.profiler.Tick(e.renderer.Stats().DrawCalls)
		}

		ctx.Frame++
		if e.maxFrames > 0 && ctx.Frame >= e.maxFrames {
			e.Quit()
		}

		if limit > 0 {
			if remaining := limit - time.Since(frameStart); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
	return nil
}

func (e *engine) running() bool {
	e.mu.Lock()
	quit := e.quit
	e.mu.Unlock()
	return !quit && e.window.IsRunning()
}

// handleResize keeps the viewport and the camera aspect ratio in sync with the framebuffer.
// Minimized windows report a zero size and are ignored.
func (e *engine) handleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	e.camera.SetAspect(float32(width) / float32(height))
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
