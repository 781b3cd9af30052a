package window

import (
	"fmt"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
)

// Window provides an OpenGL context plus platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
//
// All methods must be called from the goroutine that created the window.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMouseMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the cursor x, y position in screen coordinates
	SetMouseMoveCallback(callback func(x, y float64))

	// IsKeyPressed reports whether a key is currently held down.
	//
	// Parameters:
	//   - keyCode: the virtual key code (see common.Key*)
	//
	// Returns:
	//   - bool: true while the key is down
	IsKeyPressed(keyCode uint32) bool

	// SetCursorCaptured hides and locks the cursor for mouse-look when captured is true.
	//
	// Parameters:
	//   - captured: true to capture the cursor, false to release it
	SetCursorCaptured(captured bool)

	// PollEvents processes pending window and input events, dispatching callbacks.
	PollEvents()

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// Time returns the seconds elapsed since the window was created.
	Time() float64

	// RequestClose asks the window to close at the end of the current frame.
	RequestClose()

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false once a close was requested
	IsRunning() bool

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never initialized
	Close() error

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	maxWidth  int
	maxHeight int
	minWidth  int
	minHeight int

	// width and height are the current framebuffer size in pixels.
	width  int
	height int

	// samples is the MSAA sample count requested for the default framebuffer (0 disables it).
	samples int

	vsync          bool
	cursorCaptured bool

	// closeKeys request a close when pressed.
	closeKeys []uint32

	// pressed tracks keys that are currently held down.
	pressed map[uint32]bool

	closeRequested bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onResize    func(width, height int)
	onScroll    func(delta float32)
	onKeyDown   func(keyCode uint32)
	onKeyUp     func(keyCode uint32)
	onMouseMove func(x, y float64)
}

var _ Window = &engineWindow{}

// NewWindow creates a window with a current OpenGL 4.1 core context.
// Applies default values first, then each option in order. The calling goroutine is locked to
// its OS thread for the lifetime of the context.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the created window
//   - error: error if the platform window or context could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

// newEngineWindow applies defaults and options without touching the platform layer.
func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		mu:        &sync.Mutex{},
		title:     "oxy-gl",
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 240,
		width:     800,
		height:    600,
		vsync:     true,
		closeKeys: []uint32{common.KeyEsc, common.KeySpace},
		pressed:   make(map[uint32]bool),
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float64)) {
	w.onMouseMove = callback
}

func (w *engineWindow) IsKeyPressed(keyCode uint32) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pressed[keyCode]
}

func (w *engineWindow) SetCursorCaptured(captured bool) {
	w.mu.Lock()
	w.cursorCaptured = captured
	w.mu.Unlock()
	platformSetCursorCaptured(w, captured)
}

func (w *engineWindow) PollEvents() {
	platformPollEvents(w)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) Time() float64 {
	return platformTime(w)
}

func (w *engineWindow) RequestClose() {
	w.mu.Lock()
	w.closeRequested = true
	w.mu.Unlock()
	platformRequestClose(w)
}

func (w *engineWindow) IsRunning() bool {
	w.mu.Lock()
	requested := w.closeRequested
	w.mu.Unlock()
	return !requested && platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *engineWindow) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

// handleKey records key state, honors close keys and dispatches the key callbacks.
func (w *engineWindow) handleKey(keyCode uint32, down bool) {
	w.mu.Lock()
	w.pressed[keyCode] = down
	closeKey := down && slices.Contains(w.closeKeys, keyCode)
	w.mu.Unlock()

	if closeKey {
		w.RequestClose()
		return
	}
	if down {
		if w.onKeyDown != nil {
			w.onKeyDown(keyCode)
		}
		return
	}
	if w.onKeyUp != nil {
		w.onKeyUp(keyCode)
	}
}

// handleResize stores the framebuffer size and dispatches the resize callback.
func (w *engineWindow) handleResize(width, height int) {
	w.mu.Lock()
	w.width = width
	w.height = height
	w.mu.Unlock()
	if w.onResize != nil {
		w.onResize(width, height)
	}
}

func (w *engineWindow) handleScroll(delta float32) {
	if w.onScroll != nil {
		w.onScroll(delta)
	}
}

func (w *engineWindow) handleMouseMove(x, y float64) {
	if w.onMouseMove != nil {
		w.onMouseMove(x, y)
	}
}
