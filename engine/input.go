package engine

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
)

// movementKeys maps held keys to camera movement. WASD and the arrow keys are equivalent.
var movementKeys = []struct {
	key       uint32
	direction camera.Direction
}{
	{common.KeyW, camera.Forward},
	{common.KeyUp, camera.Forward},
	{common.KeyS, camera.Backward},
	{common.KeyDown, camera.Backward},
	{common.KeyA, camera.Left},
	{common.KeyLeft, camera.Left},
	{common.KeyD, camera.Right},
	{common.KeyRight, camera.Right},
}

// processMovement moves the camera once per held movement key.
func processMovement(w window.Window, cam camera.Camera, deltaTime float32) {
	for _, m := range movementKeys {
		if w.IsKeyPressed(m.key) {
			cam.ProcessKeyEvent(m.direction, deltaTime)
		}
	}
}

// MouseTracker converts absolute cursor positions into per-event offsets.
// The first position after construction or Reset only primes the tracker, so a cursor that starts
// far from the window center does not cause a jump.
type MouseTracker struct {
	lastX, lastY float64
	primed       bool
}

// NewMouseTracker creates an unprimed MouseTracker.
func NewMouseTracker() *MouseTracker {
	return &MouseTracker{}
}

// Offset returns the cursor movement since the previous position.
//
// Parameters:
//   - x, y: the cursor position in screen coordinates
//
// Returns:
//   - dx: horizontal movement, positive to the right
//   - dy: vertical movement, positive downwards
func (m *MouseTracker) Offset(x, y float64) (dx, dy float32) {
	if !m.primed {
		m.lastX, m.lastY = x, y
		m.primed = true
		return 0, 0
	}
	dx = float32(x - m.lastX)
	dy = float32(y - m.lastY)
	m.lastX, m.lastY = x, y
	return dx, dy
}

// Reset makes the next position prime the tracker again.
func (m *MouseTracker) Reset() {
	m.primed = false
}
