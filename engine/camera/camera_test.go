package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-5

// assertVec3 compares per component with an absolute tolerance. ApproxEqualThreshold is relative and
// rejects tiny float32 residues such as cos(-90°) against an exact zero.
func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], eps, "want %v, got %v", want, got)
}

func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], eps)
}

func TestDefaults(t *testing.T) {
	c := NewPerspectiveCamera()

	pitch, yaw := c.Euler()
	assert.Equal(t, float32(0), pitch)
	assert.Equal(t, float32(-90), yaw)
	assert.Equal(t, float32(45), c.Fov())
	assert.InDelta(t, 800.0/600.0, c.Aspect(), eps)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, float32(2.5), c.Speed())
	assert.Equal(t, float32(0.01), c.Sensitivity())

	assertVec3(t, mgl32.Vec3{0, 0, -1}, c.Front())
	assertVec3(t, mgl32.Vec3{1, 0, 0}, c.Right())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Up())
}

func TestViewProjectionMatchesComponents(t *testing.T) {
	c := NewPerspectiveCamera(WithPosition(1, 2, 3), WithEuler(20, -45))

	pos, front, up := c.Position(), c.Front(), c.Up()
	view := mgl32.LookAtV(pos, pos.Add(front), up)
	proj := mgl32.Perspective(mgl32.DegToRad(45), 800.0/600.0, 0.1, 100)

	assertMat4(t, view, c.ViewMatrix())
	assertMat4(t, proj, c.ProjectionMatrix())
	assertMat4(t, proj.Mul4(view), c.ViewProjectionMatrix())
}

func TestProcessKeyEvent(t *testing.T) {
	c := NewPerspectiveCamera()

	c.ProcessKeyEvent(Forward, 1)
	assertVec3(t, mgl32.Vec3{0, 0, -2.5}, c.Position())

	c.ProcessKeyEvent(Backward, 0.5)
	assertVec3(t, mgl32.Vec3{0, 0, -1.25}, c.Position())

	c.ProcessKeyEvent(Right, 2)
	assertVec3(t, mgl32.Vec3{5, 0, -1.25}, c.Position())

	c.ProcessKeyEvent(Left, 2)
	assertVec3(t, mgl32.Vec3{0, 0, -1.25}, c.Position())

	before := c.ViewMatrix()
	c.ProcessKeyEvent(Forward, 1)
	assert.NotEqual(t, before, c.ViewMatrix(), "view must be recomputed")
}

func TestProcessMouseEventClampsPitch(t *testing.T) {
	c := NewPerspectiveCamera(WithSensitivity(1))

	c.ProcessMouseEvent(10, 200, true)
	pitch, yaw := c.Euler()
	assert.Equal(t, float32(89), pitch)
	assert.Equal(t, float32(-80), yaw)

	c.ProcessMouseEvent(0, -500, true)
	pitch, _ = c.Euler()
	assert.Equal(t, float32(-89), pitch)

	assert.InDelta(t, 1.0, c.Front().Len(), eps)
	assert.InDelta(t, 1.0, c.Right().Len(), eps)
	assert.InDelta(t, 1.0, c.Up().Len(), eps)
}

func TestProcessMouseEventUnconstrained(t *testing.T) {
	c := NewPerspectiveCamera(WithSensitivity(1))

	c.ProcessMouseEvent(0, 120, false)
	pitch, _ := c.Euler()
	assert.Equal(t, float32(120), pitch)
	assert.InDelta(t, 1.0, c.Front().Len(), eps)
}

func TestProcessMouseEventSensitivity(t *testing.T) {
	c := NewPerspectiveCamera()

	c.ProcessMouseEvent(100, 50, true)
	pitch, yaw := c.Euler()
	assert.InDelta(t, 0.5, pitch, eps)
	assert.InDelta(t, -89.0, yaw, eps)
}

func TestDegenerateRightKeepsPrevious(t *testing.T) {
	c := NewPerspectiveCamera()
	prev := c.Right()

	c.SetEuler(90, -90)
	assertVec3(t, prev, c.Right())
	assertVec3(t, mgl32.Vec3{0, 1, 0}, c.Front())
	for _, v := range c.ViewMatrix() {
		assert.False(t, math.IsNaN(float64(v)), "view matrix contains NaN")
	}
}

func TestProcessScrollEvent(t *testing.T) {
	c := NewPerspectiveCamera()

	c.ProcessScrollEvent(10)
	assert.Equal(t, float32(35), c.Fov())

	c.ProcessScrollEvent(100)
	assert.Equal(t, float32(1), c.Fov())

	c.ProcessScrollEvent(-100)
	assert.Equal(t, float32(45), c.Fov())

	proj := mgl32.Perspective(mgl32.DegToRad(45), c.Aspect(), c.Near(), c.Far())
	assertMat4(t, proj, c.ProjectionMatrix())
}

func TestSettersRecompute(t *testing.T) {
	c := NewPerspectiveCamera()

	c.SetAspect(2)
	c.SetNear(1)
	c.SetFar(10)
	c.SetFov(60)
	proj := mgl32.Perspective(mgl32.DegToRad(60), 2, 1, 10)
	assertMat4(t, proj, c.ProjectionMatrix())

	c.SetPosition(mgl32.Vec3{0, 0, 5})
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 4}, mgl32.Vec3{0, 1, 0})
	assertMat4(t, view, c.ViewMatrix())

	// Zoom restarts from the new field of view and is clamped on the next scroll.
	c.ProcessScrollEvent(0)
	assert.Equal(t, float32(45), c.Fov())

	c.SetSpeed(10)
	c.ProcessKeyEvent(Forward, 0.1)
	assertVec3(t, mgl32.Vec3{0, 0, 4}, c.Position())
}
