package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard movement direction relative to the camera's facing.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

// Pitch and zoom limits, in degrees.
const (
	MaxPitch float32 = 89.0
	MinZoom  float32 = 1.0
	MaxZoom  float32 = 45.0
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	worldUp  mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3

	pitch float32
	yaw   float32

	fov    float32
	zoom   float32
	aspect float32
	near   float32
	far    float32

	speed       float32
	sensitivity float32

	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4
}

// Camera is a first-person perspective camera driven by Euler angles.
//
// Pitch and yaw are in degrees. Yaw -90 looks down -Z. Every mutator recomputes the view, projection
// and view-projection matrices before returning, so the getters never return stale matrices.
type Camera interface {
	// ProcessKeyEvent moves the camera along its front or right vector by speed * deltaTime.
	//
	// Parameters:
	//   - direction: the movement direction
	//   - deltaTime: the frame time in seconds
	ProcessKeyEvent(direction Direction, deltaTime float32)

	// ProcessMouseEvent turns the camera. Offsets are scaled by the mouse sensitivity; xOffset adds to yaw
	// and yOffset adds to pitch.
	//
	// Parameters:
	//   - xOffset: horizontal cursor offset
	//   - yOffset: vertical cursor offset, positive to look up
	//   - constrainPitch: clamp pitch to [-89, 89] so the view cannot flip
	ProcessMouseEvent(xOffset, yOffset float32, constrainPitch bool)

	// ProcessScrollEvent zooms by yOffset degrees. Zoom is clamped to [1, 45] and becomes the field of view.
	//
	// Parameters:
	//   - yOffset: scroll amount, positive to zoom in
	ProcessScrollEvent(yOffset float32)

	// Position returns the camera position.
	Position() mgl32.Vec3

	// Front returns the unit viewing direction.
	Front() mgl32.Vec3

	// Right returns the unit right vector.
	Right() mgl32.Vec3

	// Up returns the unit camera up vector.
	Up() mgl32.Vec3

	// Euler returns the pitch and yaw in degrees.
	//
	// Returns:
	//   - pitch: rotation around the right axis
	//   - yaw: rotation around the world up axis
	Euler() (pitch, yaw float32)

	// Fov returns the vertical field of view in degrees.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Speed returns the movement speed in units per second.
	Speed() float32

	// Sensitivity returns the mouse sensitivity.
	Sensitivity() float32

	// ViewMatrix returns the current view matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined view-projection matrix
	ViewProjectionMatrix() mgl32.Mat4

	// SetPosition moves the camera and recomputes matrices.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position mgl32.Vec3)

	// SetEuler sets pitch and yaw in degrees and re-derives the camera basis. Pitch is not clamped.
	//
	// Parameters:
	//   - pitch: rotation around the right axis
	//   - yaw: rotation around the world up axis
	SetEuler(pitch, yaw float32)

	// SetFov sets the field of view in degrees and resets the zoom to match.
	//
	// Parameters:
	//   - fov: field of view in degrees
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetSpeed sets the movement speed in units per second.
	SetSpeed(speed float32)

	// SetSensitivity sets the mouse sensitivity.
	SetSensitivity(sensitivity float32)
}

var _ Camera = &cameraImpl{}

// NewPerspectiveCamera creates a camera at the origin looking down -Z with a 45 degree field of view,
// an 800/600 aspect ratio and clipping planes at 0.1 and 100.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewPerspectiveCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		worldUp:     mgl32.Vec3{0, 1, 0},
		right:       mgl32.Vec3{1, 0, 0},
		pitch:       0,
		yaw:         -90,
		fov:         45,
		aspect:      800.0 / 600.0,
		near:        0.1,
		far:         100,
		speed:       2.5,
		sensitivity: 0.01,
	}
	for _, option := range options {
		option(c)
	}
	c.zoom = c.fov
	c.updateVectors()
	c.updateMatrices()
	return c
}

func (c *cameraImpl) ProcessKeyEvent(direction Direction, deltaTime float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	velocity := c.speed * deltaTime
	switch direction {
	case Forward:
		c.position = c.position.Add(c.front.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.front.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	}
	c.updateMatrices()
}

func (c *cameraImpl) ProcessMouseEvent(xOffset, yOffset float32, constrainPitch bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.yaw += xOffset * c.sensitivity
	c.pitch += yOffset * c.sensitivity
	if constrainPitch {
		c.pitch = common.Clamp(c.pitch, -MaxPitch, MaxPitch)
	}
	c.updateVectors()
	c.updateMatrices()
}

func (c *cameraImpl) ProcessScrollEvent(yOffset float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.zoom = common.Clamp(c.zoom-yOffset, MinZoom, MaxZoom)
	c.fov = c.zoom
	c.updateMatrices()
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Front() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.right
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Euler() (float32, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pitch, c.yaw
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Speed() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *cameraImpl) Sensitivity() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sensitivity
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetPosition(position mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) SetEuler(pitch, yaw float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pitch = pitch
	c.yaw = yaw
	c.updateVectors()
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.zoom = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetSpeed(speed float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = speed
}

func (c *cameraImpl) SetSensitivity(sensitivity float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sensitivity = sensitivity
}

// updateVectors derives front, right and up from pitch and yaw.
// If front is parallel to world up the previous right vector is kept. Caller must hold the mutex.
func (c *cameraImpl) updateVectors() {
	pitch := mgl32.DegToRad(c.pitch)
	yaw := mgl32.DegToRad(c.yaw)

	c.front = mgl32.Vec3{
		math32.Cos(pitch) * math32.Cos(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Sin(yaw),
	}.Normalize()

	right := c.front.Cross(c.worldUp)
	if right.Len() > 1e-6 {
		c.right = right.Normalize()
	}
	c.up = c.right.Cross(c.front).Normalize()
}

// updateMatrices recalculates the view, projection and view-projection matrices.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.position, c.position.Add(c.front), c.up)
	c.projectionMatrix = mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}
