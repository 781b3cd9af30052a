package renderer

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex_array"
	"github.com/go-gl/mathgl/mgl32"
)

// Default uniform names uploaded by Submit.
const (
	DefaultViewProjectionUniform = "u_ViewProjection"
	DefaultModelUniform          = "u_Model"
	DefaultViewPositionUniform   = "u_ViewPos"
)

// Stats counts the work submitted since the last BeginScene.
type Stats struct {
	DrawCalls int
	Indices   int
	Vertices  int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend backend.Backend

	clearColor mgl32.Vec4
	depthTest  bool
	width      int
	height     int

	viewProjectionUniform string
	modelUniform          string
	viewPositionUniform   string

	inScene        bool
	viewProjection mgl32.Mat4
	viewPosition   mgl32.Vec3
	stats          Stats
}

// Renderer is the high-level draw API on top of a Backend.
//
// A frame is Clear, then BeginScene with the active camera, any number of Submit calls, and EndScene.
// Submit outside a scene draws with an identity view-projection.
type Renderer interface {
	// Backend returns the Backend the Renderer issues commands to.
	Backend() backend.Backend

	// SetClearColor sets the color used by Clear.
	//
	// Parameters:
	//   - color: RGBA color with components in [0, 1]
	SetClearColor(color mgl32.Vec4)

	// ClearColor returns the color used by Clear.
	ClearColor() mgl32.Vec4

	// Clear clears the color buffer, and the depth buffer when depth testing is enabled.
	Clear()

	// Resize sets the viewport to cover a framebuffer of the given size.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	Resize(width, height int)

	// Size returns the last size passed to Resize.
	Size() (width, height int)

	// EnableDepthTest toggles depth testing.
	//
	// Parameters:
	//   - enabled: true to enable depth testing
	EnableDepthTest(enabled bool)

	// DepthTestEnabled reports whether depth testing is enabled.
	DepthTestEnabled() bool

	// BeginScene captures the camera's view-projection matrix and position for subsequent Submit calls
	// and resets the frame Stats.
	//
	// Parameters:
	//   - cam: the camera to render from
	BeginScene(cam camera.Camera)

	// Submit draws a vertex array with a shader.
	// The shader is bound and receives the scene view-projection, the model matrix and, when it declares
	// one, the camera position. The draw is indexed when the array has an index buffer, otherwise the
	// vertex count is derived from the first vertex buffer's size and stride.
	//
	// Parameters:
	//   - s: the shader to draw with
	//   - va: the vertex array to draw
	//   - model: the model (object to world) transform
	Submit(s shader.Shader, va vertex_array.VertexArray, model mgl32.Mat4)

	// EndScene closes the current scene and restores the identity view-projection.
	EndScene()

	// Stats returns the counters accumulated since the last BeginScene.
	Stats() Stats
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer on top of the given backend.
// The viewport and depth test state are applied immediately.
//
// Parameters:
//   - b: the backend to issue commands to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer
func NewRenderer(b backend.Backend, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:                    &sync.Mutex{},
		backend:               b,
		clearColor:            mgl32.Vec4{0.2, 0.3, 0.3, 1.0},
		width:                 800,
		height:                600,
		viewProjectionUniform: DefaultViewProjectionUniform,
		modelUniform:          DefaultModelUniform,
		viewPositionUniform:   DefaultViewPositionUniform,
		viewProjection:        mgl32.Ident4(),
	}

	for _, opt := range options {
		opt(r)
	}

	b.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	b.Viewport(0, 0, int32(r.width), int32(r.height))
	b.SetDepthTest(r.depthTest)
	return r
}

func (r *renderer) Backend() backend.Backend {
	return r.backend
}

func (r *renderer) SetClearColor(color mgl32.Vec4) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = color
	r.backend.ClearColor(color[0], color[1], color[2], color[3])
}

func (r *renderer) ClearColor() mgl32.Vec4 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor
}

func (r *renderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Clear(r.depthTest)
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Minimized windows report a zero framebuffer.
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.backend.Viewport(0, 0, int32(width), int32(height))
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) EnableDepthTest(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depthTest = enabled
	r.backend.SetDepthTest(enabled)
}

func (r *renderer) DepthTestEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depthTest
}

func (r *renderer) BeginScene(cam camera.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inScene {
		slog.Warn("renderer: BeginScene called twice without EndScene")
	}
	r.inScene = true
	r.viewProjection = cam.ViewProjectionMatrix()
	r.viewPosition = cam.Position()
	r.stats = Stats{}
}

func (r *renderer) Submit(s shader.Shader, va vertex_array.VertexArray, model mgl32.Mat4) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.Bind()
	s.SetMat4(r.viewProjectionUniform, r.viewProjection)
	s.SetMat4(r.modelUniform, model)
	if r.viewPositionUniform != "" && s.HasUniform(r.viewPositionUniform) {
		s.SetVec3(r.viewPositionUniform, r.viewPosition)
	}

	va.Bind()
	if ib := va.IndexBuffer(); ib != nil {
		r.backend.DrawIndexed(int32(ib.Count()))
		r.stats.Indices += int(ib.Count())
		r.stats.DrawCalls++
		return
	}

	count := vertexCount(va)
	if count == 0 {
		slog.Warn("renderer: submitted vertex array has nothing to draw", "vertexArray", va.Handle())
		return
	}
	r.backend.DrawArrays(0, int32(count))
	r.stats.Vertices += count
	r.stats.DrawCalls++
}

func (r *renderer) EndScene() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inScene = false
	r.viewProjection = mgl32.Ident4()
	r.viewPosition = mgl32.Vec3{}
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// vertexCount returns the number of vertices in the first vertex buffer of va.
func vertexCount(va vertex_array.VertexArray) int {
	vbs := va.VertexBuffers()
	if len(vbs) == 0 {
		return 0
	}
	stride := int(vbs[0].Layout().Stride())
	if stride == 0 {
		return 0
	}
	return vbs[0].Size() / stride
}
