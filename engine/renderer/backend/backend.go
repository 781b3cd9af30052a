// Package backend defines the graphics API surface used by the renderer packages.
//
// Buffers, vertex arrays, shaders and textures never call OpenGL directly. They issue calls
// through a Backend, which keeps the GPU binding side effects in one place and lets tests swap
// in a recording fake (see backendtest).
package backend

// Handle is an opaque GPU object name. Zero is never a valid object.
type Handle uint32

// BackendType identifies the graphics API implementation behind a Backend.
type BackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core backend.
	BackendTypeGL BackendType = iota
)

// BufferTarget selects the binding point for a buffer object.
type BufferTarget int

const (
	// BufferTargetArray is the vertex attribute source (GL_ARRAY_BUFFER).
	BufferTargetArray BufferTarget = iota

	// BufferTargetElementArray is the index source (GL_ELEMENT_ARRAY_BUFFER).
	BufferTargetElementArray
)

// BufferUsage hints how often buffer contents change.
type BufferUsage int

const (
	// BufferUsageStatic is written once and drawn many times.
	BufferUsageStatic BufferUsage = iota

	// BufferUsageDynamic is rewritten occasionally.
	BufferUsageDynamic

	// BufferUsageStream is rewritten every frame.
	BufferUsageStream
)

// AttribType is the numeric component type of a vertex attribute.
type AttribType int

const (
	// AttribTypeFloat is a 32-bit float component.
	AttribTypeFloat AttribType = iota

	// AttribTypeInt is a 32-bit signed integer component.
	AttribTypeInt

	// AttribTypeUnsignedByte is an 8-bit unsigned component, used for booleans.
	AttribTypeUnsignedByte
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	// ShaderStageVertex is the vertex processing stage.
	ShaderStageVertex ShaderStage = iota

	// ShaderStageFragment is the fragment processing stage.
	ShaderStageFragment
)

// String returns the lowercase stage name.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	}
	return "unknown"
}

// PixelFormat is the channel layout of uploaded texture data.
type PixelFormat int

const (
	// PixelFormatRGBA is four 8-bit channels per pixel.
	PixelFormatRGBA PixelFormat = iota

	// PixelFormatRGB is three 8-bit channels per pixel.
	PixelFormatRGB

	// PixelFormatRed is a single 8-bit channel per pixel.
	PixelFormatRed
)

// TextureWrap is the addressing mode for texture coordinates outside [0, 1].
type TextureWrap int

const (
	TextureWrapRepeat TextureWrap = iota
	TextureWrapClampToEdge
	TextureWrapMirroredRepeat
)

// TextureFilter is the sampling filter used for minification or magnification.
type TextureFilter int

const (
	TextureFilterLinear TextureFilter = iota
	TextureFilterNearest
	TextureFilterLinearMipmapLinear
	TextureFilterNearestMipmapNearest
)

// UniformInfo describes one active uniform reported by a linked program.
type UniformInfo struct {
	// Name is the uniform name as reported by the driver (arrays end in "[0]").
	Name string

	// Size is the array length, 1 for non-array uniforms.
	Size int32
}

// Backend is the graphics API surface used by the renderer packages. Every method mutates or
// reads the current context's global state, so implementations are only safe on the thread
// that owns the context.
type Backend interface {
	// Type returns which graphics API this backend drives.
	Type() BackendType

	// Version returns a human readable API/driver version string.
	Version() string

	// CreateBuffer allocates a new buffer object name.
	CreateBuffer() Handle

	// BindBuffer makes h the current buffer for target. A zero handle unbinds.
	BindBuffer(target BufferTarget, h Handle)

	// BufferData uploads data to the buffer currently bound to target.
	BufferData(target BufferTarget, data []byte, usage BufferUsage)

	// DeleteBuffer releases the buffer object.
	DeleteBuffer(h Handle)

	// CreateVertexArray allocates a new vertex array object name.
	CreateVertexArray() Handle

	// BindVertexArray makes h the current vertex array. A zero handle unbinds.
	BindVertexArray(h Handle)

	// DeleteVertexArray releases the vertex array object.
	DeleteVertexArray(h Handle)

	// EnableVertexAttribArray enables the generic attribute at index on the bound vertex array.
	EnableVertexAttribArray(index uint32)

	// VertexAttribPointer describes the attribute at index relative to the bound array buffer.
	VertexAttribPointer(index uint32, size int32, attribType AttribType, normalized bool, stride int32, offset uintptr)

	// CreateShader allocates a shader object for the given stage.
	CreateShader(stage ShaderStage) Handle

	// CompileShader sets the source of h and compiles it.
	//
	// Returns:
	//   - bool: true if compilation succeeded
	//   - string: the driver info log (may be non-empty on success)
	CompileShader(h Handle, source string) (bool, string)

	// DeleteShader releases the shader object.
	DeleteShader(h Handle)

	// CreateProgram allocates a program object.
	CreateProgram() Handle

	// AttachShader attaches shader to program.
	AttachShader(program, shader Handle)

	// DetachShader detaches shader from program.
	DetachShader(program, shader Handle)

	// LinkProgram links program.
	//
	// Returns:
	//   - bool: true if linking succeeded
	//   - string: the driver info log
	LinkProgram(program Handle) (bool, string)

	// DeleteProgram releases the program object.
	DeleteProgram(h Handle)

	// UseProgram makes h the current program. A zero handle unbinds.
	UseProgram(h Handle)

	// ActiveUniforms lists the active uniforms of a linked program.
	ActiveUniforms(program Handle) []UniformInfo

	// UniformLocation returns the location of name in program, or -1.
	UniformLocation(program Handle, name string) int32

	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	Uniform1i(location int32, v int32)
	UniformMatrix3fv(location int32, m [9]float32)
	UniformMatrix4fv(location int32, m [16]float32)

	// CreateTexture allocates a texture object name.
	CreateTexture() Handle

	// BindTexture activates texture unit slot and binds h as its 2D texture.
	BindTexture(slot uint32, h Handle)

	// TexImage2D uploads pixels to the bound 2D texture.
	TexImage2D(width, height int32, format PixelFormat, pixels []byte)

	// TexParameters sets wrap and filter modes on the bound 2D texture.
	TexParameters(wrap TextureWrap, minFilter, magFilter TextureFilter)

	// GenerateMipmap builds the mip chain of the bound 2D texture.
	GenerateMipmap()

	// DeleteTexture releases the texture object.
	DeleteTexture(h Handle)

	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear clears the color buffer and, when depth is true, the depth buffer.
	Clear(depth bool)

	// Viewport sets the viewport rectangle in pixels.
	Viewport(x, y, width, height int32)

	// SetDepthTest toggles depth testing.
	SetDepthTest(enabled bool)

	// DrawIndexed draws count uint32 indices from the bound element array buffer as triangles.
	DrawIndexed(count int32)

	// DrawArrays draws count vertices starting at first as triangles.
	DrawArrays(first, count int32)
}
