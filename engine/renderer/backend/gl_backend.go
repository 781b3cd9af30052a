package backend

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glBackend implements Backend on top of OpenGL 4.1 core through go-gl.
type glBackend struct {
	version string
}

var _ Backend = &glBackend{}

// NewGLBackend loads the OpenGL function pointers for the current context and returns a Backend.
// A context must be current on the calling thread (see window.NewWindow).
//
// Reference: https://pkg.go.dev/github.com/go-gl/gl/v4.1-core/gl#Init
//
// Returns:
//   - Backend: the OpenGL backend
//   - error: error if the function pointers could not be loaded
func NewGLBackend() (Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &glBackend{
		version: gl.GoStr(gl.GetString(gl.VERSION)),
	}, nil
}

// NewBackend creates the backend for the given type. Only BackendTypeGL is implemented.
//
// Parameters:
//   - backendType: the graphics API to drive
//
// Returns:
//   - Backend: the created backend
//   - error: error if the type is unknown or initialization fails
func NewBackend(backendType BackendType) (Backend, error) {
	switch backendType {
	case BackendTypeGL:
		return NewGLBackend()
	}
	return nil, fmt.Errorf("unknown backend type %d", backendType)
}

func (b *glBackend) Type() BackendType {
	return BackendTypeGL
}

func (b *glBackend) Version() string {
	return b.version
}

func (b *glBackend) CreateBuffer() Handle {
	var id uint32
	gl.GenBuffers(1, &id)
	return Handle(id)
}

func (b *glBackend) BindBuffer(target BufferTarget, h Handle) {
	gl.BindBuffer(glBufferTarget(target), uint32(h))
}

func (b *glBackend) BufferData(target BufferTarget, data []byte, usage BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(glBufferTarget(target), 0, nil, glBufferUsage(usage))
		return
	}
	gl.BufferData(glBufferTarget(target), len(data), gl.Ptr(data), glBufferUsage(usage))
}

func (b *glBackend) DeleteBuffer(h Handle) {
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
}

func (b *glBackend) CreateVertexArray() Handle {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return Handle(id)
}

func (b *glBackend) BindVertexArray(h Handle) {
	gl.BindVertexArray(uint32(h))
}

func (b *glBackend) DeleteVertexArray(h Handle) {
	id := uint32(h)
	gl.DeleteVertexArrays(1, &id)
}

func (b *glBackend) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (b *glBackend) VertexAttribPointer(index uint32, size int32, attribType AttribType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, glAttribType(attribType), normalized, stride, offset)
}

func (b *glBackend) CreateShader(stage ShaderStage) Handle {
	switch stage {
	case ShaderStageFragment:
		return Handle(gl.CreateShader(gl.FRAGMENT_SHADER))
	default:
		return Handle(gl.CreateShader(gl.VERTEX_SHADER))
	}
}

func (b *glBackend) CompileShader(h Handle, source string) (bool, string) {
	id := uint32(h)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(id, 1, csources, nil)
	free()
	gl.CompileShader(id)

	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)

	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	infoLog := ""
	if logLength > 0 {
		// The length includes the NUL terminator.
		infoLog = strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(id, logLength, nil, gl.Str(infoLog))
		infoLog = strings.TrimRight(infoLog, "\x00")
	}
	return status == gl.TRUE, infoLog
}

func (b *glBackend) DeleteShader(h Handle) {
	gl.DeleteShader(uint32(h))
}

func (b *glBackend) CreateProgram() Handle {
	return Handle(gl.CreateProgram())
}

func (b *glBackend) AttachShader(program, shader Handle) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (b *glBackend) DetachShader(program, shader Handle) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (b *glBackend) LinkProgram(program Handle) (bool, string) {
	id := uint32(program)
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)

	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	infoLog := ""
	if logLength > 0 {
		infoLog = strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(infoLog))
		infoLog = strings.TrimRight(infoLog, "\x00")
	}
	return status == gl.TRUE, infoLog
}

func (b *glBackend) DeleteProgram(h Handle) {
	gl.DeleteProgram(uint32(h))
}

func (b *glBackend) UseProgram(h Handle) {
	gl.UseProgram(uint32(h))
}

func (b *glBackend) ActiveUniforms(program Handle) []UniformInfo {
	id := uint32(program)
	var count, maxLen int32
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)
	if count == 0 {
		return nil
	}

	out := make([]UniformInfo, 0, count)
	buf := make([]uint8, maxLen+1)
	for i := int32(0); i < count; i++ {
		var length, size int32
		var xtype uint32
		gl.GetActiveUniform(id, uint32(i), int32(len(buf)), &length, &size, &xtype, &buf[0])
		out = append(out, UniformInfo{
			Name: string(buf[:length]),
			Size: size,
		})
	}
	return out
}

func (b *glBackend) UniformLocation(program Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00"))
}

func (b *glBackend) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *glBackend) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (b *glBackend) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (b *glBackend) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (b *glBackend) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *glBackend) UniformMatrix3fv(location int32, m [9]float32) {
	gl.UniformMatrix3fv(location, 1, false, &m[0])
}

func (b *glBackend) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *glBackend) CreateTexture() Handle {
	var id uint32
	gl.GenTextures(1, &id)
	return Handle(id)
}

func (b *glBackend) BindTexture(slot uint32, h Handle) {
	gl.ActiveTexture(gl.TEXTURE0 + slot)
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

func (b *glBackend) TexImage2D(width, height int32, format PixelFormat, pixels []byte) {
	f := glPixelFormat(format)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if len(pixels) == 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, int32(f), width, height, 0, f, gl.UNSIGNED_BYTE, nil)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(f), width, height, 0, f, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
}

func (b *glBackend) TexParameters(wrap TextureWrap, minFilter, magFilter TextureFilter) {
	w := glTextureWrap(wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, w)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, w)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glTextureFilter(minFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glTextureFilter(magFilter))
}

func (b *glBackend) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (b *glBackend) DeleteTexture(h Handle) {
	id := uint32(h)
	gl.DeleteTextures(1, &id)
}

func (b *glBackend) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *glBackend) Clear(depth bool) {
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth {
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

func (b *glBackend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *glBackend) SetDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
}

func (b *glBackend) DrawIndexed(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

func (b *glBackend) DrawArrays(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

// glBufferTarget maps a BufferTarget to its GL enum.
func glBufferTarget(t BufferTarget) uint32 {
	if t == BufferTargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

// glBufferUsage maps a BufferUsage to its GL enum.
func glBufferUsage(u BufferUsage) uint32 {
	switch u {
	case BufferUsageDynamic:
		return gl.DYNAMIC_DRAW
	case BufferUsageStream:
		return gl.STREAM_DRAW
	}
	return gl.STATIC_DRAW
}

// glAttribType maps an AttribType to its GL enum. Booleans are uploaded as unsigned bytes.
func glAttribType(t AttribType) uint32 {
	switch t {
	case AttribTypeInt:
		return gl.INT
	case AttribTypeUnsignedByte:
		return gl.UNSIGNED_BYTE
	}
	return gl.FLOAT
}

func glPixelFormat(f PixelFormat) uint32 {
	switch f {
	case PixelFormatRGB:
		return gl.RGB
	case PixelFormatRed:
		return gl.RED
	}
	return gl.RGBA
}

func glTextureWrap(w TextureWrap) int32 {
	switch w {
	case TextureWrapClampToEdge:
		return gl.CLAMP_TO_EDGE
	case TextureWrapMirroredRepeat:
		return gl.MIRRORED_REPEAT
	}
	return gl.REPEAT
}

func glTextureFilter(f TextureFilter) int32 {
	switch f {
	case TextureFilterNearest:
		return gl.NEAREST
	case TextureFilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	case TextureFilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	}
	return gl.LINEAR
}
