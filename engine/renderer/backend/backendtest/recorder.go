// Package backendtest provides a recording Backend for tests that exercise GPU-facing code
// without a graphics context.
package backendtest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// Call is one recorded backend invocation.
type Call struct {
	Name string
	Args []any
}

// String formats the call like "BindBuffer(0 3)".
func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// AttribPointer is a recorded VertexAttribPointer call.
type AttribPointer struct {
	Index      uint32
	Size       int32
	Type       backend.AttribType
	Normalized bool
	Stride     int32
	Offset     uintptr
}

// Recorder is an in-memory Backend. It hands out sequential handles, tracks which objects are
// alive and what is currently bound, and records every call in order. Compile and link results
// are configurable.
type Recorder struct {
	mu sync.Mutex

	next  backend.Handle
	calls []Call

	// Live holds every created, not yet deleted object.
	Live map[backend.Handle]string

	// Bound buffers per target, bound vertex array, program and texture per slot.
	BoundBuffers     map[backend.BufferTarget]backend.Handle
	BoundVertexArray backend.Handle
	BoundProgram     backend.Handle
	BoundTextures    map[uint32]backend.Handle

	// Uploads holds the last data uploaded per buffer handle.
	Uploads map[backend.Handle][]byte

	// Attribs holds VertexAttribPointer calls per vertex array, in call order.
	Attribs map[backend.Handle][]AttribPointer

	// Enabled holds enabled attribute indices per vertex array.
	Enabled map[backend.Handle][]uint32

	// Sources holds the last compiled source per shader handle.
	Sources map[backend.Handle]string

	// CompileErrors makes compilation of the given stage fail with the info log.
	CompileErrors map[backend.ShaderStage]string

	// LinkError makes linking fail with the info log when non-empty.
	LinkError string

	// Uniforms is reported as the active uniform list of every linked program.
	Uniforms []backend.UniformInfo

	// UniformValues holds the last value uploaded per location.
	UniformValues map[int32]any

	stages     map[backend.Handle]backend.ShaderStage
	locations  map[string]int32
	nextLoc    int32
	clearColor [4]float32
	depthTest  bool
	viewport   [4]int32
}

var _ backend.Backend = &Recorder{}

// NewRecorder creates an empty Recorder.
//
// Returns:
//   - *Recorder: the recorder
func NewRecorder() *Recorder {
	return &Recorder{
		next:          1,
		Live:          make(map[backend.Handle]string),
		BoundBuffers:  make(map[backend.BufferTarget]backend.Handle),
		BoundTextures: make(map[uint32]backend.Handle),
		Uploads:       make(map[backend.Handle][]byte),
		Attribs:       make(map[backend.Handle][]AttribPointer),
		Enabled:       make(map[backend.Handle][]uint32),
		Sources:       make(map[backend.Handle]string),
		CompileErrors: make(map[backend.ShaderStage]string),
		UniformValues: make(map[int32]any),
		stages:        make(map[backend.Handle]backend.ShaderStage),
		locations:     make(map[string]int32),
	}
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallNames returns the names of the recorded calls in order.
func (r *Recorder) CallNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Name
	}
	return out
}

// Count returns how many times the named call was recorded.
func (r *Recorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps object state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// IsLive reports whether h was created and not yet deleted.
func (r *Recorder) IsLive(h backend.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Live[h]
	return ok
}

// Location returns the location assigned to a uniform name, or -1 if it is not active.
func (r *Recorder) Location(name string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if loc, ok := r.locations[name]; ok {
		return loc
	}
	return -1
}

// ClearState returns the last clear color and depth test flag.
func (r *Recorder) ClearState() ([4]float32, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clearColor, r.depthTest
}

// LastViewport returns the last viewport rectangle.
func (r *Recorder) LastViewport() [4]int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) create(kind string) backend.Handle {
	h := r.next
	r.next++
	r.Live[h] = kind
	return h
}

func (r *Recorder) Type() backend.BackendType {
	return backend.BackendTypeGL
}

func (r *Recorder) Version() string {
	return "recorder"
}

func (r *Recorder) CreateBuffer() backend.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.create("buffer")
	r.record("CreateBuffer", h)
	return h
}

func (r *Recorder) BindBuffer(target backend.BufferTarget, h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BoundBuffers[target] = h
	r.record("BindBuffer", target, h)
}

func (r *Recorder) BufferData(target backend.BufferTarget, data []byte, usage backend.BufferUsage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	r.Uploads[r.BoundBuffers[target]] = cp
	r.record("BufferData", target, len(data), usage)
}

func (r *Recorder) DeleteBuffer(h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Live, h)
	r.record("DeleteBuffer", h)
}

func (r *Recorder) CreateVertexArray() backend.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.create("vertex_array")
	r.record("CreateVertexArray", h)
	return h
}

func (r *Recorder) BindVertexArray(h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BoundVertexArray = h
	r.record("BindVertexArray", h)
}

func (r *Recorder) DeleteVertexArray(h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Live, h)
	r.record("DeleteVertexArray", h)
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Enabled[r.BoundVertexArray] = append(r.Enabled[r.BoundVertexArray], index)
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, attribType backend.AttribType, normalized bool, stride int32, offset uintptr) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Attribs[r.BoundVertexArray] = append(r.Attribs[r.BoundVertexArray], AttribPointer{
		Index:      index,
		Size:       size,
		Type:       attribType,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
	})
	r.record("VertexAttribPointer", index, size, attribType, normalized, stride, offset)
}

func (r *Recorder) CreateShader(stage backend.ShaderStage) backend.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.create("shader")
	r.stages[h] = stage
	r.record("CreateShader", stage, h)
	return h
}

func (r *Recorder) CompileShader(h backend.Handle, source string) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sources[h] = source
	r.record("CompileShader", h)
	if log, ok := r.CompileErrors[r.stages[h]]; ok {
		return false, log
	}
	return true, ""
}

func (r *Recorder) DeleteShader(h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Live, h)
	r.record("DeleteShader", h)
}

func (r *Recorder) CreateProgram() backend.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.create("program")
	r.record("CreateProgram", h)
	return h
}

func (r *Recorder) AttachShader(program, shader backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("AttachShader", program, shader)
}

func (r *Recorder) DetachShader(program, shader backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DetachShader", program, shader)
}

func (r *Recorder) LinkProgram(program backend.Handle) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("LinkProgram", program)
	if r.LinkError != "" {
		return false, r.LinkError
	}
	return true, ""
}

func (r *Recorder) DeleteProgram(h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Live, h)
	r.record("DeleteProgram", h)
}

func (r *Recorder) UseProgram(h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BoundProgram = h
	r.record("UseProgram", h)
}

func (r *Recorder) ActiveUniforms(program backend.Handle) []backend.UniformInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ActiveUniforms", program)
	out := make([]backend.UniformInfo, len(r.Uniforms))
	copy(out, r.Uniforms)
	return out
}

// UniformLocation assigns locations on first query. Names are considered active when they are
// listed in Uniforms, or are an element "base[i]" of an active array "base[0]" with Size > i.
func (r *Recorder) UniformLocation(program backend.Handle, name string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("UniformLocation", program, name)
	if !r.isActive(name) {
		return -1
	}
	if loc, ok := r.locations[name]; ok {
		return loc
	}
	loc := r.nextLoc
	r.nextLoc++
	r.locations[name] = loc
	return loc
}

func (r *Recorder) isActive(name string) bool {
	for _, u := range r.Uniforms {
		if u.Name == name {
			return true
		}
		base, ok := arrayBase(u.Name)
		if !ok {
			continue
		}
		for i := int32(1); i < u.Size; i++ {
			if name == fmt.Sprintf("%s[%d]", base, i) {
				return true
			}
		}
	}
	return false
}

func arrayBase(name string) (string, bool) {
	const suffix = "[0]"
	if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
		return name[:len(name)-len(suffix)], true
	}
	return "", false
}

func (r *Recorder) uniform(name string, location int32, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.UniformValues[location] = v
	r.record(name, location, v)
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.uniform("Uniform1f", location, v)
}

func (r *Recorder) Uniform2f(location int32, x, y float32) {
	r.uniform("Uniform2f", location, [2]float32{x, y})
}

func (r *Recorder) Uniform3f(location int32, x, y, z float32) {
	r.uniform("Uniform3f", location, [3]float32{x, y, z})
}

func (r *Recorder) Uniform4f(location int32, x, y, z, w float32) {
	r.uniform("Uniform4f", location, [4]float32{x, y, z, w})
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.uniform("Uniform1i", location, v)
}

func (r *Recorder) UniformMatrix3fv(location int32, m [9]float32) {
	r.uniform("UniformMatrix3fv", location, m)
}

func (r *Recorder) UniformMatrix4fv(location int32, m [16]float32) {
	r.uniform("UniformMatrix4fv", location, m)
}

func (r *Recorder) CreateTexture() backend.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := r.create("texture")
	r.record("CreateTexture", h)
	return h
}

func (r *Recorder) BindTexture(slot uint32, h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.BoundTextures[slot] = h
	r.record("BindTexture", slot, h)
}

func (r *Recorder) TexImage2D(width, height int32, format backend.PixelFormat, pixels []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("TexImage2D", width, height, format, len(pixels))
}

func (r *Recorder) TexParameters(wrap backend.TextureWrap, minFilter, magFilter backend.TextureFilter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("TexParameters", wrap, minFilter, magFilter)
}

func (r *Recorder) GenerateMipmap() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("GenerateMipmap")
}

func (r *Recorder) DeleteTexture(h backend.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Live, h)
	r.record("DeleteTexture", h)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearColor = [4]float32{red, green, blue, alpha}
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(depth bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Clear", depth)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = [4]int32{x, y, width, height}
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) SetDepthTest(enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depthTest = enabled
	r.record("SetDepthTest", enabled)
}

func (r *Recorder) DrawIndexed(count int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DrawIndexed", count)
}

func (r *Recorder) DrawArrays(first, count int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DrawArrays", first, count)
}
