package buffer

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

type vertexBuffer struct {
	mu *sync.Mutex

	backend  backend.Backend
	handle   backend.Handle
	size     int
	usage    backend.BufferUsage
	layout   Layout
	refCount int
}

// VertexBuffer is a GPU buffer holding interleaved vertex data. The contents are uploaded once at
// creation. A VertexBuffer is reference counted: it starts with one reference and the GPU buffer is
// deleted when the last reference is released.
type VertexBuffer interface {
	// Bind makes this buffer the current array buffer.
	Bind()

	// Unbind clears the current array buffer binding.
	Unbind()

	// Layout returns the layout describing the buffer's vertices.
	//
	// Returns:
	//   - Layout: the layout, empty if none was set
	Layout() Layout

	// SetLayout replaces the layout describing the buffer's vertices.
	// It does not touch the GPU; vertex arrays read the layout when the buffer is added.
	//
	// Parameters:
	//   - layout: the new layout
	SetLayout(layout Layout)

	// Handle returns the backend buffer handle, 0 after the last release.
	Handle() backend.Handle

	// Size returns the uploaded size in bytes.
	Size() int

	// Retain adds a reference.
	Retain()

	// Release drops a reference and deletes the GPU buffer when none remain.
	// Releasing an already deleted buffer logs a warning and does nothing.
	Release()

	// RefCount returns the current number of references.
	RefCount() int
}

var _ VertexBuffer = &vertexBuffer{}

// NewVertexBuffer creates a vertex buffer and uploads vertices to it.
//
// Parameters:
//   - b: the backend to create the buffer on
//   - vertices: the vertex data, interleaved according to the layout
//   - options: functional options such as WithLayout
//
// Returns:
//   - VertexBuffer: the created buffer
func NewVertexBuffer(b backend.Backend, vertices []float32, options ...VertexBufferBuilderOption) VertexBuffer {
	return NewVertexBufferFromBytes(b, common.SliceToBytes(vertices), options...)
}

// NewVertexBufferFromBytes creates a vertex buffer from raw bytes. Use it for vertex formats that mix
// component types, such as float positions with integer or boolean attributes.
//
// Parameters:
//   - b: the backend to create the buffer on
//   - data: the raw vertex bytes
//   - options: functional options such as WithLayout
//
// Returns:
//   - VertexBuffer: the created buffer
func NewVertexBufferFromBytes(b backend.Backend, data []byte, options ...VertexBufferBuilderOption) VertexBuffer {
	vb := &vertexBuffer{
		mu:       &sync.Mutex{},
		backend:  b,
		size:     len(data),
		usage:    backend.BufferUsageStatic,
		refCount: 1,
	}
	for _, opt := range options {
		opt(vb)
	}

	vb.handle = b.CreateBuffer()
	b.BindBuffer(backend.BufferTargetArray, vb.handle)
	b.BufferData(backend.BufferTargetArray, data, vb.usage)
	return vb
}

func (vb *vertexBuffer) Bind() {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	vb.backend.BindBuffer(backend.BufferTargetArray, vb.handle)
}

func (vb *vertexBuffer) Unbind() {
	vb.backend.BindBuffer(backend.BufferTargetArray, 0)
}

func (vb *vertexBuffer) Layout() Layout {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.layout
}

func (vb *vertexBuffer) SetLayout(layout Layout) {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	vb.layout = layout
}

func (vb *vertexBuffer) Handle() backend.Handle {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.handle
}

func (vb *vertexBuffer) Size() int {
	return vb.size
}

func (vb *vertexBuffer) Retain() {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	if vb.refCount == 0 {
		slog.Warn("retain on released vertex buffer")
		return
	}
	vb.refCount++
}

func (vb *vertexBuffer) Release() {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	if vb.refCount == 0 {
		slog.Warn("vertex buffer released more times than retained")
		return
	}
	vb.refCount--
	if vb.refCount == 0 {
		vb.backend.DeleteBuffer(vb.handle)
		vb.handle = 0
	}
}

func (vb *vertexBuffer) RefCount() int {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.refCount
}
