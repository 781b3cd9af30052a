package buffer

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

type indexBuffer struct {
	mu *sync.Mutex

	backend  backend.Backend
	handle   backend.Handle
	count    uint32
	refCount int
}

// IndexBuffer is a GPU buffer of uint32 triangle indices. Like VertexBuffer it is uploaded once and
// reference counted.
type IndexBuffer interface {
	// Bind makes this buffer the current element array buffer.
	Bind()

	// Unbind clears the current element array buffer binding.
	Unbind()

	// Count returns the number of indices.
	//
	// Returns:
	//   - uint32: the index count
	Count() uint32

	// Handle returns the backend buffer handle, 0 after the last release.
	Handle() backend.Handle

	// Retain adds a reference.
	Retain()

	// Release drops a reference and deletes the GPU buffer when none remain.
	Release()

	// RefCount returns the current number of references.
	RefCount() int
}

var _ IndexBuffer = &indexBuffer{}

// NewIndexBuffer creates an index buffer and uploads indices to it.
//
// Parameters:
//   - b: the backend to create the buffer on
//   - indices: the triangle indices
//
// Returns:
//   - IndexBuffer: the created buffer
func NewIndexBuffer(b backend.Backend, indices []uint32) IndexBuffer {
	ib := &indexBuffer{
		mu:       &sync.Mutex{},
		backend:  b,
		count:    uint32(len(indices)),
		refCount: 1,
	}
	ib.handle = b.CreateBuffer()
	b.BindBuffer(backend.BufferTargetElementArray, ib.handle)
	b.BufferData(backend.BufferTargetElementArray, common.SliceToBytes(indices), backend.BufferUsageStatic)
	return ib
}

func (ib *indexBuffer) Bind() {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	ib.backend.BindBuffer(backend.BufferTargetElementArray, ib.handle)
}

func (ib *indexBuffer) Unbind() {
	ib.backend.BindBuffer(backend.BufferTargetElementArray, 0)
}

func (ib *indexBuffer) Count() uint32 {
	return ib.count
}

func (ib *indexBuffer) Handle() backend.Handle {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.handle
}

func (ib *indexBuffer) Retain() {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.refCount == 0 {
		slog.Warn("retain on released index buffer")
		return
	}
	ib.refCount++
}

func (ib *indexBuffer) Release() {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.refCount == 0 {
		slog.Warn("index buffer released more times than retained")
		return
	}
	ib.refCount--
	if ib.refCount == 0 {
		ib.backend.DeleteBuffer(ib.handle)
		ib.handle = 0
	}
}

func (ib *indexBuffer) RefCount() int {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.refCount
}
