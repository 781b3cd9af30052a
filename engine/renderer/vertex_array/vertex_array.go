// Package vertex_array binds vertex buffers and an optional index buffer into a drawable vertex array object.
package vertex_array

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
)

// ErrEmptyLayout is returned by AddVertexBuffer when the buffer has no layout.
var ErrEmptyLayout = errors.New("vertex buffer has no layout")

type vertexArray struct {
	mu *sync.Mutex

	backend       backend.Backend
	handle        backend.Handle
	vertexBuffers []buffer.VertexBuffer
	indexBuffer   buffer.IndexBuffer
	nextAttrib    uint32
}

// VertexArray records how vertex buffer contents map to shader attribute indices, plus the index buffer
// used for indexed draws. Attribute indices are assigned sequentially across every added buffer.
//
// Binding calls change the backend's global bindings and leave them changed; callers that care restore
// them.
type VertexArray interface {
	// Bind makes this the current vertex array.
	Bind()

	// Unbind clears the current vertex array binding.
	Unbind()

	// AddVertexBuffer describes every element of the buffer's layout as enabled vertex attributes and
	// retains the buffer. Matrix elements take one attribute index per column.
	//
	// Parameters:
	//   - vb: the vertex buffer to add
	//
	// Returns:
	//   - error: ErrEmptyLayout if the buffer has no layout
	AddVertexBuffer(vb buffer.VertexBuffer) error

	// SetIndexBuffer attaches ib for indexed drawing, retaining it and releasing any previous one.
	//
	// Parameters:
	//   - ib: the index buffer
	SetIndexBuffer(ib buffer.IndexBuffer)

	// VertexBuffers returns the added vertex buffers in order.
	VertexBuffers() []buffer.VertexBuffer

	// IndexBuffer returns the attached index buffer, or nil.
	IndexBuffer() buffer.IndexBuffer

	// AttributeCount returns the number of attribute indices in use.
	AttributeCount() uint32

	// Handle returns the backend vertex array handle.
	Handle() backend.Handle

	// Destroy releases every held buffer and deletes the vertex array.
	Destroy()
}

var _ VertexArray = &vertexArray{}

// NewVertexArray creates an empty vertex array.
//
// Parameters:
//   - b: the backend to create the vertex array on
//
// Returns:
//   - VertexArray: the created vertex array
func NewVertexArray(b backend.Backend) VertexArray {
	return &vertexArray{
		mu:      &sync.Mutex{},
		backend: b,
		handle:  b.CreateVertexArray(),
	}
}

func (va *vertexArray) Bind() {
	va.backend.BindVertexArray(va.handle)
}

func (va *vertexArray) Unbind() {
	va.backend.BindVertexArray(0)
}

func (va *vertexArray) AddVertexBuffer(vb buffer.VertexBuffer) error {
	layout := vb.Layout()
	if layout.Empty() {
		return fmt.Errorf("add vertex buffer %d: %w", vb.Handle(), ErrEmptyLayout)
	}

	va.mu.Lock()
	defer va.mu.Unlock()

	va.backend.BindVertexArray(va.handle)
	vb.Bind()

	stride := int32(layout.Stride())
	for _, e := range layout.Elements() {
		columns := e.Type.ColumnCount()
		components := int32(e.Type.ValueCount() / columns)
		columnSize := e.Size / columns
		attribType := e.Type.ComponentType()
		for c := uint32(0); c < columns; c++ {
			va.backend.EnableVertexAttribArray(va.nextAttrib)
			va.backend.VertexAttribPointer(va.nextAttrib, components, attribType, e.Normalized, stride, uintptr(e.Offset+c*columnSize))
			va.nextAttrib++
		}
	}

	vb.Retain()
	va.vertexBuffers = append(va.vertexBuffers, vb)
	return nil
}

func (va *vertexArray) SetIndexBuffer(ib buffer.IndexBuffer) {
	va.mu.Lock()
	defer va.mu.Unlock()

	va.backend.BindVertexArray(va.handle)
	ib.Bind()

	ib.Retain()
	if va.indexBuffer != nil {
		va.indexBuffer.Release()
	}
	va.indexBuffer = ib
}

func (va *vertexArray) VertexBuffers() []buffer.VertexBuffer {
	va.mu.Lock()
	defer va.mu.Unlock()
	out := make([]buffer.VertexBuffer, len(va.vertexBuffers))
	copy(out, va.vertexBuffers)
	return out
}

func (va *vertexArray) IndexBuffer() buffer.IndexBuffer {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.indexBuffer
}

func (va *vertexArray) AttributeCount() uint32 {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.nextAttrib
}

func (va *vertexArray) Handle() backend.Handle {
	return va.handle
}

func (va *vertexArray) Destroy() {
	va.mu.Lock()
	defer va.mu.Unlock()

	for _, vb := range va.vertexBuffers {
		vb.Release()
	}
	va.vertexBuffers = nil
	if va.indexBuffer != nil {
		va.indexBuffer.Release()
		va.indexBuffer = nil
	}
	if va.handle != 0 {
		va.backend.DeleteVertexArray(va.handle)
		va.handle = 0
	}
}
