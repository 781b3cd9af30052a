package buffer

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"

type VertexBufferBuilderOption func(*vertexBuffer)

// WithLayout sets the layout describing the buffer's vertices.
//
// Parameters:
//   - layout: the vertex layout
//
// Returns:
//   - VertexBufferBuilderOption: a function that sets the layout
func WithLayout(layout Layout) VertexBufferBuilderOption {
	return func(vb *vertexBuffer) {
		vb.layout = layout
	}
}

// WithUsage sets the upload usage hint. Defaults to backend.BufferUsageStatic.
//
// Parameters:
//   - usage: the usage hint
//
// Returns:
//   - VertexBufferBuilderOption: a function that sets the usage hint
func WithUsage(usage backend.BufferUsage) VertexBufferBuilderOption {
	return func(vb *vertexBuffer) {
		vb.usage = usage
	}
}
