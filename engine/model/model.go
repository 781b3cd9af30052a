package model

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/vertex_array"
	"github.com/chewxy/math32"
)

// model is the implementation of the Model interface.
type model struct {
	mu *sync.Mutex

	name           string
	vertices       []float32
	indices        []uint32
	layout         buffer.Layout
	mat            material.Material
	boundingRadius float32

	vertexArray vertex_array.VertexArray
}

// Model is a mesh held in CPU memory together with the vertex array it was uploaded to.
// Vertices are interleaved floats described by Layout. Indices are optional; without them the mesh is
// drawn as a plain triangle list.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the interleaved vertex data.
	Vertices() []float32

	// Indices returns the triangle indices, or nil for non-indexed meshes.
	Indices() []uint32

	// Layout returns the vertex layout.
	Layout() buffer.Layout

	// VertexCount returns the number of vertices described by Vertices and Layout.
	VertexCount() int

	// Material returns the material used to draw the model, or nil.
	Material() material.Material

	// SetMaterial replaces the material.
	//
	// Parameters:
	//   - m: the new material, may be nil
	SetMaterial(m material.Material)

	// BoundingRadius returns the radius of a sphere around the origin that contains every vertex position.
	// Scenes cull against it; 0 disables culling for the model.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Upload creates the vertex array on first call and returns the cached one afterwards.
	//
	// Parameters:
	//   - b: the backend to create GPU objects with
	//
	// Returns:
	//   - vertex_array.VertexArray: the uploaded vertex array
	//   - error: an error if the layout cannot be bound
	Upload(b backend.Backend) (vertex_array.VertexArray, error)

	// VertexArray returns the uploaded vertex array, or nil before Upload.
	VertexArray() vertex_array.VertexArray

	// Destroy releases the vertex array and its buffers. The CPU data is kept so the model can be uploaded again.
	Destroy()
}

var _ Model = &model{}

// NewModel creates a new Model with the given options.
// The bounding radius is derived from the first layout element when it is a Float3 position and no
// explicit radius was given.
//
// Parameters:
//   - options: variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu:             &sync.Mutex{},
		boundingRadius: -1,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.boundingRadius < 0 {
		m.boundingRadius = positionRadius(m.vertices, m.layout)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []float32 {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) Layout() buffer.Layout {
	return m.layout
}

func (m *model) VertexCount() int {
	floats := int(m.layout.Stride() / 4)
	if floats == 0 {
		return 0
	}
	return len(m.vertices) / floats
}

func (m *model) Material() material.Material {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mat
}

func (m *model) SetMaterial(mat material.Material) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mat = mat
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Upload(b backend.Backend) (vertex_array.VertexArray, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vertexArray != nil {
		return m.vertexArray, nil
	}

	vb := buffer.NewVertexBuffer(b, m.vertices, buffer.WithLayout(m.layout))
	va := vertex_array.NewVertexArray(b)
	err := va.AddVertexBuffer(vb)
	// The vertex array holds its own reference.
	vb.Release()
	if err != nil {
		va.Destroy()
		return nil, fmt.Errorf("failed to upload model %q: %w", m.name, err)
	}

	if len(m.indices) > 0 {
		ib := buffer.NewIndexBuffer(b, m.indices)
		va.SetIndexBuffer(ib)
		ib.Release()
	}

	m.vertexArray = va
	return va, nil
}

func (m *model) VertexArray() vertex_array.VertexArray {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vertexArray
}

func (m *model) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vertexArray != nil {
		m.vertexArray.Destroy()
		m.vertexArray = nil
	}
}

func positionRadius(vertices []float32, layout buffer.Layout) float32 {
	elements := layout.Elements()
	if len(elements) == 0 || elements[0].Type != buffer.ShaderDataTypeFloat3 {
		return 0
	}
	stride := int(layout.Stride() / 4)
	offset := int(elements[0].Offset / 4)
	var radius float32
	for i := offset; i+2 < len(vertices); i += stride {
		x, y, z := vertices[i], vertices[i+1], vertices[i+2]
		radius = math32.Max(radius, math32.Sqrt(x*x+y*y+z*z))
	}
	return radius
}
