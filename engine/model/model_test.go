package model

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitives(t *testing.T) {
	tri := Triangle()
	assert.Equal(t, "triangle", tri.Name())
	assert.Equal(t, 3, tri.VertexCount())
	assert.Equal(t, uint32(28), tri.Layout().Stride())

	quad := Quad(WithName("floor"))
	assert.Equal(t, "floor", quad.Name())
	assert.Equal(t, 4, quad.VertexCount())
	assert.Len(t, quad.Indices(), 6)

	cube := Cube()
	assert.Equal(t, 36, cube.VertexCount())
	assert.Nil(t, cube.Indices())
	assert.InDelta(t, math32.Sqrt(0.75), cube.BoundingRadius(), 1e-6)
}

func TestCubeWinding(t *testing.T) {
	v := Cube().Vertices()
	for tri := 0; tri < 12; tri++ {
		base := tri * 3 * 8
		p := func(i int) mgl32.Vec3 {
			o := base + i*8
			return mgl32.Vec3{v[o], v[o+1], v[o+2]}
		}
		n := mgl32.Vec3{v[base+3], v[base+4], v[base+5]}
		face := p(1).Sub(p(0)).Cross(p(2).Sub(p(0)))
		assert.Greater(t, face.Dot(n), float32(0), "triangle %d winds clockwise", tri)
		for i := 0; i < 3; i++ {
			assert.InDelta(t, 0.5, p(i).Dot(n), 1e-6, "vertex off face plane")
		}
	}
}

func TestUploadIndexed(t *testing.T) {
	rec := backendtest.NewRecorder()
	m := Quad()

	va, err := m.Upload(rec)
	require.NoError(t, err)
	require.NotNil(t, va.IndexBuffer())
	assert.Equal(t, uint32(6), va.IndexBuffer().Count())
	assert.Len(t, va.VertexBuffers(), 1)
	assert.Equal(t, 1, va.VertexBuffers()[0].RefCount(), "only the vertex array holds the buffer")

	again, err := m.Upload(rec)
	require.NoError(t, err)
	assert.Same(t, va, again)
	assert.Equal(t, 1, rec.Count("CreateVertexArray"))

	m.Destroy()
	assert.Nil(t, m.VertexArray())
	assert.Empty(t, rec.Live)
}

func TestUploadEmptyLayoutFails(t *testing.T) {
	rec := backendtest.NewRecorder()
	m := NewModel(WithName("broken"), WithVertices([]float32{0, 0, 0}, buffer.NewLayout()))

	_, err := m.Upload(rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Nil(t, m.VertexArray())
	assert.Empty(t, rec.Live)
}

func TestMaterialAndRadius(t *testing.T) {
	mat := material.NewMaterial(material.WithName("plain"))
	m := Cube(WithMaterial(mat), WithBoundingRadius(2))
	assert.Equal(t, float32(2), m.BoundingRadius())
	assert.Same(t, mat, m.Material())

	m.SetMaterial(nil)
	assert.Nil(t, m.Material())
}
