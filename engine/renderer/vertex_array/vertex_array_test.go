package vertex_array

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVertexBufferDescribesAttributes(t *testing.T) {
	rec := backendtest.NewRecorder()
	layout := buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeFloat3, "a_Position", false),
		buffer.NewElement(buffer.ShaderDataTypeFloat4, "a_Color", false),
	)
	vb := buffer.NewVertexBuffer(rec, make([]float32, 21), buffer.WithLayout(layout))

	va := NewVertexArray(rec)
	require.NoError(t, va.AddVertexBuffer(vb))

	attribs := rec.Attribs[va.Handle()]
	require.Len(t, attribs, 2)
	assert.Equal(t, backendtest.AttribPointer{Index: 0, Size: 3, Type: backend.AttribTypeFloat, Stride: 28, Offset: 0}, attribs[0])
	assert.Equal(t, backendtest.AttribPointer{Index: 1, Size: 4, Type: backend.AttribTypeFloat, Stride: 28, Offset: 12}, attribs[1])
	assert.Equal(t, []uint32{0, 1}, rec.Enabled[va.Handle()])
	assert.Equal(t, uint32(2), va.AttributeCount())
	assert.Equal(t, 2, vb.RefCount())
}

func TestAddVertexBufferContinuesIndices(t *testing.T) {
	rec := backendtest.NewRecorder()
	positions := buffer.NewVertexBuffer(rec, make([]float32, 9), buffer.WithLayout(buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeFloat3, "a_Position", false),
	)))
	instances := buffer.NewVertexBuffer(rec, make([]float32, 16), buffer.WithLayout(buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeMat4, "a_Model", false),
	)))

	va := NewVertexArray(rec)
	require.NoError(t, va.AddVertexBuffer(positions))
	require.NoError(t, va.AddVertexBuffer(instances))

	attribs := rec.Attribs[va.Handle()]
	require.Len(t, attribs, 5)
	for c := 0; c < 4; c++ {
		a := attribs[1+c]
		assert.Equal(t, uint32(1+c), a.Index)
		assert.Equal(t, int32(4), a.Size)
		assert.Equal(t, int32(64), a.Stride)
		assert.Equal(t, uintptr(16*c), a.Offset)
	}
	assert.Len(t, va.VertexBuffers(), 2)
}

func TestAddVertexBufferComponentTypes(t *testing.T) {
	rec := backendtest.NewRecorder()
	vb := buffer.NewVertexBufferFromBytes(rec, make([]byte, 9), buffer.WithLayout(buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeInt2, "a_IDs", false),
		buffer.NewElement(buffer.ShaderDataTypeBool, "a_Flag", true),
	)))

	va := NewVertexArray(rec)
	require.NoError(t, va.AddVertexBuffer(vb))

	attribs := rec.Attribs[va.Handle()]
	require.Len(t, attribs, 2)
	assert.Equal(t, backend.AttribTypeInt, attribs[0].Type)
	assert.Equal(t, backend.AttribTypeUnsignedByte, attribs[1].Type)
	assert.True(t, attribs[1].Normalized)
	assert.Equal(t, uintptr(8), attribs[1].Offset)
}

func TestAddVertexBufferEmptyLayout(t *testing.T) {
	rec := backendtest.NewRecorder()
	vb := buffer.NewVertexBuffer(rec, []float32{0, 0, 0})
	va := NewVertexArray(rec)

	err := va.AddVertexBuffer(vb)
	assert.True(t, errors.Is(err, ErrEmptyLayout))
	assert.Empty(t, va.VertexBuffers())
	assert.Equal(t, 1, vb.RefCount())
}

func TestSetIndexBufferReplaces(t *testing.T) {
	rec := backendtest.NewRecorder()
	va := NewVertexArray(rec)
	first := buffer.NewIndexBuffer(rec, []uint32{0, 1, 2})
	second := buffer.NewIndexBuffer(rec, []uint32{0, 1, 2, 2, 3, 0})

	va.SetIndexBuffer(first)
	assert.Equal(t, 2, first.RefCount())
	assert.Equal(t, va.Handle(), rec.BoundVertexArray)

	va.SetIndexBuffer(second)
	assert.Equal(t, 1, first.RefCount())
	assert.Equal(t, uint32(6), va.IndexBuffer().Count())
	assert.Equal(t, second.Handle(), rec.BoundBuffers[backend.BufferTargetElementArray])
}

func TestDestroyReleasesBuffers(t *testing.T) {
	rec := backendtest.NewRecorder()
	vb := buffer.NewVertexBuffer(rec, make([]float32, 3), buffer.WithLayout(buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeFloat3, "a_Position", false),
	)))
	ib := buffer.NewIndexBuffer(rec, []uint32{0, 1, 2})
	va := NewVertexArray(rec)
	require.NoError(t, va.AddVertexBuffer(vb))
	va.SetIndexBuffer(ib)
	vaHandle := va.Handle()
	vbHandle := vb.Handle()

	// The caller drops its own references; the array still holds one each.
	vb.Release()
	ib.Release()
	assert.True(t, rec.IsLive(vbHandle))

	va.Destroy()
	assert.False(t, rec.IsLive(vaHandle))
	assert.False(t, rec.IsLive(vbHandle))
	assert.Nil(t, va.IndexBuffer())
}
