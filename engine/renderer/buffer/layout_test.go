package buffer

import (
	"errors"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShaderDataTypeSize(t *testing.T) {
	cases := map[ShaderDataType]uint32{
		ShaderDataTypeFloat:  4,
		ShaderDataTypeFloat2: 8,
		ShaderDataTypeFloat3: 12,
		ShaderDataTypeFloat4: 16,
		ShaderDataTypeMat3:   36,
		ShaderDataTypeMat4:   64,
		ShaderDataTypeInt:    4,
		ShaderDataTypeInt2:   8,
		ShaderDataTypeInt3:   12,
		ShaderDataTypeInt4:   16,
		ShaderDataTypeBool:   1,
		ShaderDataTypeNone:   0,
		ShaderDataType(99):   0,
	}
	for dt, want := range cases {
		assert.Equal(t, want, dt.Size(), dt.String())
	}
}

func TestShaderDataTypeValueCount(t *testing.T) {
	cases := map[ShaderDataType]uint32{
		ShaderDataTypeFloat:  1,
		ShaderDataTypeFloat2: 2,
		ShaderDataTypeFloat3: 3,
		ShaderDataTypeFloat4: 4,
		ShaderDataTypeMat3:   9,
		ShaderDataTypeMat4:   16,
		ShaderDataTypeInt:    1,
		ShaderDataTypeInt2:   2,
		ShaderDataTypeInt3:   3,
		ShaderDataTypeInt4:   4,
		ShaderDataTypeBool:   1,
		ShaderDataTypeNone:   0,
	}
	for dt, want := range cases {
		assert.Equal(t, want, dt.ValueCount(), dt.String())
	}
}

func TestNewLayoutOffsetsAndStride(t *testing.T) {
	l := NewLayout(
		NewElement(ShaderDataTypeFloat3, "a_Position", false),
		NewElement(ShaderDataTypeFloat4, "a_Color", false),
		NewElement(ShaderDataTypeFloat2, "a_TexCoord", false),
	)

	require.Equal(t, 3, l.Len())
	assert.Equal(t, uint32(36), l.Stride())

	elems := l.Elements()
	assert.Equal(t, []uint32{0, 12, 28}, []uint32{elems[0].Offset, elems[1].Offset, elems[2].Offset})
	assert.Equal(t, []uint32{12, 16, 8}, []uint32{elems[0].Size, elems[1].Size, elems[2].Size})
	assert.Equal(t, "a_Color", elems[1].Name)
}

func TestNewLayoutMatrixAndBool(t *testing.T) {
	l := NewLayout(
		NewElement(ShaderDataTypeMat4, "a_Model", false),
		NewElement(ShaderDataTypeBool, "a_Flag", false),
	)
	elems := l.Elements()
	assert.Equal(t, uint32(64), elems[1].Offset)
	assert.Equal(t, uint32(65), l.Stride())
}

func TestNewLayoutEmpty(t *testing.T) {
	l := NewLayout()
	assert.True(t, l.Empty())
	assert.Equal(t, uint32(0), l.Stride())
	assert.Empty(t, l.Elements())
}

func TestLayoutElementsIsCopy(t *testing.T) {
	l := NewLayout(NewElement(ShaderDataTypeFloat3, "a_Position", false))
	elems := l.Elements()
	elems[0].Offset = 100
	assert.Equal(t, uint32(0), l.Elements()[0].Offset)
}

func TestWGPUVertexBufferLayout(t *testing.T) {
	l := NewLayout(
		NewElement(ShaderDataTypeFloat3, "a_Position", false),
		NewElement(ShaderDataTypeMat4, "a_Model", false),
		NewElement(ShaderDataTypeInt, "a_ID", false),
	)

	out, err := l.WGPUVertexBufferLayout(wgpu.VertexStepModeInstance, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(l.Stride()), out.ArrayStride)
	assert.Equal(t, wgpu.VertexStepModeInstance, out.StepMode)
	require.Len(t, out.Attributes, 6)

	assert.Equal(t, wgpu.VertexFormatFloat32x3, out.Attributes[0].Format)
	assert.Equal(t, uint32(2), out.Attributes[0].ShaderLocation)
	for c := 0; c < 4; c++ {
		a := out.Attributes[1+c]
		assert.Equal(t, wgpu.VertexFormatFloat32x4, a.Format)
		assert.Equal(t, uint64(12+16*c), a.Offset)
		assert.Equal(t, uint32(3+c), a.ShaderLocation)
	}
	assert.Equal(t, wgpu.VertexFormatSint32, out.Attributes[5].Format)
	assert.Equal(t, uint64(76), out.Attributes[5].Offset)
}

func TestWGPUVertexBufferLayoutBool(t *testing.T) {
	l := NewLayout(NewElement(ShaderDataTypeBool, "a_Flag", false))
	_, err := l.WGPUVertexBufferLayout(wgpu.VertexStepModeVertex, 0)
	assert.True(t, errors.Is(err, ErrUnsupportedType))
}
