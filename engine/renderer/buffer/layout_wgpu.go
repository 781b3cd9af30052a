package buffer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrUnsupportedType is returned when a layout element has no WebGPU vertex format.
var ErrUnsupportedType = errors.New("unsupported shader data type")

// wgpuVertexFormatMap maps single-column data types to their WebGPU vertex formats.
// Matrices are split into Float32x3 / Float32x4 columns.
var wgpuVertexFormatMap = map[ShaderDataType]wgpu.VertexFormat{
	ShaderDataTypeFloat:  wgpu.VertexFormatFloat32,
	ShaderDataTypeFloat2: wgpu.VertexFormatFloat32x2,
	ShaderDataTypeFloat3: wgpu.VertexFormatFloat32x3,
	ShaderDataTypeFloat4: wgpu.VertexFormatFloat32x4,
	ShaderDataTypeInt:    wgpu.VertexFormatSint32,
	ShaderDataTypeInt2:   wgpu.VertexFormatSint32x2,
	ShaderDataTypeInt3:   wgpu.VertexFormatSint32x3,
	ShaderDataTypeInt4:   wgpu.VertexFormatSint32x4,
	ShaderDataTypeMat3:   wgpu.VertexFormatFloat32x3,
	ShaderDataTypeMat4:   wgpu.VertexFormatFloat32x4,
}

// WGPUVertexBufferLayout converts the layout into a wgpu.VertexBufferLayout so the same vertex data can
// feed a WebGPU pipeline. Shader locations are assigned sequentially from firstLocation, one per matrix
// column, matching the attribute indices a VertexArray would assign.
//
// Parameters:
//   - stepMode: per-vertex or per-instance stepping
//   - firstLocation: the shader location of the first attribute
//
// Returns:
//   - wgpu.VertexBufferLayout: the converted layout
//   - error: ErrUnsupportedType if an element type has no vertex format (Bool, None)
func (l Layout) WGPUVertexBufferLayout(stepMode wgpu.VertexStepMode, firstLocation uint32) (wgpu.VertexBufferLayout, error) {
	attrs := make([]wgpu.VertexAttribute, 0, len(l.elements))
	location := firstLocation

	for _, e := range l.elements {
		format, ok := wgpuVertexFormatMap[e.Type]
		if !ok {
			return wgpu.VertexBufferLayout{}, fmt.Errorf("element %q of type %s: %w", e.Name, e.Type, ErrUnsupportedType)
		}

		columns := e.Type.ColumnCount()
		columnSize := e.Size / columns
		for c := uint32(0); c < columns; c++ {
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         format,
				Offset:         uint64(e.Offset + c*columnSize),
				ShaderLocation: location,
			})
			location++
		}
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(l.stride),
		StepMode:    stepMode,
		Attributes:  attrs,
	}, nil
}
