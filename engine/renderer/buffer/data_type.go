package buffer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// ShaderDataType enumerates the attribute types a layout element can declare.
type ShaderDataType int

const (
	ShaderDataTypeNone ShaderDataType = iota
	ShaderDataTypeFloat
	ShaderDataTypeFloat2
	ShaderDataTypeFloat3
	ShaderDataTypeFloat4
	ShaderDataTypeInt
	ShaderDataTypeInt2
	ShaderDataTypeInt3
	ShaderDataTypeInt4
	ShaderDataTypeBool
	ShaderDataTypeMat3
	ShaderDataTypeMat4
)

// Size returns the byte size of one value of the type. Unknown types report 0 and log a warning.
//
// Returns:
//   - uint32: size in bytes
func (t ShaderDataType) Size() uint32 {
	switch t {
	case ShaderDataTypeFloat, ShaderDataTypeInt:
		return 4
	case ShaderDataTypeFloat2, ShaderDataTypeInt2:
		return 8
	case ShaderDataTypeFloat3, ShaderDataTypeInt3:
		return 12
	case ShaderDataTypeFloat4, ShaderDataTypeInt4:
		return 16
	case ShaderDataTypeMat3:
		return 4 * 3 * 3
	case ShaderDataTypeMat4:
		return 4 * 4 * 4
	case ShaderDataTypeBool:
		return 1
	}
	slog.Warn("unknown shader data type", "type", int(t))
	return 0
}

// ValueCount returns the number of scalar components of the type (9 for Mat3, 16 for Mat4).
// Unknown types report 0 and log a warning.
//
// Returns:
//   - uint32: the component count
func (t ShaderDataType) ValueCount() uint32 {
	switch t {
	case ShaderDataTypeFloat, ShaderDataTypeInt, ShaderDataTypeBool:
		return 1
	case ShaderDataTypeFloat2, ShaderDataTypeInt2:
		return 2
	case ShaderDataTypeFloat3, ShaderDataTypeInt3:
		return 3
	case ShaderDataTypeFloat4, ShaderDataTypeInt4:
		return 4
	case ShaderDataTypeMat3:
		return 3 * 3
	case ShaderDataTypeMat4:
		return 4 * 4
	}
	slog.Warn("unknown shader data type", "type", int(t))
	return 0
}

// ColumnCount returns how many vertex attribute slots the type occupies. Matrices take one slot per column.
//
// Returns:
//   - uint32: 3 for Mat3, 4 for Mat4, 1 otherwise
func (t ShaderDataType) ColumnCount() uint32 {
	switch t {
	case ShaderDataTypeMat3:
		return 3
	case ShaderDataTypeMat4:
		return 4
	}
	return 1
}

// ComponentType returns the numeric type of the components as understood by the backend.
// Bool is uploaded as an unsigned byte.
//
// Returns:
//   - backend.AttribType: the component type
func (t ShaderDataType) ComponentType() backend.AttribType {
	switch t {
	case ShaderDataTypeInt, ShaderDataTypeInt2, ShaderDataTypeInt3, ShaderDataTypeInt4:
		return backend.AttribTypeInt
	case ShaderDataTypeBool:
		return backend.AttribTypeUnsignedByte
	}
	return backend.AttribTypeFloat
}

func (t ShaderDataType) String() string {
	switch t {
	case ShaderDataTypeNone:
		return "None"
	case ShaderDataTypeFloat:
		return "Float"
	case ShaderDataTypeFloat2:
		return "Float2"
	case ShaderDataTypeFloat3:
		return "Float3"
	case ShaderDataTypeFloat4:
		return "Float4"
	case ShaderDataTypeInt:
		return "Int"
	case ShaderDataTypeInt2:
		return "Int2"
	case ShaderDataTypeInt3:
		return "Int3"
	case ShaderDataTypeInt4:
		return "Int4"
	case ShaderDataTypeBool:
		return "Bool"
	case ShaderDataTypeMat3:
		return "Mat3"
	case ShaderDataTypeMat4:
		return "Mat4"
	}
	return "Unknown"
}
