package model

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
	"github.com/go-gl/mathgl/mgl32"
)

// Attribute names used by the built-in primitives. Shaders bind them by location in declaration order.
const (
	AttribPosition = "a_Position"
	AttribColor    = "a_Color"
	AttribNormal   = "a_Normal"
	AttribTexCoord = "a_TexCoord"
)

// Triangle returns a single colored triangle: position (Float3) and RGBA color (Float4) per vertex.
func Triangle(options ...ModelBuilderOption) Model {
	layout := buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeFloat3, AttribPosition, false),
		buffer.NewElement(buffer.ShaderDataTypeFloat4, AttribColor, false),
	)
	vertices := []float32{
		-0.5, -0.5, 0.0, 0.8, 0.2, 0.8, 1.0,
		0.5, -0.5, 0.0, 0.2, 0.3, 0.8, 1.0,
		0.0, 0.5, 0.0, 0.8, 0.8, 0.2, 1.0,
	}
	return NewModel(append([]ModelBuilderOption{
		WithName("triangle"),
		WithVertices(vertices, layout),
		WithIndices([]uint32{0, 1, 2}),
	}, options...)...)
}

// Quad returns a unit quad in the XY plane facing +Z: position (Float3) and texture coordinate (Float2)
// per vertex, drawn with six indices.
func Quad(options ...ModelBuilderOption) Model {
	layout := buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeFloat3, AttribPosition, false),
		buffer.NewElement(buffer.ShaderDataTypeFloat2, AttribTexCoord, false),
	)
	vertices := []float32{
		-0.5, -0.5, 0.0, 0.0, 0.0,
		0.5, -0.5, 0.0, 1.0, 0.0,
		0.5, 0.5, 0.0, 1.0, 1.0,
		-0.5, 0.5, 0.0, 0.0, 1.0,
	}
	return NewModel(append([]ModelBuilderOption{
		WithName("quad"),
		WithVertices(vertices, layout),
		WithIndices([]uint32{0, 1, 2, 2, 3, 0}),
	}, options...)...)
}

// cubeFace is one side of the unit cube. u x v equals normal so triangles wind counter-clockwise
// when seen from outside.
type cubeFace struct {
	normal, u, v mgl32.Vec3
}

var cubeFaces = []cubeFace{
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
}

// Corners of a face as (s, t) in [-1, 1], two triangles.
var faceCorners = [6][2]float32{{-1, -1}, {1, -1}, {1, 1}, {1, 1}, {-1, 1}, {-1, -1}}

// Cube returns a unit cube centered on the origin as 36 non-indexed vertices: position (Float3),
// normal (Float3) and texture coordinate (Float2).
func Cube(options ...ModelBuilderOption) Model {
	layout := buffer.NewLayout(
		buffer.NewElement(buffer.ShaderDataTypeFloat3, AttribPosition, false),
		buffer.NewElement(buffer.ShaderDataTypeFloat3, AttribNormal, false),
		buffer.NewElement(buffer.ShaderDataTypeFloat2, AttribTexCoord, false),
	)
	vertices := make([]float32, 0, len(cubeFaces)*len(faceCorners)*8)
	for _, f := range cubeFaces {
		for _, c := range faceCorners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(0.5)
			vertices = append(vertices,
				p[0], p[1], p[2],
				f.normal[0], f.normal[1], f.normal[2],
				(c[0]+1)/2, (c[1]+1)/2,
			)
		}
	}
	return NewModel(append([]ModelBuilderOption{
		WithName("cube"),
		WithVertices(vertices, layout),
	}, options...)...)
}
