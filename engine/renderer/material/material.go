package material

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
)

// GLSLSource declares the Material struct and the "material" uniform that Apply fills.
// Shaders pull it in with #include <material>.
//
//go:embed assets/material.glsl
var GLSLSource string

// Default texture units used by Apply.
const (
	DiffuseSlot  uint32 = 0
	SpecularSlot uint32 = 1
)

// UniformSetter is the subset of a shader used to upload material uniforms.
type UniformSetter interface {
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
}

// material is the implementation of the Material interface.
type material struct {
	name            string
	diffuseTexture  texture.Texture2D
	specularTexture texture.Texture2D
	shininess       float32
	diffuseSlot     uint32
	specularSlot    uint32
}

// Material is a Phong surface: a diffuse map, a specular map and a shininess exponent.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// DiffuseTexture retrieves the diffuse map, or nil if none is set.
	//
	// Returns:
	//   - texture.Texture2D: the diffuse texture, or nil
	DiffuseTexture() texture.Texture2D

	// SpecularTexture retrieves the specular map, or nil if none is set.
	//
	// Returns:
	//   - texture.Texture2D: the specular texture, or nil
	SpecularTexture() texture.Texture2D

	// Shininess retrieves the specular exponent.
	//
	// Returns:
	//   - float32: the shininess
	Shininess() float32

	// SetShininess sets the specular exponent.
	//
	// Parameters:
	//   - shininess: the new exponent
	SetShininess(shininess float32)

	// Apply binds the textures to their units and uploads the sampler units and shininess to the struct
	// uniform called name, usually "material".
	//
	// Parameters:
	//   - u: the target shader, already bound
	//   - name: the GLSL struct uniform name
	Apply(u UniformSetter, name string)
}

var _ Material = &material{}

// NewMaterial creates a new Material with shininess 32 and the default texture units.
//
// Parameters:
//   - opts: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(opts ...MaterialBuilderOption) Material {
	m := &material{
		shininess:    32,
		diffuseSlot:  DiffuseSlot,
		specularSlot: SpecularSlot,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) DiffuseTexture() texture.Texture2D {
	return m.diffuseTexture
}

func (m *material) SpecularTexture() texture.Texture2D {
	return m.specularTexture
}

func (m *material) Shininess() float32 {
	return m.shininess
}

func (m *material) SetShininess(shininess float32) {
	m.shininess = shininess
}

func (m *material) Apply(u UniformSetter, name string) {
	if m.diffuseTexture != nil {
		m.diffuseTexture.Bind(m.diffuseSlot)
	}
	if m.specularTexture != nil {
		m.specularTexture.Bind(m.specularSlot)
	}
	u.SetInt(name+".diffuse", int32(m.diffuseSlot))
	u.SetInt(name+".specular", int32(m.specularSlot))
	u.SetFloat(name+".shininess", m.shininess)
}
