package material

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"

// MaterialBuilderOption is a functional option for configuring a material during construction.
type MaterialBuilderOption func(*material)

// WithName sets the name of the material.
//
// Parameters:
//   - name: the material identifier
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name to the material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithDiffuseTexture sets the diffuse map.
//
// Parameters:
//   - tex: the diffuse texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the diffuse texture to the material
func WithDiffuseTexture(tex texture.Texture2D) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseTexture = tex
	}
}

// WithSpecularTexture sets the specular map.
//
// Parameters:
//   - tex: the specular texture
//
// Returns:
//   - MaterialBuilderOption: a function that applies the specular texture to the material
func WithSpecularTexture(tex texture.Texture2D) MaterialBuilderOption {
	return func(m *material) {
		m.specularTexture = tex
	}
}

// WithShininess sets the specular exponent.
//
// Parameters:
//   - shininess: the exponent
//
// Returns:
//   - MaterialBuilderOption: a function that applies the shininess to the material
func WithShininess(shininess float32) MaterialBuilderOption {
	return func(m *material) {
		m.shininess = shininess
	}
}

// WithTextureSlots overrides the texture units used for the diffuse and specular maps.
//
// Parameters:
//   - diffuse: the diffuse texture unit
//   - specular: the specular texture unit
//
// Returns:
//   - MaterialBuilderOption: a function that applies the slots to the material
func WithTextureSlots(diffuse, specular uint32) MaterialBuilderOption {
	return func(m *material) {
		m.diffuseSlot = diffuse
		m.specularSlot = specular
	}
}
