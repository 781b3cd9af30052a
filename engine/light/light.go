package light

import (
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
)

// GLSLSource declares the light uniform structs, the uniforms ApplyAll fills and the Phong helpers
// (calcDirLight, calcPointLight, calcSpotLight, calcLights). Shaders pull it in with #include <light>.
//
//go:embed assets/light.glsl
var GLSLSource string

// MaxPointLights and MaxSpotLights match the default array sizes in GLSLSource. A shader built with
// larger MAX_POINT_LIGHTS or MAX_SPOT_LIGHTS defines must be filled with ApplyAllWithLimits.
const (
	MaxPointLights = 4
	MaxSpotLights  = 4
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction, like the sun.
	// It is not attenuated.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Attenuates with distance and fades between the inner and outer cut-off angles.
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// UniformSetter is the subset of a shader used to upload light uniforms.
type UniformSetter interface {
	SetFloat(name string, v float32)
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetVec3(name string, v mgl32.Vec3)
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  mgl32.Vec3
	direction mgl32.Vec3

	ambient  mgl32.Vec3
	diffuse  mgl32.Vec3
	specular mgl32.Vec3

	constant  float32
	linear    float32
	quadratic float32

	innerCone float32 // stored as cos(angle)
	outerCone float32 // stored as cos(angle)
	enabled   bool
}

// Light is a Phong light source. All types share this interface; properties that do not apply to a
// type (position of a directional light, cut-offs of a point light) are kept but not uploaded.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	Position() mgl32.Vec3

	// Direction returns the normalized direction of the light. For spot lights this is the cone axis.
	Direction() mgl32.Vec3

	// Ambient returns the ambient color contribution.
	Ambient() mgl32.Vec3

	// Diffuse returns the diffuse color contribution.
	Diffuse() mgl32.Vec3

	// Specular returns the specular color contribution.
	Specular() mgl32.Vec3

	// Attenuation returns the constant, linear and quadratic attenuation terms.
	//
	// Returns:
	//   - constant, linear, quadratic: the terms of 1 / (c + l*d + q*d*d)
	Attenuation() (constant, linear, quadratic float32)

	// InnerCone returns the cosine of the inner cut-off angle for spot lights.
	InnerCone() float32

	// OuterCone returns the cosine of the outer cut-off angle for spot lights.
	OuterCone() float32

	// Enabled returns whether the light is uploaded by ApplyAll.
	Enabled() bool

	SetPosition(p mgl32.Vec3)

	// SetDirection sets the direction of the light and normalizes it.
	SetDirection(d mgl32.Vec3)

	// SetColors sets the ambient, diffuse and specular contributions.
	SetColors(ambient, diffuse, specular mgl32.Vec3)

	SetAttenuation(constant, linear, quadratic float32)

	// SetSpotCone sets the inner and outer cut-off angles in degrees, stored as cosines.
	SetSpotCone(innerDeg, outerDeg float32)

	SetEnabled(enabled bool)

	// Apply uploads the light's fields to the uniform struct called name, e.g. "pointLights[0]".
	//
	// Parameters:
	//   - u: the target shader, already bound
	//   - name: the GLSL struct uniform name
	Apply(u UniformSetter, name string)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with LearnOpenGL-style defaults: a dim white
// ambient, white diffuse and specular, attenuation tuned for roughly 50 units, and a 12.5/17.5 degree
// spot cone.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: mgl32.Vec3{0, -1, 0},
		ambient:   mgl32.Vec3{0.05, 0.05, 0.05},
		diffuse:   mgl32.Vec3{0.8, 0.8, 0.8},
		specular:  mgl32.Vec3{1, 1, 1},
		constant:  1.0,
		linear:    0.09,
		quadratic: 0.032,
		innerCone: cosDeg(12.5),
		outerCone: cosDeg(17.5),
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.direction
}

func (l *lightImpl) Ambient() mgl32.Vec3 {
	return l.ambient
}

func (l *lightImpl) Diffuse() mgl32.Vec3 {
	return l.diffuse
}

func (l *lightImpl) Specular() mgl32.Vec3 {
	return l.specular
}

func (l *lightImpl) Attenuation() (float32, float32, float32) {
	return l.constant, l.linear, l.quadratic
}

func (l *lightImpl) InnerCone() float32 {
	return l.innerCone
}

func (l *lightImpl) OuterCone() float32 {
	return l.outerCone
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetDirection(d mgl32.Vec3) {
	l.direction = normalize3(d)
}

func (l *lightImpl) SetColors(ambient, diffuse, specular mgl32.Vec3) {
	l.ambient = ambient
	l.diffuse = diffuse
	l.specular = specular
}

func (l *lightImpl) SetAttenuation(constant, linear, quadratic float32) {
	l.constant = constant
	l.linear = linear
	l.quadratic = quadratic
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.innerCone = cosDeg(innerDeg)
	l.outerCone = cosDeg(outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) Apply(u UniformSetter, name string) {
	u.SetVec3(name+".ambient", l.ambient)
	u.SetVec3(name+".diffuse", l.diffuse)
	u.SetVec3(name+".specular", l.specular)

	switch l.lightType {
	case LightTypeDirectional:
		u.SetVec3(name+".direction", l.direction)
	case LightTypePoint:
		u.SetVec3(name+".position", l.position)
		l.applyAttenuation(u, name)
	case LightTypeSpot:
		u.SetVec3(name+".position", l.position)
		u.SetVec3(name+".direction", l.direction)
		u.SetFloat(name+".cutOff", l.innerCone)
		u.SetFloat(name+".outerCutOff", l.outerCone)
		l.applyAttenuation(u, name)
	}
}

func (l *lightImpl) applyAttenuation(u UniformSetter, name string) {
	u.SetFloat(name+".constant", l.constant)
	u.SetFloat(name+".linear", l.linear)
	u.SetFloat(name+".quadratic", l.quadratic)
}

// ApplyAll uploads every enabled light into the uniforms declared by GLSLSource. The first directional
// light fills dirLight and sets hasDirLight; point and spot lights fill pointLights[i] and spotLights[i]
// in order and set numPointLights and numSpotLights. Lights beyond MaxPointLights and MaxSpotLights are
// skipped with a warning.
//
// Parameters:
//   - u: the target shader, already bound
//   - lights: the lights to upload
func ApplyAll(u UniformSetter, lights []Light) {
	ApplyAllWithLimits(u, lights, MaxPointLights, MaxSpotLights)
}

// ApplyAllWithLimits is ApplyAll for shaders whose MAX_POINT_LIGHTS and MAX_SPOT_LIGHTS defines differ
// from the defaults. The limits must equal the array sizes the shader was compiled with.
//
// Parameters:
//   - u: the target shader, already bound
//   - lights: the lights to upload
//   - maxPoint: the shader's MAX_POINT_LIGHTS
//   - maxSpot: the shader's MAX_SPOT_LIGHTS
func ApplyAllWithLimits(u UniformSetter, lights []Light, maxPoint, maxSpot int32) {
	var hasDir bool
	var points, spots int32
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		switch l.Type() {
		case LightTypeDirectional:
			if hasDir {
				slog.Warn("only one directional light is uploaded, ignoring extra")
				continue
			}
			l.Apply(u, "dirLight")
			hasDir = true
		case LightTypePoint:
			if points >= maxPoint {
				slog.Warn("too many point lights, ignoring extra", "max", maxPoint)
				continue
			}
			l.Apply(u, fmt.Sprintf("pointLights[%d]", points))
			points++
		case LightTypeSpot:
			if spots >= maxSpot {
				slog.Warn("too many spot lights, ignoring extra", "max", maxSpot)
				continue
			}
			l.Apply(u, fmt.Sprintf("spotLights[%d]", spots))
			spots++
		}
	}
	u.SetBool("hasDirLight", hasDir)
	u.SetInt("numPointLights", points)
	u.SetInt("numSpotLights", spots)
}
