package light

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSetter struct {
	values map[string]any
}

func newRecordingSetter() *recordingSetter {
	return &recordingSetter{values: make(map[string]any)}
}

func (r *recordingSetter) SetFloat(name string, v float32)   { r.values[name] = v }
func (r *recordingSetter) SetInt(name string, v int32)       { r.values[name] = v }
func (r *recordingSetter) SetBool(name string, v bool)       { r.values[name] = v }
func (r *recordingSetter) SetVec3(name string, v mgl32.Vec3) { r.values[name] = v }

func TestNewLightDefaults(t *testing.T) {
	l := NewLight(LightTypePoint)
	c, lin, q := l.Attenuation()
	assert.Equal(t, float32(1), c)
	assert.Equal(t, float32(0.09), lin)
	assert.Equal(t, float32(0.032), q)
	assert.True(t, l.Enabled())
	assert.Greater(t, l.InnerCone(), l.OuterCone())
}

func TestWithDirectionNormalizes(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(0, -3, 4))
	assert.InDelta(t, 1.0, l.Direction().Len(), 1e-6)
	assert.InDelta(t, -0.6, l.Direction().Y(), 1e-6)

	l.SetDirection(mgl32.Vec3{})
	assert.Equal(t, mgl32.Vec3{}, l.Direction())
}

func TestWithSpotConeStoresCosines(t *testing.T) {
	l := NewLight(LightTypeSpot, WithSpotCone(0, 60))
	assert.InDelta(t, 1.0, l.InnerCone(), 1e-6)
	assert.InDelta(t, 0.5, l.OuterCone(), 1e-6)
}

func TestApplySpot(t *testing.T) {
	u := newRecordingSetter()
	l := NewLight(LightTypeSpot, WithPosition(1, 2, 3), WithColor(1, 0, 0))
	l.Apply(u, "spotLights[0]")

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, u.values["spotLights[0].position"])
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, u.values["spotLights[0].specular"])
	assert.Contains(t, u.values, "spotLights[0].cutOff")
	assert.Contains(t, u.values, "spotLights[0].quadratic")
}

func TestApplyDirectionalSkipsAttenuation(t *testing.T) {
	u := newRecordingSetter()
	NewLight(LightTypeDirectional).Apply(u, "dirLight")
	assert.Contains(t, u.values, "dirLight.direction")
	assert.NotContains(t, u.values, "dirLight.constant")
	assert.NotContains(t, u.values, "dirLight.position")
}

func TestApplyAll(t *testing.T) {
	u := newRecordingSetter()
	lights := []Light{
		NewLight(LightTypeDirectional),
		NewLight(LightTypePoint, WithPosition(1, 0, 0)),
		NewLight(LightTypePoint, WithEnabled(false)),
		NewLight(LightTypePoint, WithPosition(2, 0, 0)),
		NewLight(LightTypeSpot),
	}
	ApplyAll(u, lights)

	assert.Equal(t, true, u.values["hasDirLight"])
	assert.Equal(t, int32(2), u.values["numPointLights"])
	assert.Equal(t, int32(1), u.values["numSpotLights"])
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, u.values["pointLights[1].position"])
	assert.NotContains(t, u.values, "pointLights[2].position")
}

func TestApplyAllCapsPointLights(t *testing.T) {
	u := newRecordingSetter()
	var lights []Light
	for i := 0; i < MaxPointLights+2; i++ {
		lights = append(lights, NewLight(LightTypePoint))
	}
	ApplyAll(u, lights)
	assert.Equal(t, int32(MaxPointLights), u.values["numPointLights"])
	assert.Equal(t, false, u.values["hasDirLight"])
}

func TestApplyAllWithLimitsMatchesLargerArrays(t *testing.T) {
	u := newRecordingSetter()
	var lights []Light
	for i := 0; i < 8; i++ {
		lights = append(lights, NewLight(LightTypePoint), NewLight(LightTypeSpot))
	}
	ApplyAllWithLimits(u, lights, 6, 2)
	assert.Equal(t, int32(6), u.values["numPointLights"])
	assert.Equal(t, int32(2), u.values["numSpotLights"])
	assert.Contains(t, u.values, "pointLights[5].position")
	assert.NotContains(t, u.values, "pointLights[6].position")
}

func TestGLSLSourceDeclaresUniforms(t *testing.T) {
	require.NotEmpty(t, GLSLSource)
	for _, name := range []string{"struct PointLight", "uniform int numPointLights", "calcLights"} {
		assert.True(t, strings.Contains(GLSLSource, name), name)
	}
}
