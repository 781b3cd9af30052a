package material

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend/backendtest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSetter struct {
	ints   map[string]int32
	floats map[string]float32
}

func (r *recordingSetter) SetInt(name string, v int32)     { r.ints[name] = v }
func (r *recordingSetter) SetFloat(name string, v float32) { r.floats[name] = v }

func TestApplyBindsTextures(t *testing.T) {
	rec := backendtest.NewRecorder()
	white := common.Checkerboard(2, 1, [4]byte{255, 255, 255, 255}, [4]byte{255, 255, 255, 255})
	diffuse, err := texture.NewTexture2D(rec, white)
	require.NoError(t, err)
	specular, err := texture.NewTexture2D(rec, white)
	require.NoError(t, err)

	m := NewMaterial(
		WithName("crate"),
		WithDiffuseTexture(diffuse),
		WithSpecularTexture(specular),
		WithShininess(64),
	)
	u := &recordingSetter{ints: map[string]int32{}, floats: map[string]float32{}}
	m.Apply(u, "material")

	assert.Equal(t, "crate", m.Name())
	assert.Equal(t, diffuse.Handle(), rec.BoundTextures[DiffuseSlot])
	assert.Equal(t, specular.Handle(), rec.BoundTextures[SpecularSlot])
	assert.Equal(t, int32(0), u.ints["material.diffuse"])
	assert.Equal(t, int32(1), u.ints["material.specular"])
	assert.Equal(t, float32(64), u.floats["material.shininess"])
}

func TestApplyWithoutTextures(t *testing.T) {
	m := NewMaterial(WithTextureSlots(2, 5))
	u := &recordingSetter{ints: map[string]int32{}, floats: map[string]float32{}}
	m.Apply(u, "mat")

	assert.Equal(t, int32(2), u.ints["mat.diffuse"])
	assert.Equal(t, int32(5), u.ints["mat.specular"])
	assert.Equal(t, float32(32), u.floats["mat.shininess"])
}

func TestGLSLSource(t *testing.T) {
	assert.True(t, strings.Contains(GLSLSource, "uniform Material material;"))
}
