package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/light"
	"github.com/Carmen-Shannon/oxy-gl/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	g := NewGameObject()
	assert.True(t, g.Enabled())
	assert.Nil(t, g.Model())
	assert.Nil(t, g.Light())
	sx, sy, sz := g.Scale()
	assert.Equal(t, [3]float32{1, 1, 1}, [3]float32{sx, sy, sz})
	assert.Equal(t, mgl32.Ident4(), g.ModelMatrix())
}

func TestModelMatrixOrder(t *testing.T) {
	g := NewGameObject(
		WithPosition(1, 2, 3),
		WithRotation(0, mgl32.DegToRad(90), 0),
		WithScale(2, 2, 2),
	)

	// Scale, then rotate +X onto -Z, then translate.
	p := g.ModelMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	want := mgl32.Vec3{1, 2, 1}
	assert.InDeltaSlice(t, want[:], p[:], 1e-5, "got %v", p)
}

func TestUpdateSpins(t *testing.T) {
	g := NewGameObject(WithRotationSpeed(0, 1, 0.5))
	g.Update(2)
	rx, ry, rz := g.Rotation()
	assert.Equal(t, float32(0), rx)
	assert.Equal(t, float32(2), ry)
	assert.Equal(t, float32(1), rz)

	g.SetRotationSpeed(0, 0, 0)
	g.Update(10)
	_, ry, _ = g.Rotation()
	assert.Equal(t, float32(2), ry)
}

func TestAttachedLightFollows(t *testing.T) {
	l := light.NewLight(light.LightTypePoint)
	g := NewGameObject(WithPosition(1, 1, 1), WithLight(l))
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Position())

	g.SetPosition(4, 5, 6)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, l.Position())

	other := light.NewLight(light.LightTypePoint)
	g.SetLight(other)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, other.Position())
	g.SetLight(nil)
	g.SetPosition(0, 0, 0)
	assert.Equal(t, mgl32.Vec3{4, 5, 6}, other.Position())
}

func TestSetters(t *testing.T) {
	cube := model.Cube()
	g := NewGameObject(WithID(7), WithEnabled(false))
	assert.Equal(t, uint64(7), g.ID())
	assert.False(t, g.Enabled())

	g.SetID(9)
	g.SetEnabled(true)
	g.SetModel(cube)
	g.SetScale(1, 2, 3)
	g.SetRotation(0.1, 0.2, 0.3)

	assert.Equal(t, uint64(9), g.ID())
	assert.True(t, g.Enabled())
	assert.Same(t, cube, g.Model())
	sx, sy, sz := g.Scale()
	assert.Equal(t, [3]float32{1, 2, 3}, [3]float32{sx, sy, sz})
}
