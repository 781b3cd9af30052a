package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0})
	return ExtractFrustum(proj.Mul4(view))
}

func TestExtractFrustumPlanes(t *testing.T) {
	f := testFrustum()

	assert.InDelta(t, 0.1, f.Planes[FrustumNear].SignedDistance(mgl32.Vec3{0, 0, -0.2}), 1e-4)
	assert.InDelta(t, 1.0, f.Planes[FrustumFar].SignedDistance(mgl32.Vec3{0, 0, -99}), 1e-3)
	for i, p := range f.Planes {
		assert.InDelta(t, 1.0, p.Normal.Len(), 1e-5, "plane %d not normalized", i)
	}
}

func TestIntersectsSphere(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name   string
		center mgl32.Vec3
		radius float32
		want   bool
	}{
		{"in front", mgl32.Vec3{0, 0, -5}, 1, true},
		{"behind", mgl32.Vec3{0, 0, 5}, 1, false},
		{"far right", mgl32.Vec3{20, 0, -5}, 1, false},
		{"straddles right plane", mgl32.Vec3{5.5, 0, -5}, 1, true},
		{"past far plane", mgl32.Vec3{0, 0, -110}, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IntersectsSphere(tt.center, tt.radius))
		})
	}
}
