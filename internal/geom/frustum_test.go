package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return NewFrustum(proj.Mul4(view))
}

func TestFrustumPlanesNormalized(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		assert.InDelta(t, 1, p.Normal.Len(), 1e-5, "plane %d", i)
	}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	f := testFrustum()
	unit := AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	tests := []struct {
		name   string
		offset mgl32.Vec3
		want   bool
	}{
		{"at origin", mgl32.Vec3{}, true},
		{"behind camera", mgl32.Vec3{0, 0, 50}, false},
		{"beyond far plane", mgl32.Vec3{0, 0, -200}, false},
		{"far left", mgl32.Vec3{-100, 0, 0}, false},
		{"far above", mgl32.Vec3{0, 100, 0}, false},
		{"near edge still visible", mgl32.Vec3{5, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IntersectsAABB(unit.Translate(tt.offset)))
		})
	}
}

func TestFrustumStraddlingBoxVisible(t *testing.T) {
	f := testFrustum()
	// Box pokes through the left plane but overlaps the interior.
	b := AABB{Min: mgl32.Vec3{-50, -1, -1}, Max: mgl32.Vec3{0, 1, 1}}
	assert.True(t, f.IntersectsAABB(b))
}

func TestAABBTranslate(t *testing.T) {
	b := AABB{Min: mgl32.Vec3{-1, -2, -3}, Max: mgl32.Vec3{1, 2, 3}}
	got := b.Translate(mgl32.Vec3{10, 0, -5})
	assert.Equal(t, mgl32.Vec3{9, -2, -8}, got.Min)
	assert.Equal(t, mgl32.Vec3{11, 2, -2}, got.Max)
	assert.Equal(t, mgl32.Vec3{10, 0, -5}, got.Center())
}
