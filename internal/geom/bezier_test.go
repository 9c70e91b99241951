package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDeCasteljauEndpoints(t *testing.T) {
	ctrl := []mgl32.Vec2{{-1, 0}, {0, 2}, {1.5, -1}, {2, 1}}
	assert.Equal(t, ctrl[0], DeCasteljau(ctrl, 0))
	assert.Equal(t, ctrl[len(ctrl)-1], DeCasteljau(ctrl, 1))
}

func TestDeCasteljauLineMidpoint(t *testing.T) {
	p := DeCasteljau([]mgl32.Vec2{{0, 0}, {2, 4}}, 0.5)
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, 2, p.Y(), 1e-6)
}

func TestSampleCurveCount(t *testing.T) {
	tests := []struct {
		name    string
		ctrl    int
		quality int
		want    int
	}{
		{"two points", 2, 10, 11},
		{"four points", 4, 20, 61},
		{"single point", 1, 10, 0},
		{"zero quality", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := make([]mgl32.Vec2, tt.ctrl)
			for i := range ctrl {
				ctrl[i] = mgl32.Vec2{float32(i), float32(i % 2)}
			}
			assert.Len(t, SampleCurve(ctrl, tt.quality), tt.want)
		})
	}
}

func TestSampleCurveDistanceMonotonic(t *testing.T) {
	ctrl := []mgl32.Vec2{{0, 0}, {1, 3}, {3, -2}, {4, 0}}
	pts := SampleCurve(ctrl, 25)
	assert.Zero(t, pts[0].Dist)
	for i := 1; i < len(pts); i++ {
		assert.GreaterOrEqual(t, pts[i].Dist, pts[i-1].Dist, "sample %d", i)
	}
	// A curve through spread-out control points cannot have zero length.
	assert.Greater(t, pts[len(pts)-1].Dist, float32(4))
}

func TestSampleCurveInsideHull(t *testing.T) {
	// All control points inside the unit box keeps every sample inside it.
	ctrl := []mgl32.Vec2{{0, 0}, {0.2, 1}, {0.9, 0.1}, {1, 1}}
	for _, p := range SampleCurve(ctrl, 40) {
		assert.True(t, p.Pos.X() >= 0 && p.Pos.X() <= 1, "x out of hull: %v", p.Pos)
		assert.True(t, p.Pos.Y() >= 0 && p.Pos.Y() <= 1, "y out of hull: %v", p.Pos)
	}
}
