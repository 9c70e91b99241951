package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DeCasteljau evaluates the bezier curve with the given control polygon at
// parameter t in [0,1] by repeated linear interpolation.
func DeCasteljau(ctrl []mgl32.Vec2, t float32) mgl32.Vec2 {
	pts := append([]mgl32.Vec2(nil), ctrl...)
	for k := len(pts) - 1; k > 0; k-- {
		for i := 0; i < k; i++ {
			pts[i] = pts[i].Mul(1 - t).Add(pts[i+1].Mul(t))
		}
	}
	return pts[0]
}

// CurvePoint is a sampled curve position with its accumulated arc distance
// from the start of the curve. Distance is what the dashed-line shader keys
// its pattern on.
type CurvePoint struct {
	Pos  mgl32.Vec2
	Dist float32
}

// SampleCurve samples (len(ctrl)-1)*quality segments uniformly in parameter
// space. Returns nil for fewer than two control points. The accumulated
// distance of the result is monotonically non-decreasing.
func SampleCurve(ctrl []mgl32.Vec2, quality int) []CurvePoint {
	if len(ctrl) < 2 || quality < 1 {
		return nil
	}
	count := (len(ctrl) - 1) * quality
	out := make([]CurvePoint, 0, count+1)
	for i := 0; i <= count; i++ {
		t := float32(i) / float32(count)
		p := DeCasteljau(ctrl, t)
		var dist float32
		if len(out) > 0 {
			prev := out[len(out)-1]
			dist = prev.Dist + math32.Hypot(p.X()-prev.Pos.X(), p.Y()-prev.Pos.Y())
		}
		out = append(out, CurvePoint{Pos: p, Dist: dist})
	}
	return out
}
