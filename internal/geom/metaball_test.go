package geom

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFieldEvalPeakAtCenter(t *testing.T) {
	f := &Field{Balls: []Metaball{{Pos: mgl32.Vec2{1, 2}, Radius: 1, Weight: 1}}}
	assert.InDelta(t, 1, f.Eval(1, 2), 1e-6)
	// Symmetric falloff around the center.
	assert.InDelta(t, f.Eval(1.5, 2), f.Eval(0.5, 2), 1e-6)
	assert.InDelta(t, f.Eval(1, 2.5), f.Eval(1, 1.5), 1e-6)
	assert.Less(t, f.Eval(3, 2), f.Eval(1.1, 2))
}

func TestFieldUpdateBounce(t *testing.T) {
	f := &Field{
		Range: 1,
		Balls: []Metaball{{Pos: mgl32.Vec2{0.99, 0}, Dir: mgl32.Vec2{1, 0}}},
	}
	f.Update(1, 1)
	b := f.Balls[0]
	assert.Equal(t, float32(1), b.Pos.X())
	assert.Equal(t, float32(-1), b.Dir.X())

	f.Update(3, 1)
	b = f.Balls[0]
	assert.Equal(t, float32(-1), b.Pos.X())
	assert.Equal(t, float32(1), b.Dir.X())
}

func TestFieldVertices(t *testing.T) {
	rnd := NewRand(7)
	f := NewField(3, 8, 8, 2, rnd)
	verts := f.Vertices()
	assert.Len(t, verts, 8*8*5)

	// Corners span the full domain.
	assert.Equal(t, float32(-2), verts[0])
	assert.Equal(t, float32(-2), verts[1])
	last := len(verts) - 5
	assert.Equal(t, float32(2), verts[last])
	assert.Equal(t, float32(2), verts[last+1])

	for i := 0; i < len(verts); i += 5 {
		for c := 2; c < 5; c++ {
			assert.GreaterOrEqual(t, verts[i+c], float32(0))
			assert.LessOrEqual(t, verts[i+c], float32(1))
		}
	}
}

func TestNewFieldSpawnsInsideDomain(t *testing.T) {
	rnd := NewRand(42)
	f := NewField(32, 4, 4, 3, rnd)
	assert.Len(t, f.Balls, 32)
	for i, b := range f.Balls {
		assert.LessOrEqual(t, b.Pos.X(), float32(3), "ball %d", i)
		assert.GreaterOrEqual(t, b.Pos.X(), float32(-3), "ball %d", i)
		assert.InDelta(t, 1, b.Dir.Len(), 1e-5, "ball %d", i)
		assert.Greater(t, b.Radius, float32(0), "ball %d", i)
	}
}
