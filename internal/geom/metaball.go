package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Metaball is a gaussian blob drifting inside the field bounds.
type Metaball struct {
	Pos    mgl32.Vec2
	Dir    mgl32.Vec2
	Radius float32
	Weight float32
}

// Field evaluates a sum of gaussian metaballs over a regular grid and turns
// the samples into a colored point cloud. Vertices are restreamed every
// frame, so the buffer is laid out once and reused.
type Field struct {
	Balls     []Metaball
	Range     float32 // half extent of the square domain
	Rows      int
	Cols      int
	Threshold float32

	verts []float32
}

// NewField spawns count metaballs with randomized position, direction,
// radius and weight inside [-rng, rng].
func NewField(count, rows, cols int, rng float32, rnd *Rand) *Field {
	f := &Field{
		Range:     rng,
		Rows:      rows,
		Cols:      cols,
		Threshold: 0.8,
	}
	for i := 0; i < count; i++ {
		dir := mgl32.Vec2{rnd.RangeF(-1, 1), rnd.RangeF(-1, 1)}
		if dir.Len() < 1e-4 {
			dir = mgl32.Vec2{1, 0}
		}
		f.Balls = append(f.Balls, Metaball{
			Pos:    mgl32.Vec2{rnd.RangeF(-rng, rng), rnd.RangeF(-rng, rng)},
			Dir:    dir.Normalize(),
			Radius: rnd.RangeF(rng/8, rng/3),
			Weight: rnd.RangeF(0.6, 1.2),
		})
	}
	return f
}

// Update advances every ball and reflects its direction on the domain walls.
func (f *Field) Update(dt, speed float32) {
	for i := range f.Balls {
		b := &f.Balls[i]
		b.Pos = b.Pos.Add(b.Dir.Mul(dt * speed))
		for axis := 0; axis < 2; axis++ {
			if b.Pos[axis] > f.Range {
				b.Pos[axis] = f.Range
				b.Dir[axis] = -b.Dir[axis]
			} else if b.Pos[axis] < -f.Range {
				b.Pos[axis] = -f.Range
				b.Dir[axis] = -b.Dir[axis]
			}
		}
	}
}

// Eval sums the gaussian contribution of every ball at (x, y).
func (f *Field) Eval(x, y float32) float32 {
	var sum float32
	for i := range f.Balls {
		b := &f.Balls[i]
		dx := x - b.Pos.X()
		dy := y - b.Pos.Y()
		sum += b.Weight * math32.Exp(-(dx*dx+dy*dy)/(b.Radius*b.Radius))
	}
	return sum
}

// Vertices samples the field on the grid and returns interleaved
// pos2+color3 vertices. Samples are normalized against the frame's min and
// max so the palette stays stable while balls merge and split; samples over
// the threshold flip to red.
func (f *Field) Vertices() []float32 {
	n := f.Rows * f.Cols
	if cap(f.verts) < n*5 {
		f.verts = make([]float32, n*5)
	}
	verts := f.verts[:n*5]

	minV := float32(math32.MaxFloat32)
	maxV := float32(-math32.MaxFloat32)
	idx := 0
	for j := 0; j < f.Rows; j++ {
		y := -f.Range + 2*f.Range*float32(j)/float32(f.Rows-1)
		for i := 0; i < f.Cols; i++ {
			x := -f.Range + 2*f.Range*float32(i)/float32(f.Cols-1)
			v := f.Eval(x, y)
			if v < minV {
				minV = v
			}
			if v > maxV {
				maxV = v
			}
			verts[idx] = x
			verts[idx+1] = y
			verts[idx+2] = v // stashed, rewritten below
			idx += 5
		}
	}

	span := maxV - minV
	if span < 1e-6 {
		span = 1
	}
	for i := 0; i < n; i++ {
		v := verts[i*5+2]
		t := (v - minV) / span
		if v >= f.Threshold {
			verts[i*5+2] = 1
			verts[i*5+3] = 0.1
			verts[i*5+4] = 0.1
		} else {
			verts[i*5+2] = 0.1 + 0.3*t
			verts[i*5+3] = 0.2 + 0.5*t
			verts[i*5+4] = 0.5 + 0.5*t
		}
	}
	return verts
}
