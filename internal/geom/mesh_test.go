package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestTorusCounts(t *testing.T) {
	m := Torus(2, 0.5, 16, 8)
	assert.Len(t, m.Verts, 17*9*VertexStride)
	assert.Len(t, m.Indices, 16*8*6)
	for _, idx := range m.Indices {
		assert.Less(t, int(idx), len(m.Verts)/VertexStride)
	}
}

func TestTorusVerticesOnSurface(t *testing.T) {
	const major, minor = 2, 0.5
	m := Torus(major, minor, 12, 6)
	for i := 0; i < len(m.Verts); i += VertexStride {
		x, y, z := m.Verts[i], m.Verts[i+1], m.Verts[i+2]
		// Distance from the tube center circle equals the minor radius.
		d := math32.Hypot(math32.Hypot(x, z)-major, y)
		assert.InDelta(t, minor, d, 1e-4)

		nx, ny, nz := m.Verts[i+3], m.Verts[i+4], m.Verts[i+5]
		assert.InDelta(t, 1, math32.Sqrt(nx*nx+ny*ny+nz*nz), 1e-4)
	}
}

func TestTorusLODsDecreasing(t *testing.T) {
	lods := TorusLODs(2, 0.5, 32, 16, 4)
	assert.Len(t, lods, 4)
	for l := 1; l < len(lods); l++ {
		assert.Less(t, len(lods[l].Indices), len(lods[l-1].Indices), "level %d", l)
	}
}

func TestLODLevel(t *testing.T) {
	tests := []struct {
		dist float32
		want int
	}{
		{0, 0},
		{4.9, 0},
		{5, 1},
		{12, 2},
		{100, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LODLevel(tt.dist, 5, 4), "dist %v", tt.dist)
	}
}

func TestGridIndices(t *testing.T) {
	idx := GridIndices(3, 4)
	assert.Len(t, idx, 2*3*6)
	for _, i := range idx {
		assert.Less(t, int(i), 12)
	}
	// First cell's triangles reference its four corner vertices only.
	first := idx[:6]
	for _, i := range first {
		assert.Contains(t, []uint32{0, 1, 4, 5}, i)
	}
}

func TestPlaneMeshAndCubeBounds(t *testing.T) {
	p := PlaneMesh(10, 4)
	assert.Len(t, p.Verts, 4*VertexStride)
	assert.Len(t, p.Indices, 6)
	assert.Equal(t, float32(-10), p.Bounds.Min.X())
	assert.Equal(t, float32(10), p.Bounds.Max.Z())

	c := Cube(1.5)
	assert.Len(t, c.Verts, 24*VertexStride)
	assert.Len(t, c.Indices, 36)
	assert.Equal(t, float32(-1.5), c.Bounds.Min.Y())
	assert.Equal(t, float32(1.5), c.Bounds.Max.Y())
}
