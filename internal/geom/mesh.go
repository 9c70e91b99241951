package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// MeshData is CPU-side geometry: interleaved pos3+normal3+uv2 vertices,
// an index list and the object-space bounds.
type MeshData struct {
	Verts   []float32
	Indices []uint32
	Bounds  AABB
}

// VertexStride is the float count of one interleaved vertex.
const VertexStride = 8

// Torus generates a torus of the given major and minor radius with majSeg
// rings of minSeg vertices each.
func Torus(major, minor float32, majSeg, minSeg int) MeshData {
	var m MeshData
	for i := 0; i <= majSeg; i++ {
		u := 2 * math32.Pi * float32(i) / float32(majSeg)
		cu, su := math32.Cos(u), math32.Sin(u)
		for j := 0; j <= minSeg; j++ {
			v := 2 * math32.Pi * float32(j) / float32(minSeg)
			cv, sv := math32.Cos(v), math32.Sin(v)

			cx, cz := major*cu, major*su
			x := (major + minor*cv) * cu
			y := minor * sv
			z := (major + minor*cv) * su

			n := mgl32.Vec3{x - cx, y, z - cz}.Normalize()
			m.Verts = append(m.Verts,
				x, y, z,
				n.X(), n.Y(), n.Z(),
				float32(i)/float32(majSeg), float32(j)/float32(minSeg),
			)
		}
	}
	row := minSeg + 1
	for i := 0; i < majSeg; i++ {
		for j := 0; j < minSeg; j++ {
			a := uint32(i*row + j)
			b := uint32((i+1)*row + j)
			m.Indices = append(m.Indices, a, b, a+1, a+1, b, b+1)
		}
	}
	r := major + minor
	m.Bounds = AABB{
		Min: mgl32.Vec3{-r, -minor, -r},
		Max: mgl32.Vec3{r, minor, r},
	}
	return m
}

// TorusLODs builds a detail chain for the torus, halving the segment counts
// per level. Level 0 is the finest.
func TorusLODs(major, minor float32, majSeg, minSeg, levels int) []MeshData {
	out := make([]MeshData, 0, levels)
	for l := 0; l < levels; l++ {
		ma, mi := majSeg>>l, minSeg>>l
		if ma < 4 {
			ma = 4
		}
		if mi < 3 {
			mi = 3
		}
		out = append(out, Torus(major, minor, ma, mi))
	}
	return out
}

// GridIndices triangulates a rows*cols point grid laid out row-major,
// two triangles per cell.
func GridIndices(rows, cols int) []uint32 {
	out := make([]uint32, 0, (rows-1)*(cols-1)*6)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			a := uint32(i*cols + j)
			b := a + uint32(cols)
			out = append(out, a+1, b, a, a+1, b+1, b)
		}
	}
	return out
}

// PlaneMesh generates a flat quad of the given half extent in the XZ plane
// with an up-facing normal and tiled texture coordinates.
func PlaneMesh(half, uvRepeat float32) MeshData {
	return MeshData{
		Verts: []float32{
			-half, 0, -half, 0, 1, 0, 0, 0,
			-half, 0, half, 0, 1, 0, 0, uvRepeat,
			half, 0, half, 0, 1, 0, uvRepeat, uvRepeat,
			half, 0, -half, 0, 1, 0, uvRepeat, 0,
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Bounds: AABB{
			Min: mgl32.Vec3{-half, 0, -half},
			Max: mgl32.Vec3{half, 0, half},
		},
	}
}

// Cube generates a unit-ish cube of the given half extent with per-face
// normals and texture coordinates.
func Cube(half float32) MeshData {
	faces := []struct {
		n mgl32.Vec3
		u mgl32.Vec3
		v mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}
	var m MeshData
	for fi, f := range faces {
		base := uint32(fi * 4)
		for _, c := range [][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := f.n.Mul(half).Add(f.u.Mul(half * c[0])).Add(f.v.Mul(half * c[1]))
			m.Verts = append(m.Verts,
				p.X(), p.Y(), p.Z(),
				f.n.X(), f.n.Y(), f.n.Z(),
				(c[0]+1)/2, (c[1]+1)/2,
			)
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	m.Bounds = AABB{
		Min: mgl32.Vec3{-half, -half, -half},
		Max: mgl32.Vec3{half, half, half},
	}
	return m
}

// LODLevel buckets a camera distance into a detail level, one level every
// step units, clamped to levels-1.
func LODLevel(dist, step float32, levels int) int {
	l := int(dist / step)
	if l >= levels {
		l = levels - 1
	}
	if l < 0 {
		l = 0
	}
	return l
}
