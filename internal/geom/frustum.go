package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Translate returns the box shifted by off.
func (b AABB) Translate(off mgl32.Vec3) AABB {
	return AABB{Min: b.Min.Add(off), Max: b.Max.Add(off)}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Plane is ax+by+cz+d=0 with a unit-length normal.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// Frustum holds the six clip planes extracted from a combined
// projection*view matrix, normals pointing inward.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustum extracts the frustum planes from m (projection * view) using the
// row combination method, then normalizes each plane.
func NewFrustum(m mgl32.Mat4) Frustum {
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{m.At(i, 0), m.At(i, 1), m.At(i, 2), m.At(i, 3)}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	var f Frustum
	for i, v := range []mgl32.Vec4{
		r3.Add(r0), // left
		r3.Sub(r0), // right
		r3.Add(r1), // bottom
		r3.Sub(r1), // top
		r3.Add(r2), // near
		r3.Sub(r2), // far
	} {
		n := mgl32.Vec3{v.X(), v.Y(), v.Z()}
		inv := 1 / math32.Sqrt(n.Dot(n))
		f.Planes[i] = Plane{Normal: n.Mul(inv), D: v.W() * inv}
	}
	return f
}

// IntersectsAABB reports whether the box is at least partially inside the
// frustum, testing the positive vertex of the box against each plane.
func (f Frustum) IntersectsAABB(b AABB) bool {
	for _, p := range f.Planes {
		v := b.Min
		if p.Normal.X() >= 0 {
			v[0] = b.Max.X()
		}
		if p.Normal.Y() >= 0 {
			v[1] = b.Max.Y()
		}
		if p.Normal.Z() >= 0 {
			v[2] = b.Max.Z()
		}
		if p.Normal.Dot(v)+p.D < 0 {
			return false
		}
	}
	return true
}
