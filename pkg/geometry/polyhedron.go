package geometry

import (
	"errors"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Polyhedron is a convex solid bounded by the intersection of its faces' half-spaces
type Polyhedron struct {
	Faces []Face
}

// NewPolyhedron creates a polyhedron from an ordered list of faces
func NewPolyhedron(faces []Face) (*Polyhedron, error) {
	if len(faces) == 0 {
		return nil, errors.New("polyhedron needs at least one face")
	}
	return &Polyhedron{Faces: faces}, nil
}

// NewAxisAlignedBox creates a box polyhedron. Size holds half-extents, so a size
// of (1,1,1) creates a 2x2x2 box.
func NewAxisAlignedBox(center, size core.Vec3) *Polyhedron {
	faces := []Face{
		{A: 1, D: -(center.X + size.X)}, // right
		{A: -1, D: center.X - size.X},   // left
		{B: 1, D: -(center.Y + size.Y)}, // top
		{B: -1, D: center.Y - size.Y},   // bottom
		{C: 1, D: -(center.Z + size.Z)}, // front
		{C: -1, D: center.Z - size.Z},   // back
	}
	for i := range faces {
		faces[i] = faces[i].OrientAway(center)
	}
	return &Polyhedron{Faces: faces}
}

// Contains reports whether p lies inside every half-space
func (p *Polyhedron) Contains(point core.Vec3) bool {
	for _, face := range p.Faces {
		if !face.Contains(point) {
			return false
		}
	}
	return true
}

// Hit clips the ray against every half-space, narrowing the entry parameter t0
// and the exit parameter t1. A ray starting inside reports its exit point with
// the normal turned back toward the ray.
func (p *Polyhedron) Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool) {
	t0, t1 := core.Epsilon, core.Infinity
	var n0, n1 core.Vec3

	for _, face := range p.Faces {
		n := face.Normal()
		denom := ray.Direction.Dot(n)
		val := ray.Origin.Dot(n) + face.D

		switch {
		case math.Abs(denom) <= core.Epsilon:
			// Parallel to the plane and outside it: the ray can never enter
			if val > core.Epsilon {
				return HitRecord{}, false
			}
		case denom > core.Epsilon:
			// Leaving this half-space going forward
			if tt := -val / denom; tt < t1 {
				t1 = tt
				n1 = n
			}
		default:
			// Entering this half-space
			if tt := -val / denom; tt > t0 {
				t0 = tt
				n0 = n
			}
		}
	}

	if t0 > t1 || math.IsInf(t1, 1) {
		return HitRecord{}, false
	}

	// Entry bound never tightened: the origin is already inside
	if math.Abs(t0) <= core.Epsilon {
		if t1 <= tMin || t1 >= tMax {
			return HitRecord{}, false
		}
		return HitRecord{
			Point:     ray.At(t1),
			Normal:    n1.Normalize().Negate(),
			T:         t1,
			FrontFace: false,
		}, true
	}

	if t0 <= tMin || t0 >= tMax {
		return HitRecord{}, false
	}
	return HitRecord{
		Point:     ray.At(t0),
		Normal:    n0.Normalize(),
		T:         t0,
		FrontFace: true,
	}, true
}
