package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrDegenerateFace is returned for a plane whose normal (a,b,c) is zero
var ErrDegenerateFace = errors.New("face normal is zero")

// Face is one bounding half-space a·x + b·y + c·z + d <= 0 of a convex polyhedron.
// The normal (a,b,c) points out of the solid.
type Face struct {
	A, B, C, D float64
}

// NewFace creates a face from plane coefficients
func NewFace(a, b, c, d float64) (Face, error) {
	if a == 0 && b == 0 && c == 0 {
		return Face{}, fmt.Errorf("plane (%g, %g, %g, %g): %w", a, b, c, d, ErrDegenerateFace)
	}
	return Face{A: a, B: b, C: c, D: d}, nil
}

// Normal returns the (not normalized) outward normal
func (f Face) Normal() core.Vec3 {
	return core.NewVec3(f.A, f.B, f.C)
}

// SignedDistance evaluates the plane equation at p. Interior points give values
// <= 0. The value is scaled by the normal's length.
func (f Face) SignedDistance(p core.Vec3) float64 {
	return f.A*p.X + f.B*p.Y + f.C*p.Z + f.D
}

// Contains reports whether p lies inside (or on) this half-space
func (f Face) Contains(p core.Vec3) bool {
	return f.SignedDistance(p) <= core.Epsilon
}

// PointInPlane returns the point of the plane closest to the origin
func (f Face) PointInPlane() core.Vec3 {
	n := f.Normal()
	return n.Multiply(-f.D / n.LengthSquared())
}

// OrientAway flips the plane if needed so that interior has non-positive signed
// distance, making the normal point away from it.
func (f Face) OrientAway(interior core.Vec3) Face {
	if f.SignedDistance(interior) > 0 {
		return Face{A: -f.A, B: -f.B, C: -f.C, D: -f.D}
	}
	return f
}
