package core

import "math"

const (
	// Epsilon is the self-intersection and parallelism tolerance used by every
	// intersection routine.
	Epsilon = 1e-4
)

// Infinity is the unbounded ray parameter.
var Infinity = math.Inf(1)

// Ray represents a ray with an origin and direction
type Ray struct {
	Origin    Vec3
	Direction Vec3 // not required to be unit length
}

// NewRay creates a new ray
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
