package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// HitRecord contains information about a ray-object intersection.
// It is built once by the shape and never mutated afterwards.
type HitRecord struct {
	Point     core.Vec3 // Point of intersection
	Normal    core.Vec3 // Unit surface normal, always facing the incoming ray
	T         float64   // Parameter t along the ray
	FrontFace bool      // Whether ray hit the outward side of the surface
}

// newFaceHit builds a hit record orienting the outward normal against the ray
func newFaceHit(ray core.Ray, t float64, point, outwardNormal core.Vec3) HitRecord {
	frontFace := ray.Direction.Dot(outwardNormal) < 0
	normal := outwardNormal
	if !frontFace {
		normal = outwardNormal.Negate()
	}
	return HitRecord{
		Point:     point,
		Normal:    normal,
		T:         t,
		FrontFace: frontFace,
	}
}
