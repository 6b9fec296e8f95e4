package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Shape interface for objects that can be hit by rays.
// Hit reports the nearest intersection with t in the open interval (tMin, tMax).
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64) (HitRecord, bool)
}
