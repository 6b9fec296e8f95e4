package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the linear color seen along ray. eye is the camera
	// position used for view-dependent terms, depth the remaining bounce budget.
	RayColor(ray core.Ray, scn *scene.Scene, eye core.Vec3, depth int) core.Vec3
}
