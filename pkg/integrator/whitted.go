package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// WhittedIntegrator implements recursive Whitted-style ray tracing: Phong local
// shading with hard shadows, plus perfect mirror reflection and refraction
type WhittedIntegrator struct{}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

// RayColor computes the color for a single ray. It keeps no state between
// calls, so one integrator can be shared by every render worker.
func (wi *WhittedIntegrator) RayColor(ray core.Ray, scn *scene.Scene, eye core.Vec3, depth int) core.Vec3 {
	// Bounce budget exhausted
	if depth < 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := scn.Hit(ray, core.Epsilon, core.Infinity)
	if !isHit {
		// Flat environment lit by the ambient light
		return scn.Ambient().Color.Clamp(0, 1)
	}

	return wi.shade(ray, hit, scn, eye, depth).Clamp(0, 1)
}

// shade sums the local and recursive contributions at a hit
func (wi *WhittedIntegrator) shade(ray core.Ray, hit scene.RayHit, scn *scene.Scene, eye core.Vec3, depth int) core.Vec3 {
	finishing := hit.Primitive.Finishing
	pigment := hit.Primitive.Pigment.ColorAt(hit.Point)

	color := scn.Ambient().Color.MultiplyVec(pigment).Multiply(finishing.Ka)
	color = color.Add(wi.directLighting(hit, pigment, scn, eye))

	direction := ray.Direction.Normalize()

	if depth > 0 && finishing.Kr > 0 {
		reflected := core.Mirror(direction, hit.Normal)
		// Grazing or below the surface
		if reflected.Dot(hit.Normal) > core.Epsilon {
			bounce := core.NewRay(hit.Point, reflected)
			color = color.Add(wi.RayColor(bounce, scn, eye, depth-1).Multiply(finishing.Kr))
		}
	}

	if finishing.Kt > 0 {
		refracted := refractDirection(direction, hit.Normal, hit.FrontFace, finishing.IOR)
		transmitted := core.NewRay(hit.Point, refracted)
		color = color.Add(wi.RayColor(transmitted, scn, eye, depth-1).Multiply(finishing.Kt))
	}

	return color
}

// directLighting accumulates diffuse and specular Phong terms from every
// unoccluded point light. Contributions are summed, not averaged.
func (wi *WhittedIntegrator) directLighting(hit scene.RayHit, pigment core.Vec3, scn *scene.Scene, eye core.Vec3) core.Vec3 {
	finishing := hit.Primitive.Finishing
	viewDir := eye.Subtract(hit.Point).Normalize()

	var total core.Vec3
	for _, light := range scn.PointLights() {
		pointLight, ok := light.(*lights.PointLight)
		if !ok {
			continue
		}

		sample := pointLight.Sample(hit.Point)
		if sample.Distance <= core.Epsilon || wi.occluded(hit, sample, scn) {
			continue
		}

		// Only the diffuse term is cut off below the horizon
		cosTheta := max(sample.Direction.Dot(hit.Normal), 0)
		diffuse := sample.Emission.MultiplyVec(pigment).Multiply(finishing.Kd * cosTheta)
		total = total.Add(diffuse)

		if finishing.Ks > 0 {
			reflected := core.Reflect(sample.Direction, hit.Normal)
			if rv := reflected.Dot(viewDir); rv > 0 {
				total = total.Add(sample.Emission.Multiply(finishing.Ks * math.Pow(rv, finishing.Alpha)))
			}
		}
	}

	return total
}

// occluded reports whether anything lies strictly between the hit and the light
func (wi *WhittedIntegrator) occluded(hit scene.RayHit, sample lights.LightSample, scn *scene.Scene) bool {
	shadowRay := core.NewRay(hit.Point, sample.Direction)
	_, blocked := scn.Hit(shadowRay, core.Epsilon, sample.Distance)
	return blocked
}

// refractDirection bends a unit direction through the surface. Total internal
// reflection falls back to the mirror direction.
func refractDirection(direction, normal core.Vec3, frontFace bool, ior float64) core.Vec3 {
	ratio := ior
	if frontFace {
		ratio = 1.0 / ior
	}
	if refracted, ok := core.Refract(direction, normal, ratio); ok {
		return refracted
	}
	return core.Mirror(direction, normal)
}
