package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	// ErrNoCamera is returned by Validate for a scene without a camera
	ErrNoCamera = errors.New("scene has no camera")
	// ErrNoAmbientLight is returned by Validate when lights[0] is not the ambient light
	ErrNoAmbientLight = errors.New("first light must be the ambient light")
)

// Primitive is a shape together with the materials it is rendered with.
// Pigments and finishings may be shared between primitives.
type Primitive struct {
	Shape     geometry.Shape // *geometry.Sphere or *geometry.Polyhedron
	Pigment   material.Pigment
	Finishing *material.Finishing
}

// NewPrimitive creates a primitive
func NewPrimitive(shape geometry.Shape, pigment material.Pigment, finishing *material.Finishing) *Primitive {
	return &Primitive{
		Shape:     shape,
		Pigment:   pigment,
		Finishing: finishing,
	}
}

// RayHit is a surface hit together with the primitive that produced it
type RayHit struct {
	geometry.HitRecord
	Primitive *Primitive
}

// Scene contains all the elements needed for rendering.
// It must not be modified once rendering starts; all renderer workers read it
// concurrently without locking.
type Scene struct {
	Camera     *geometry.Camera
	Lights     []lights.Light // Lights[0] is the ambient light, the rest are point lights
	Pigments   []material.Pigment
	Finishings []*material.Finishing
	Primitives []*Primitive
}

// Ambient returns the global ambient light
func (s *Scene) Ambient() *lights.AmbientLight {
	return s.Lights[0].(*lights.AmbientLight)
}

// PointLights returns every light after the ambient one
func (s *Scene) PointLights() []lights.Light {
	return s.Lights[1:]
}

// Hit returns the nearest primitive intersection with t in (tMin, tMax).
// Each hit shrinks the search interval for the remaining primitives.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (RayHit, bool) {
	var closest RayHit
	closestSoFar := tMax
	hitAnything := false

	for _, primitive := range s.Primitives {
		if hit, isHit := primitive.Shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = RayHit{HitRecord: hit, Primitive: primitive}
		}
	}

	return closest, hitAnything
}

// Validate checks the structural invariants the renderer relies on
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return ErrNoCamera
	}
	if len(s.Lights) == 0 {
		return ErrNoAmbientLight
	}
	if _, ok := s.Lights[0].(*lights.AmbientLight); !ok {
		return ErrNoAmbientLight
	}
	for i, light := range s.Lights[1:] {
		if _, ok := light.(*lights.PointLight); !ok {
			return fmt.Errorf("light %d: expected a point light, got %s", i+1, light.Type())
		}
	}
	for i, primitive := range s.Primitives {
		if primitive == nil || primitive.Shape == nil {
			return fmt.Errorf("primitive %d: missing shape", i)
		}
		if primitive.Pigment == nil {
			return fmt.Errorf("primitive %d: missing pigment", i)
		}
		if primitive.Finishing == nil {
			return fmt.Errorf("primitive %d: missing finishing", i)
		}
	}
	return nil
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Primitives)
}

// AddPrimitive appends a primitive, registering its materials if they are new
func (s *Scene) AddPrimitive(shape geometry.Shape, pigment material.Pigment, finishing *material.Finishing) *Primitive {
	if !containsPigment(s.Pigments, pigment) {
		s.Pigments = append(s.Pigments, pigment)
	}
	if !containsFinishing(s.Finishings, finishing) {
		s.Finishings = append(s.Finishings, finishing)
	}
	primitive := NewPrimitive(shape, pigment, finishing)
	s.Primitives = append(s.Primitives, primitive)
	return primitive
}

// AddPointLight adds a point light to the scene
func (s *Scene) AddPointLight(position, color core.Vec3, constant, linear, quadratic float64) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, color, constant, linear, quadratic))
}

func containsPigment(pigments []material.Pigment, pigment material.Pigment) bool {
	for _, p := range pigments {
		if p == pigment {
			return true
		}
	}
	return false
}

func containsFinishing(finishings []*material.Finishing, finishing *material.Finishing) bool {
	for _, f := range finishings {
		if f == finishing {
			return true
		}
	}
	return false
}
