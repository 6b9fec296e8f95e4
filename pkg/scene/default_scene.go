package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// newEmptyScene creates a scene with a camera and the mandatory ambient light
func newEmptyScene(cameraConfig geometry.CameraConfig, ambient core.Vec3) *Scene {
	return &Scene{
		Camera:     geometry.NewCamera(cameraConfig),
		Lights:     []lights.Light{lights.NewAmbientLight(ambient)},
		Pigments:   make([]material.Pigment, 0),
		Finishings: make([]*material.Finishing, 0),
		Primitives: make([]*Primitive, 0),
	}
}

// mustSphere creates a sphere from constant built-in scene data
func mustSphere(center core.Vec3, radius float64) *geometry.Sphere {
	sphere, err := geometry.NewSphere(center, radius)
	if err != nil {
		panic(fmt.Sprintf("built-in scene: %v", err))
	}
	return sphere
}

// mustChecker creates a checker pigment from constant built-in scene data
func mustChecker(color1, color2 core.Vec3, cellSize float64) *material.CheckerPigment {
	checker, err := material.NewCheckerPigment(color1, color2, cellSize)
	if err != nil {
		panic(fmt.Sprintf("built-in scene: %v", err))
	}
	return checker
}

// NewSimpleScene creates a single matte sphere lit only by a white ambient light.
// The sphere's center pixel renders to exactly its pigment color and every
// background pixel to white, which makes it the reference end-to-end scene.
func NewSimpleScene(aspectRatio float64) *Scene {
	s := newEmptyScene(geometry.CameraConfig{
		Eye:         core.NewVec3(0, 0, 0),
		Target:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: aspectRatio,
	}, core.NewVec3(1, 1, 1))

	red := material.NewSolidPigment(core.NewVec3(0.8, 0.3, 0.3))
	s.AddPrimitive(mustSphere(core.NewVec3(0, 0, -1), 0.5), red, material.NewMatte(1, 0))

	return s
}

// NewDefaultScene creates a checkered floor with a mirror sphere, a glass sphere
// and a matte cube, lit by two point lights
func NewDefaultScene(aspectRatio float64) *Scene {
	s := newEmptyScene(geometry.CameraConfig{
		Eye:         core.NewVec3(0, 1.25, 2.5), // Slightly above the floor
		Target:      core.NewVec3(0, 0.5, -1),   // Middle sphere
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45,
		AspectRatio: aspectRatio,
		Aperture:    0.01,
	}, core.NewVec3(0.6, 0.7, 0.9))

	// Materials
	floorChecker := mustChecker(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.25), 0.5)
	silver := material.NewSolidPigment(core.NewVec3(0.8, 0.8, 0.8))
	clear := material.NewSolidPigment(core.NewVec3(1, 1, 1))
	terracotta := material.NewSolidPigment(core.NewVec3(0.65, 0.25, 0.2))

	floorFinish := material.NewFinishing(0.2, 0.8, 0.1, 10, 0.1, 0, 1)
	mirror := material.NewFinishing(0.05, 0.2, 0.6, 200, 0.7, 0, 1)
	glass := material.NewFinishing(0, 0.05, 0.8, 300, 0.1, 0.85, 1.5)
	matte := material.NewFinishing(0.2, 0.7, 0.2, 20, 0, 0, 1)

	// Floor slab with its top face at y=0
	floor := geometry.NewAxisAlignedBox(core.NewVec3(0, -0.25, -1), core.NewVec3(6, 0.25, 6))
	s.AddPrimitive(floor, floorChecker, floorFinish)

	s.AddPrimitive(mustSphere(core.NewVec3(0, 0.5, -1), 0.5), silver, mirror)
	s.AddPrimitive(mustSphere(core.NewVec3(1.1, 0.4, -0.6), 0.4), clear, glass)
	s.AddPrimitive(geometry.NewAxisAlignedBox(core.NewVec3(-1.1, 0.35, -0.7), core.NewVec3(0.35, 0.35, 0.35)), terracotta, matte)

	// Key light high on the right, dimmer fill on the left
	s.AddPointLight(core.NewVec3(4, 6, 3), core.NewVec3(1, 0.95, 0.9), 1, 0, 0.005)
	s.AddPointLight(core.NewVec3(-5, 3, 2), core.NewVec3(0.3, 0.3, 0.4), 1, 0.05, 0)

	return s
}
