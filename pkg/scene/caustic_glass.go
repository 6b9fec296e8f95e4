package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// newOctahedron creates the convex solid |x-cx| + |y-cy| + |z-cz| <= radius
func newOctahedron(center core.Vec3, radius float64) *geometry.Polyhedron {
	faces := make([]geometry.Face, 0, 8)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				n := core.NewVec3(sx, sy, sz)
				faces = append(faces, geometry.Face{A: sx, B: sy, C: sz, D: -n.Dot(center) - radius})
			}
		}
	}
	return &geometry.Polyhedron{Faces: faces}
}

// NewGlassScene creates a refraction showcase: a glass sphere, a hollow glass
// shell and a glass octahedron in front of a checkered back wall
func NewGlassScene(aspectRatio float64) *Scene {
	s := newEmptyScene(geometry.CameraConfig{
		Eye:         core.NewVec3(0, 1.5, 5),
		Target:      core.NewVec3(0, 0.8, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	}, core.NewVec3(0.15, 0.15, 0.2))

	wallChecker := mustChecker(core.NewVec3(0.95, 0.85, 0.2), core.NewVec3(0.1, 0.3, 0.7), 0.5)
	floorChecker := mustChecker(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.1, 0.1, 0.1), 0.5)
	clear := material.NewSolidPigment(core.NewVec3(1, 1, 1))
	tinted := material.NewSolidPigment(core.NewVec3(0.7, 0.9, 0.8))

	diffuse := material.NewFinishing(0.4, 0.8, 0, 1, 0, 0, 1)
	glass := material.NewFinishing(0, 0, 0.8, 300, 0.05, 0.95, 1.5)
	diamond := material.NewFinishing(0, 0, 0.9, 500, 0.15, 0.85, 2.4)
	water := material.NewFinishing(0, 0.05, 0.5, 150, 0.05, 0.9, 1.33)

	backWall := geometry.NewAxisAlignedBox(core.NewVec3(0, 3, -3.25), core.NewVec3(8, 4, 0.25))
	floor := geometry.NewAxisAlignedBox(core.NewVec3(0, -0.25, 0), core.NewVec3(8, 0.25, 8))
	s.AddPrimitive(backWall, wallChecker, diffuse)
	s.AddPrimitive(floor, floorChecker, diffuse)

	s.AddPrimitive(mustSphere(core.NewVec3(-1.4, 0.7, 0), 0.7), clear, glass)

	// Hollow shell: a smaller water sphere inside a glass one
	s.AddPrimitive(mustSphere(core.NewVec3(1.4, 0.7, 0), 0.7), clear, glass)
	s.AddPrimitive(mustSphere(core.NewVec3(1.4, 0.7, 0), 0.55), tinted, water)

	s.AddPrimitive(newOctahedron(core.NewVec3(0, 0.6, 0.8), 0.6), clear, diamond)

	s.AddPointLight(core.NewVec3(0, 6, 4), core.NewVec3(1, 1, 1), 1, 0, 0.01)
	s.AddPointLight(core.NewVec3(-4, 2, 3), core.NewVec3(0.4, 0.4, 0.4), 1, 0, 0)

	return s
}
