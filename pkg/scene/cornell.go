package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCornellScene creates a Cornell box built from thin polyhedral slabs, with a
// mirror sphere and a glass sphere inside and a point light under the ceiling
func NewCornellScene(aspectRatio float64) *Scene {
	s := newEmptyScene(geometry.CameraConfig{
		Eye:         core.NewVec3(0, 2.5, 9), // Outside the open front of the box
		Target:      core.NewVec3(0, 2.5, 0), // Center of the box
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	}, core.NewVec3(0.05, 0.05, 0.05))

	white := material.NewSolidPigment(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewSolidPigment(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewSolidPigment(core.NewVec3(0.12, 0.45, 0.15))
	clear := material.NewSolidPigment(core.NewVec3(1, 1, 1))

	wall := material.NewFinishing(1, 0.9, 0, 1, 0, 0, 1)
	mirror := material.NewFinishing(0, 0.1, 0.5, 100, 0.85, 0, 1)
	glass := material.NewFinishing(0, 0, 0.6, 250, 0.1, 0.9, 1.5)

	// Room interior spans x,z in [-2.5, 2.5] and y in [0, 5]
	const boxSize = 5.0
	const half = boxSize / 2
	const thickness = 0.05

	slab := func(center, size core.Vec3) *geometry.Polyhedron {
		return geometry.NewAxisAlignedBox(center, size)
	}

	floor := slab(core.NewVec3(0, -thickness, 0), core.NewVec3(half, thickness, half))
	ceiling := slab(core.NewVec3(0, boxSize+thickness, 0), core.NewVec3(half, thickness, half))
	backWall := slab(core.NewVec3(0, half, -half-thickness), core.NewVec3(half, half, thickness))
	leftWall := slab(core.NewVec3(-half-thickness, half, 0), core.NewVec3(thickness, half, half))
	rightWall := slab(core.NewVec3(half+thickness, half, 0), core.NewVec3(thickness, half, half))

	s.AddPrimitive(floor, white, wall)
	s.AddPrimitive(ceiling, white, wall)
	s.AddPrimitive(backWall, white, wall)
	s.AddPrimitive(leftWall, red, wall)
	s.AddPrimitive(rightWall, green, wall)

	s.AddPrimitive(mustSphere(core.NewVec3(-1, 1, -1), 1), clear, mirror)
	s.AddPrimitive(mustSphere(core.NewVec3(1.1, 0.8, 0.6), 0.8), clear, glass)

	// Just under the ceiling so the light is not occluded by the slab itself
	s.AddPointLight(core.NewVec3(0, boxSize-0.2, 0), core.NewVec3(1, 1, 1), 1, 0, 0.02)

	return s
}
