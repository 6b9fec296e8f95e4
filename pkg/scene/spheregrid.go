package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts an OKLCH color (lightness 0-1, chroma, hue in degrees)
// to linear RGB clamped to [0, 1]
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cone responses
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b
	lc, mc, sc = lc*lc*lc, mc*mc*mc, sc*sc*sc

	rgb := core.NewVec3(
		+4.0767416621*lc-3.3077115913*mc+0.2309699292*sc,
		-1.2684380046*lc+2.6097574011*mc-0.3413193965*sc,
		-0.0041960863*lc-0.7034186147*mc+1.7076147010*sc,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a 10x10 grid of glossy spheres in rainbow colors
// standing on a checkered floor
func NewSphereGridScene(aspectRatio float64) *Scene {
	s := newEmptyScene(geometry.CameraConfig{
		Eye:         core.NewVec3(4.5, 6, 18),    // Back and above the grid
		Target:      core.NewVec3(4.5, 0.8, 4.5), // Center of the grid
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
		Aperture:    0.02,
	}, core.NewVec3(0.5, 0.7, 1.0))

	floor := geometry.NewAxisAlignedBox(core.NewVec3(4.5, -0.5, 4.5), core.NewVec3(50, 0.5, 50))
	floorChecker := mustChecker(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.35, 0.35, 0.35), 1)
	s.AddPrimitive(floor, floorChecker, material.NewFinishing(0.3, 0.7, 0, 1, 0.15, 0, 1))

	glossy := material.NewFinishing(0.2, 0.5, 0.8, 60, 0.35, 0, 1)

	const gridSize = 10
	const radius = 0.4
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			// Hue sweeps along the diagonal, lightness varies across rows
			hue := float64(i+j) / float64(2*(gridSize-1)) * 360
			lightness := 0.6 + 0.2*float64(j)/float64(gridSize-1)
			pigment := material.NewSolidPigment(oklchToRGB(lightness, 0.15, hue))

			center := core.NewVec3(float64(i), radius, float64(j))
			s.AddPrimitive(mustSphere(center, radius), pigment, glossy)
		}
	}

	s.AddPointLight(core.NewVec3(10, 15, 15), core.NewVec3(1, 1, 1), 1, 0, 0.001)

	return s
}
