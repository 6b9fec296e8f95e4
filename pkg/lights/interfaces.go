package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypeAmbient LightType = "ambient"
	LightTypePoint   LightType = "point"
)

// Light interface for scene light sources
type Light interface {
	Type() LightType

	// Emission returns the unattenuated light color
	Emission() core.Vec3
}

// LightSample contains the light arriving at a shading point from a point light
type LightSample struct {
	Point     core.Vec3 // Light position
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light
	Emission  core.Vec3 // Light color scaled by distance attenuation
}
