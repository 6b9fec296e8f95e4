package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// AmbientLight is the global light: it lights every surface through the
// ambient term and is the color seen by rays that escape the scene.
// It has no position and never casts shadows.
type AmbientLight struct {
	Color core.Vec3
}

// NewAmbientLight creates the global ambient light
func NewAmbientLight(color core.Vec3) *AmbientLight {
	return &AmbientLight{Color: color}
}

// Type returns the light type
func (a *AmbientLight) Type() LightType {
	return LightTypeAmbient
}

// Emission returns the ambient color
func (a *AmbientLight) Emission() core.Vec3 {
	return a.Color
}
