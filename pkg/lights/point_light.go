package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is a positional light with quadratic distance attenuation
type PointLight struct {
	Position  core.Vec3
	Color     core.Vec3
	Constant  float64 // c0
	Linear    float64 // c1
	Quadratic float64 // c2
}

// NewPointLight creates a point light
func NewPointLight(position, color core.Vec3, constant, linear, quadratic float64) *PointLight {
	return &PointLight{
		Position:  position,
		Color:     color,
		Constant:  constant,
		Linear:    linear,
		Quadratic: quadratic,
	}
}

// Type returns the light type
func (p *PointLight) Type() LightType {
	return LightTypePoint
}

// Emission returns the unattenuated light color
func (p *PointLight) Emission() core.Vec3 {
	return p.Color
}

// Attenuation returns 1 / (c0 + c1·d + c2·d²). A non-positive denominator
// means the light is not attenuated.
func (p *PointLight) Attenuation(distance float64) float64 {
	denominator := p.Constant + p.Linear*distance + p.Quadratic*distance*distance
	if denominator <= 0 {
		return 1.0
	}
	return 1.0 / denominator
}

// Sample returns the direction, distance and attenuated color of this light
// as seen from point
func (p *PointLight) Sample(point core.Vec3) LightSample {
	toLight := p.Position.Subtract(point)
	distance := toLight.Length()

	var direction core.Vec3
	if distance > 0 {
		direction = toLight.Multiply(1.0 / distance)
	}

	return LightSample{
		Point:     p.Position,
		Direction: direction,
		Distance:  distance,
		Emission:  p.Color.Multiply(p.Attenuation(distance)),
	}
}
