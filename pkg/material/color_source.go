package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SolidPigment provides a uniform color
type SolidPigment struct {
	Color core.Vec3
}

// NewSolidPigment creates a new solid color pigment
func NewSolidPigment(color core.Vec3) *SolidPigment {
	return &SolidPigment{Color: color}
}

// ColorAt returns the solid color regardless of position
func (s *SolidPigment) ColorAt(point core.Vec3) core.Vec3 {
	return s.Color
}
