package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CheckerPigment is a 3D checkerboard of cubic cells
type CheckerPigment struct {
	Color1   core.Vec3
	Color2   core.Vec3
	CellSize float64
}

// NewCheckerPigment creates a procedural checkerboard pigment
func NewCheckerPigment(color1, color2 core.Vec3, cellSize float64) (*CheckerPigment, error) {
	if !(cellSize > 0) {
		return nil, fmt.Errorf("checker cell size must be positive, got %g", cellSize)
	}
	return &CheckerPigment{
		Color1:   color1,
		Color2:   color2,
		CellSize: cellSize,
	}, nil
}

// ColorAt picks a color from the parity of the cell containing the point
func (c *CheckerPigment) ColorAt(point core.Vec3) core.Vec3 {
	cellX := int64(math.Floor(point.X / c.CellSize))
	cellY := int64(math.Floor(point.Y / c.CellSize))
	cellZ := int64(math.Floor(point.Z / c.CellSize))

	if (cellX+cellY+cellZ)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}
