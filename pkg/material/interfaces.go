package material

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pigment provides the base surface color at a world-space point.
// Implementations are immutable and safe for concurrent use.
type Pigment interface {
	ColorAt(point core.Vec3) core.Vec3
}
