package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CameraConfig contains the parameters for creating a camera
type CameraConfig struct {
	Eye         core.Vec3 // Camera position
	Target      core.Vec3 // Point the camera looks at; also the focus distance
	Up          core.Vec3 // Up direction, must not be parallel to Eye-Target
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
	Aperture    float64   // Lens diameter; stored but primary rays use a pinhole
}

// Camera generates primary rays through a viewport placed at the target distance
type Camera struct {
	Eye    core.Vec3
	Target core.Vec3
	Up     core.Vec3

	U, V, W core.Vec3 // right, up and back basis

	LowerLeftCorner core.Vec3
	Horizontal      core.Vec3
	Vertical        core.Vec3
	LensRadius      float64
}

// NewCamera builds the orthonormal basis and viewport from the configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	halfHeight := math.Tan(theta / 2.0)
	halfWidth := config.AspectRatio * halfHeight

	back := config.Eye.Subtract(config.Target)
	focusDist := back.Length()

	w := back.Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(2 * halfWidth * focusDist)
	vertical := v.Multiply(2 * halfHeight * focusDist)
	lowerLeftCorner := config.Eye.
		Subtract(u.Multiply(halfWidth * focusDist)).
		Subtract(v.Multiply(halfHeight * focusDist)).
		Subtract(w.Multiply(focusDist))

	return &Camera{
		Eye:             config.Eye,
		Target:          config.Target,
		Up:              config.Up,
		U:               u,
		V:               v,
		W:               w,
		LowerLeftCorner: lowerLeftCorner,
		Horizontal:      horizontal,
		Vertical:        vertical,
		LensRadius:      config.Aperture / 2.0,
	}
}

// GetRay generates a ray for viewport coordinates (u, v) where 0 <= u,v <= 1
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.LowerLeftCorner.
		Add(c.Horizontal.Multiply(u)).
		Add(c.Vertical.Multiply(v)).
		Subtract(c.Eye)

	return core.NewRay(c.Eye, direction)
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.W.Negate()
}
