package material

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture is a decoded 2D color table
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewTexture creates a new texture, checking that the pixel count matches
func NewTexture(width, height int, pixels []core.Vec3) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture size must be positive, got %dx%d", width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("texture has %d pixels, expected %d", len(pixels), width*height)
	}
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// Lookup samples the texture at (u, v) using nearest-neighbor filtering.
// Coordinates wrap, so the texture tiles the plane. v=0 is the bottom row.
func (t *Texture) Lookup(u, v float64) core.Vec3 {
	// Wrap to [0, 1)
	u -= math.Floor(u)
	v -= math.Floor(v)

	// Flip v for image coordinates where the origin is top-left
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int((1.0-v)*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}

// Projection is a plane equation a·x + b·y + c·z + d used as a texture coordinate
type Projection struct {
	A, B, C, D float64
}

// Apply evaluates the projection at p
func (p Projection) Apply(point core.Vec3) float64 {
	return p.A*point.X + p.B*point.Y + p.C*point.Z + p.D
}

// TexturePigment maps world points into a texture through two plane projections
type TexturePigment struct {
	Texture     *Texture
	ProjectionU Projection // selects the column
	ProjectionV Projection // selects the row
}

// NewTexturePigment creates a texture-projected pigment
func NewTexturePigment(texture *Texture, projectionU, projectionV Projection) *TexturePigment {
	return &TexturePigment{
		Texture:     texture,
		ProjectionU: projectionU,
		ProjectionV: projectionV,
	}
}

// ColorAt projects the point into texture space and samples it
func (tp *TexturePigment) ColorAt(point core.Vec3) core.Vec3 {
	return tp.Texture.Lookup(tp.ProjectionU.Apply(point), tp.ProjectionV.Apply(point))
}
