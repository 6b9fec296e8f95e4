package renderer

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Frame is the averaged linear color of every pixel of a finished render
type Frame struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Pixels          []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewFrame allocates a black frame
func NewFrame(width, height, samplesPerPixel int) *Frame {
	return &Frame{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		Pixels:          make([]core.Vec3, width*height),
	}
}

// At returns the color at column x of row y, counted from the top
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Row returns the pixels of row y as a slice sharing the frame's storage
func (f *Frame) Row(y int) []core.Vec3 {
	return f.Pixels[y*f.Width : (y+1)*f.Width]
}
