package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Quantize maps a linear channel value to 0..255. The value is clamped to
// [0, 0.999] before gamma correction so that 1.0 lands on 255, not 256.
func Quantize(value, gamma float64) uint8 {
	value = max(0, min(0.999, value))
	if gamma != 1 {
		value = math.Pow(value, 1/gamma)
	}
	return uint8(value * 256)
}

// WritePPM writes the frame as a plain-text (P3) portable pixmap, one pixel
// per line, top row first
func WritePPM(w io.Writer, frame *renderer.Frame, gamma float64) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height); err != nil {
		return fmt.Errorf("while writing PPM header: %w", err)
	}
	for _, p := range frame.Pixels {
		if _, err := fmt.Fprintf(bw, "%d %d %d\n", Quantize(p.X, gamma), Quantize(p.Y, gamma), Quantize(p.Z, gamma)); err != nil {
			return fmt.Errorf("while writing PPM pixels: %w", err)
		}
	}

	return bw.Flush()
}

// ToImage converts the frame to an 8-bit image using the same quantization as WritePPM
func ToImage(frame *renderer.Frame, gamma float64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			p := frame.At(x, y)
			img.SetRGBA(x, y, color.RGBA{
				R: Quantize(p.X, gamma),
				G: Quantize(p.Y, gamma),
				B: Quantize(p.Z, gamma),
				A: 255,
			})
		}
	}
	return img
}

// WritePNG writes the frame as a PNG image
func WritePNG(w io.Writer, frame *renderer.Frame, gamma float64) error {
	if err := png.Encode(w, ToImage(frame, gamma)); err != nil {
		return fmt.Errorf("while encoding PNG: %w", err)
	}
	return nil
}

// WriteFile writes the frame to path, choosing the format from its extension
// (.ppm or .png). Missing parent directories are created.
func WriteFile(path string, frame *renderer.Frame, gamma float64) (err error) {
	var write func(io.Writer, *renderer.Frame, float64) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		write = WritePPM
	case ".png":
		write = WritePNG
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("while creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("while creating output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("while closing output file: %w", closeErr)
		}
	}()

	return write(file, frame, gamma)
}
