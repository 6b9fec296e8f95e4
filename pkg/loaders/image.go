package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrUnsupportedTexture is returned for texture files in an unknown encoding
var ErrUnsupportedTexture = errors.New("unsupported texture format")

// LoadTexture loads a PNG, JPEG, GIF or PPM (P3/P6) image as a texture
func LoadTexture(filename string) (*material.Texture, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat texture file: %w", err)
	}

	reader := bufio.NewReader(file)

	// PPM has no decoder in the image package
	if magic, err := reader.Peek(2); err == nil && isPPMMagic(magic) {
		return decodePPM(reader, info.Size())
	}

	img, _, err := image.Decode(reader)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedTexture, filename)
		}
		return nil, fmt.Errorf("failed to decode texture: %w", err)
	}

	return imageToTexture(img)
}

// imageToTexture converts a decoded image to a texture with channels in [0, 1]
func imageToTexture(img image.Image) (*material.Texture, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return material.NewTexture(width, height, pixels)
}
