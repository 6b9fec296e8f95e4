package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func isPPMMagic(magic []byte) bool {
	return len(magic) >= 2 && magic[0] == 'P' && (magic[1] == '3' || magic[1] == '6')
}

// decodePPM reads an ASCII (P3) or binary (P6) portable pixmap. size is the
// length of the whole file and bounds the raster the header may declare.
func decodePPM(r *bufio.Reader, size int64) (*material.Texture, error) {
	magic, err := ppmToken(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read PPM magic: %w", err)
	}

	header := make([]int, 3) // width, height, max value
	for i, name := range []string{"width", "height", "max value"} {
		tok, err := ppmToken(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read PPM %s: %w", name, err)
		}
		if header[i], err = strconv.Atoi(tok); err != nil || header[i] <= 0 {
			return nil, fmt.Errorf("invalid PPM %s %q", name, tok)
		}
	}
	width, height, maxValue := header[0], header[1], header[2]
	if maxValue > 65535 {
		return nil, fmt.Errorf("invalid PPM max value %d", maxValue)
	}
	// Every sample takes at least one byte in either encoding
	if int64(width) > size || int64(height) > size/(3*int64(width)) {
		return nil, fmt.Errorf("PPM size %dx%d exceeds the %d byte file", width, height, size)
	}

	samples := make([]int, width*height*3)
	switch magic {
	case "P3":
		for i := range samples {
			tok, err := ppmToken(r)
			if err != nil {
				return nil, fmt.Errorf("failed to read PPM sample %d: %w", i, err)
			}
			if samples[i], err = strconv.Atoi(tok); err != nil {
				return nil, fmt.Errorf("invalid PPM sample %q", tok)
			}
		}
	case "P6":
		// ppmToken already consumed the single whitespace byte after the header
		bytesPerSample := 1
		if maxValue > 255 {
			bytesPerSample = 2
		}
		raster := make([]byte, len(samples)*bytesPerSample)
		if _, err := io.ReadFull(r, raster); err != nil {
			return nil, fmt.Errorf("failed to read PPM raster: %w", err)
		}
		for i := range samples {
			if bytesPerSample == 2 {
				samples[i] = int(raster[2*i])<<8 | int(raster[2*i+1])
			} else {
				samples[i] = int(raster[i])
			}
		}
	default:
		return nil, fmt.Errorf("%w: PPM type %q", ErrUnsupportedTexture, magic)
	}

	scale := 1.0 / float64(maxValue)
	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		pixels[i] = core.NewVec3(
			float64(samples[3*i])*scale,
			float64(samples[3*i+1])*scale,
			float64(samples[3*i+2])*scale,
		).Clamp(0, 1)
	}

	return material.NewTexture(width, height, pixels)
}

// ppmToken returns the next whitespace-delimited header token, skipping comments
func ppmToken(r *bufio.Reader) (string, error) {
	var token []byte
	for {
		c, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			return "", err
		}

		switch {
		case c == '#' && len(token) == 0:
			if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
				return "", err
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, c)
		}
	}
}
