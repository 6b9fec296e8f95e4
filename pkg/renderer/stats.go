package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	TotalSamples    int           // Total number of samples taken
	SamplesPerPixel int           // Samples taken per pixel
	Rows            int           // Number of row tasks completed
	NumWorkers      int           // Worker pool size
	Duration        time.Duration // Wall time of the render
	MeanLuminance   float64       // Mean pixel luminance
	StdDevLuminance float64       // Standard deviation of pixel luminance
}

// SamplesPerSecond returns the sampling throughput of the render
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB accumulator for final result
	SampleCount int       // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// luminanceStats returns the mean and standard deviation of pixel luminance
func luminanceStats(frame *Frame) (mean, stdDev float64) {
	if len(frame.Pixels) == 0 {
		return 0, 0
	}
	luminance := make([]float64, len(frame.Pixels))
	for i, p := range frame.Pixels {
		luminance[i] = p.Luminance()
	}
	if len(luminance) == 1 {
		return luminance[0], 0
	}
	return stat.MeanStdDev(luminance, nil)
}
