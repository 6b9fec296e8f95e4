package renderer

import (
	"math"
	"testing"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestPixelStats(t *testing.T) {
	var ps PixelStats
	if !ps.GetColor().IsZero() {
		t.Errorf("Expected black for an unsampled pixel, got %v", ps.GetColor())
	}

	ps.AddSample(core.NewVec3(1, 0, 0))
	ps.AddSample(core.NewVec3(0, 1, 0))

	if ps.SampleCount != 2 {
		t.Errorf("Expected 2 samples, got %d", ps.SampleCount)
	}
	if got := ps.GetColor(); got != core.NewVec3(0.5, 0.5, 0) {
		t.Errorf("Expected average (0.5,0.5,0), got %v", got)
	}
}

func TestLuminanceStats(t *testing.T) {
	frame := NewFrame(2, 2, 1)
	frame.Pixels[1] = core.NewVec3(1, 1, 1)
	frame.Pixels[3] = core.NewVec3(1, 1, 1)

	mean, stdDev := luminanceStats(frame)
	if math.Abs(mean-0.5) > 1e-9 {
		t.Errorf("Expected mean 0.5, got %f", mean)
	}
	// Sample standard deviation of {0, 1, 0, 1}
	if want := math.Sqrt(1.0 / 3.0); math.Abs(stdDev-want) > 1e-9 {
		t.Errorf("Expected std dev %f, got %f", want, stdDev)
	}
}

func TestRenderStats_SamplesPerSecond(t *testing.T) {
	rs := RenderStats{TotalSamples: 500, Duration: 2 * time.Second}
	if got := rs.SamplesPerSecond(); got != 250 {
		t.Errorf("Expected 250 samples/s, got %f", got)
	}
	if got := (RenderStats{TotalSamples: 10}).SamplesPerSecond(); got != 0 {
		t.Errorf("Expected 0 for zero duration, got %f", got)
	}
}

func TestFrame_RowSharesStorage(t *testing.T) {
	frame := NewFrame(3, 2, 1)
	row := frame.Row(1)
	row[2] = core.NewVec3(1, 2, 3)

	if got := frame.At(2, 1); got != core.NewVec3(1, 2, 3) {
		t.Errorf("Expected row write to land in frame, got %v", got)
	}
	if len(row) != 3 {
		t.Errorf("Expected row length 3, got %d", len(row))
	}
}
