package renderer

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int   // Image width in pixels
	Height          int   // Image height in pixels
	SamplesPerPixel int   // Number of jittered rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	NumWorkers      int   // Worker goroutines, 0 means one per CPU
	Seed            int64 // Root seed for the per-row generators
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		Width:           800,
		Height:          600,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate checks that a render with this configuration is well defined.
// Pixel coordinates are divided by (size-1), so each side needs two pixels.
func (c SamplingConfig) Validate() error {
	switch {
	case c.Width < 2 || c.Height < 2:
		return fmt.Errorf("image must be at least 2x2, got %dx%d", c.Width, c.Height)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case c.NumWorkers < 0:
		return fmt.Errorf("worker count must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// AspectRatio returns width / height
func (c SamplingConfig) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Raytracer renders a scene into a frame using a pool of row workers
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards progress output.
func NewRaytracer(scn *scene.Scene, integ integrator.Integrator, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Raytracer{
		scene:      scn,
		integrator: integ,
		config:     config,
		logger:     logger,
	}
}

// Render traces every pixel and returns the averaged frame. The scene is read
// concurrently by all workers and must not change until Render returns.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	tracer := otel.Tracer("go-whitted-raytracer/renderer")
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Raytracer.Render")
	defer span.End()

	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}
	if rt.scene == nil {
		return nil, RenderStats{}, errors.New("no scene to render")
	}
	if err := rt.scene.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid scene: %w", err)
	}

	span.SetAttributes(
		attribute.Int64("width", int64(rt.config.Width)),
		attribute.Int64("height", int64(rt.config.Height)),
		attribute.Int64("samples_per_pixel", int64(rt.config.SamplesPerPixel)),
		attribute.Int64("primitives", int64(rt.scene.GetPrimitiveCount())),
	)

	frame := NewFrame(rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel)
	pool := NewWorkerPool(rt.config.NumWorkers, core.NewSeedSource(rt.config.Seed))

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, depth %d, %d workers\n",
		frame.Width, frame.Height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	start := time.Now()
	totalSamples, err := pool.Run(ctx, frame, rt.renderRow)
	if err != nil {
		span.RecordError(err)
		return nil, RenderStats{}, fmt.Errorf("while rendering: %w", err)
	}

	renderStats := RenderStats{
		TotalPixels:     frame.Width * frame.Height,
		TotalSamples:    totalSamples,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Rows:            frame.Height,
		NumWorkers:      pool.GetNumWorkers(),
		Duration:        time.Since(start),
	}
	renderStats.MeanLuminance, renderStats.StdDevLuminance = luminanceStats(frame)

	rt.logger.Printf("Rendered %d samples in %v (%.0f samples/s)\n",
		renderStats.TotalSamples, renderStats.Duration.Round(time.Millisecond), renderStats.SamplesPerSecond())

	return frame, renderStats, nil
}

// renderRow fills one row of the frame. Rows are counted from the top while the
// camera's v coordinate grows upward.
func (rt *Raytracer) renderRow(ctx context.Context, task RowTask) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	j := rt.config.Height - 1 - task.Row
	samples := 0
	for i := range task.Pixels {
		var ps PixelStats
		rt.samplePixel(i, j, &ps, task.Random)
		task.Pixels[i] = ps.GetColor()
		samples += ps.SampleCount
	}

	recordRow(ctx, samples)
	return samples, nil
}

// samplePixel averages jittered camera rays through pixel (i, j), with j
// counted from the bottom of the image
func (rt *Raytracer) samplePixel(i, j int, ps *PixelStats, random *rand.Rand) {
	camera := rt.scene.Camera
	width := float64(rt.config.Width - 1)
	height := float64(rt.config.Height - 1)

	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		u := (float64(i) + random.Float64()) / width
		v := (float64(j) + random.Float64()) / height
		ray := camera.GetRay(u, v)
		ps.AddSample(rt.integrator.RayColor(ray, rt.scene, camera.Eye, rt.config.MaxDepth))
	}
}
