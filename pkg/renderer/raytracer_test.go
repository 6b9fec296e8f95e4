package renderer

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.opencensus.io/stats/view"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func smallConfig(width, height, samples int) SamplingConfig {
	config := DefaultSamplingConfig()
	config.Width = width
	config.Height = height
	config.SamplesPerPixel = samples
	config.MaxDepth = 5
	return config
}

func TestRender_SimpleSceneReferencePixels(t *testing.T) {
	config := smallConfig(11, 11, 4)
	scn := scene.NewSimpleScene(config.AspectRatio())

	rt := NewRaytracer(scn, integrator.NewWhittedIntegrator(), config, nil)
	frame, stats, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	center := frame.At(5, 5)
	want := core.NewVec3(0.8, 0.3, 0.3)
	if center.Subtract(want).Length() > 1e-9 {
		t.Errorf("Center pixel = %v, want %v", center, want)
	}

	white := core.NewVec3(1, 1, 1)
	for _, corner := range [][2]int{{0, 0}, {10, 0}, {0, 10}, {10, 10}} {
		if got := frame.At(corner[0], corner[1]); got.Subtract(white).Length() > 1e-9 {
			t.Errorf("Corner pixel %v = %v, want background %v", corner, got, white)
		}
	}

	if stats.TotalPixels != 121 || stats.TotalSamples != 121*4 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if frame.SamplesPerPixel != 4 || len(frame.Pixels) != 121 {
		t.Errorf("Unexpected frame shape: %dx%d with %d pixels", frame.Width, frame.Height, len(frame.Pixels))
	}
}

func TestRender_RowZeroIsTop(t *testing.T) {
	// Default scene: floor fills the bottom of the image, sky the top
	config := smallConfig(16, 12, 1)
	scn := scene.NewDefaultScene(config.AspectRatio())

	frame, _, err := NewRaytracer(scn, integrator.NewWhittedIntegrator(), config, nil).Render(context.Background())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	sky := scn.Ambient().Color
	if got := frame.At(0, 0); got.Subtract(sky).Length() > 1e-9 {
		t.Errorf("Top-left pixel = %v, expected sky %v", got, sky)
	}
	if got := frame.At(0, frame.Height-1); got.Subtract(sky).Length() < 1e-6 {
		t.Errorf("Bottom-left pixel %v should show the floor, not the sky", got)
	}
}

func TestRender_IndependentOfWorkerCount(t *testing.T) {
	base := smallConfig(12, 9, 3)
	scn := scene.NewDefaultScene(base.AspectRatio())

	var frames []*Frame
	for _, workers := range []int{1, 3, 8} {
		config := base
		config.NumWorkers = workers
		frame, _, err := NewRaytracer(scn, integrator.NewWhittedIntegrator(), config, nil).Render(context.Background())
		if err != nil {
			t.Fatalf("Render() with %d workers: %v", workers, err)
		}
		frames = append(frames, frame)
	}

	for i := 1; i < len(frames); i++ {
		if diff := cmp.Diff(frames[0], frames[i], cmpopts.EquateApprox(0, 1e-12)); diff != "" {
			t.Errorf("Frame differs between worker counts (-first +other):\n%s", diff)
		}
	}
}

func TestRender_SeedChangesJitter(t *testing.T) {
	config := smallConfig(12, 9, 2)
	scn := scene.NewDefaultScene(config.AspectRatio())

	first, _, err := NewRaytracer(scn, integrator.NewWhittedIntegrator(), config, nil).Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	config.Seed++
	second, _, err := NewRaytracer(scn, integrator.NewWhittedIntegrator(), config, nil).Render(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if cmp.Equal(first.Pixels, second.Pixels) {
		t.Error("Expected different seeds to produce different jitter")
	}
}

// panickingIntegrator fails on every ray
type panickingIntegrator struct{}

func (panickingIntegrator) RayColor(core.Ray, *scene.Scene, core.Vec3, int) core.Vec3 {
	panic("boom")
}

func TestRender_FailsFastOnPanic(t *testing.T) {
	config := smallConfig(4, 4, 1)
	config.NumWorkers = 2
	scn := scene.NewSimpleScene(1)

	frame, _, err := NewRaytracer(scn, panickingIntegrator{}, config, nil).Render(context.Background())
	if err == nil {
		t.Fatal("Expected render to fail")
	}
	if frame != nil {
		t.Error("Expected no frame from a failed render")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Expected panic value in error, got %v", err)
	}
}

func TestRender_CancelledContext(t *testing.T) {
	config := smallConfig(4, 4, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewRaytracer(scene.NewSimpleScene(1), integrator.NewWhittedIntegrator(), config, nil).Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRender_RejectsInvalidInput(t *testing.T) {
	valid := smallConfig(4, 4, 1)

	tests := []struct {
		name   string
		mutate func(*SamplingConfig)
	}{
		{"width below two", func(c *SamplingConfig) { c.Width = 1 }},
		{"height below two", func(c *SamplingConfig) { c.Height = 0 }},
		{"no samples", func(c *SamplingConfig) { c.SamplesPerPixel = 0 }},
		{"negative depth", func(c *SamplingConfig) { c.MaxDepth = -1 }},
		{"negative workers", func(c *SamplingConfig) { c.NumWorkers = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)
			_, _, err := NewRaytracer(scene.NewSimpleScene(1), integrator.NewWhittedIntegrator(), config, nil).Render(context.Background())
			if err == nil {
				t.Error("Expected error")
			}
		})
	}

	broken := scene.NewSimpleScene(1)
	broken.Lights = nil
	_, _, err := NewRaytracer(broken, integrator.NewWhittedIntegrator(), valid, nil).Render(context.Background())
	if !errors.Is(err, scene.ErrNoAmbientLight) {
		t.Errorf("Expected ErrNoAmbientLight, got %v", err)
	}
}

func sumViewValue(t *testing.T, name string) float64 {
	t.Helper()
	rows, err := view.RetrieveData(name)
	if err != nil {
		t.Fatalf("RetrieveData(%q): %v", name, err)
	}
	total := 0.0
	for _, row := range rows {
		switch data := row.Data.(type) {
		case *view.SumData:
			total += data.Value
		case *view.CountData:
			total += float64(data.Value)
		}
	}
	return total
}

func TestRender_RecordsMetrics(t *testing.T) {
	if err := RegisterViews(); err != nil {
		t.Fatalf("RegisterViews() error: %v", err)
	}
	t.Cleanup(UnregisterViews)

	rowsBefore := sumViewValue(t, RowsRenderedView.Name)
	samplesBefore := sumViewValue(t, SamplesTracedView.Name)

	config := smallConfig(5, 3, 2)
	if _, _, err := NewRaytracer(scene.NewSimpleScene(config.AspectRatio()), integrator.NewWhittedIntegrator(), config, nil).Render(context.Background()); err != nil {
		t.Fatal(err)
	}

	if rows := sumViewValue(t, RowsRenderedView.Name) - rowsBefore; rows != 3 {
		t.Errorf("Expected 3 rows recorded, got %v", rows)
	}
	if samples := sumViewValue(t, SamplesTracedView.Name) - samplesBefore; math.Abs(samples-30) > 1e-9 {
		t.Errorf("Expected 30 samples recorded, got %v", samples)
	}
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Printf(format string, args ...interface{}) {
	r.lines = append(r.lines, format)
}

func TestRender_LogsProgress(t *testing.T) {
	logger := &recordingLogger{}
	config := smallConfig(3, 3, 1)
	if _, _, err := NewRaytracer(scene.NewSimpleScene(1), integrator.NewWhittedIntegrator(), config, logger).Render(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(logger.lines) != 2 {
		t.Errorf("Expected start and finish log lines, got %d", len(logger.lines))
	}
}
