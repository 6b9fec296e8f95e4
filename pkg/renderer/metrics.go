package renderer

import (
	"context"

	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
)

var (
	rowsRendered  = stats.Int64("raytracer/rows", "Image rows rendered", stats.UnitDimensionless)
	samplesTraced = stats.Int64("raytracer/samples", "Camera samples traced", stats.UnitDimensionless)

	// RowsRenderedView counts completed row tasks
	RowsRenderedView = &view.View{
		Name:        "raytracer/rows",
		Description: "Counter of image rows that have been rendered",
		Measure:     rowsRendered,
		Aggregation: view.Count(),
	}

	// SamplesTracedView sums camera samples over all rows
	SamplesTracedView = &view.View{
		Name:        "raytracer/samples",
		Description: "Sum of camera samples that have been traced",
		Measure:     samplesTraced,
		Aggregation: view.Sum(),
	}
)

// RegisterViews registers the renderer's metric views with opencensus
func RegisterViews() error {
	return view.Register(RowsRenderedView, SamplesTracedView)
}

// UnregisterViews removes the renderer's metric views
func UnregisterViews() {
	view.Unregister(RowsRenderedView, SamplesTracedView)
}

// recordRow records one finished row and the samples it traced
func recordRow(ctx context.Context, samples int) {
	stats.Record(ctx, rowsRendered.M(1), samplesTraced.M(int64(samples)))
}
