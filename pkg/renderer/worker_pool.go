package renderer

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RowTask is one image row handed to a worker. The task owns its pixel slice
// and its random generator; nothing else writes to or draws from them.
type RowTask struct {
	Row    int         // Row index counted from the top of the image
	Pixels []core.Vec3 // Output slice for this row
	Random *rand.Rand  // Generator private to this task
}

// RowFunc renders a single row and returns the number of samples it traced
type RowFunc func(ctx context.Context, task RowTask) (int, error)

// WorkerPool runs row tasks on a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
	seeds      *core.SeedSource
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses every CPU
func NewWorkerPool(numWorkers int, seeds *core.SeedSource) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		seeds:      seeds,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every row of frame and returns the total number of samples.
// Row generators are drawn from the seed source in row order before the row is
// dispatched, so the frame does not depend on scheduling. The first failing row
// cancels the rest and its error is returned.
func (wp *WorkerPool) Run(ctx context.Context, frame *Frame, render RowFunc) (int, error) {
	eg, egCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(wp.numWorkers))

	rowSamples := make([]int, frame.Height)

	for y := 0; y < frame.Height; y++ {
		task := RowTask{
			Row:    y,
			Pixels: frame.Row(y),
			Random: wp.seeds.NewRand(),
		}

		if err := sem.Acquire(egCtx, 1); err != nil {
			// Cancelled by a failed row or by the caller
			break
		}

		eg.Go(func() (err error) {
			defer sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic while rendering row %d: %v", task.Row, r)
				}
			}()

			samples, err := render(egCtx, task)
			if err != nil {
				return fmt.Errorf("while rendering row %d: %w", task.Row, err)
			}
			rowSamples[task.Row] = samples
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		// The caller cancelled before every row was dispatched
		return 0, err
	}

	total := 0
	for _, n := range rowSamples {
		total += n
	}
	return total, nil
}
