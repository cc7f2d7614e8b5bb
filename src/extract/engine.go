package extract

import (
	"context"
	"image"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/byteKnight2010/spriteToolKit/src/containers/png"
	"github.com/byteKnight2010/spriteToolKit/src/sprite"
	"github.com/byteKnight2010/spriteToolKit/src/utils"
)

const (
	// parallelThreshold: grids at or below this cell count run on the
	// calling goroutine; larger grids go through the worker pool.
	parallelThreshold = 100

	maxWorkers = 16
)

// Engine splits a spritesheet into individually saved frame files with
// cancellation and progress reporting.
type Engine struct {
	// Workers overrides the pool size when > 0.
	Workers int
}

// Run validates the job, creates the output directory and starts the
// extraction in the background. Setup errors are returned synchronously
// with zero partial effects; after that, the returned channel delivers
// Progress events followed by exactly one terminal event and is closed.
//
// Cancellation is cooperative through ctx: it is observed at cell
// boundaries, remaining queued work is abandoned, and a Cancelled event
// is reported instead of Completed.
func (e *Engine) Run(ctx context.Context, src image.Image, job Job) (<-chan Event, error) {
	if err := job.Validate(src); err != nil {
		return nil, err
	}

	b := src.Bounds()
	cols := b.Dx() / job.FrameWidth
	rows := b.Dy() / job.FrameHeight
	if cols*rows == 0 {
		return nil, sprite.ErrFrameTooLarge
	}

	if err := os.MkdirAll(job.OutputDir, 0o700); err != nil {
		return nil, err
	}
	if err := utils.IsWritable(job.OutputDir); err != nil {
		return nil, err
	}

	events := make(chan Event, 16)
	go e.run(ctx, src, job, cols, rows, events)
	return events, nil
}

func (e *Engine) run(ctx context.Context, src image.Image, job Job, cols, rows int, events chan<- Event) {
	defer close(events)

	total := cols * rows
	exec := e.executorFor(total)
	defer exec.close()

	b := src.Bounds()
	results := make([]<-chan cellResult, 0, total)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if ctx.Err() != nil {
				events <- Event{Type: Cancelled}
				return
			}
			r := image.Rect(
				b.Min.X+col*job.FrameWidth,
				b.Min.Y+row*job.FrameHeight,
				b.Min.X+(col+1)*job.FrameWidth,
				b.Min.Y+(row+1)*job.FrameHeight,
			)
			results = append(results, exec.submit(func() cellResult {
				return renderCell(ctx, src, r)
			}))
		}
	}

	examined := 0
	saved := 0
	percent := 0
	for _, ch := range results {
		if ctx.Err() != nil {
			events <- Event{Type: Cancelled}
			return
		}

		res := <-ch
		examined++

		switch {
		case res.err != nil:
			// Per-cell failures count as examined, not saved.
			logrus.WithError(res.err).Warn("frame not saved")
		case res.empty:
		default:
			name := job.Filename(job.StartIndex + saved)
			if err := utils.WriteFileAtomic(filepath.Join(job.OutputDir, name), res.data, 0o600); err != nil {
				logrus.WithError(err).Warnf("failed to save %s", name)
			} else {
				saved++
			}
		}

		if p := examined * 100 / total; p > percent {
			percent = p
			events <- Event{Type: Progress, Percent: p}
		}
	}

	events <- Event{Type: Completed, Saved: saved, OutputDir: job.OutputDir}
}

func (e *Engine) executorFor(total int) executor {
	if total <= parallelThreshold {
		return inlineExecutor{}
	}
	workers := e.Workers
	if workers <= 0 {
		workers = defaultWorkers()
	}
	return newPoolExecutor(workers, total)
}

// renderCell crops one cell, applies the emptiness check and encodes the
// survivors to PNG in memory. A cancelled context short-circuits so
// queued tasks drain cheaply.
func renderCell(ctx context.Context, src image.Image, r image.Rectangle) cellResult {
	if err := ctx.Err(); err != nil {
		return cellResult{err: err}
	}

	cell := sprite.Crop(src, r)
	if sprite.Empty(cell) {
		return cellResult{empty: true}
	}

	data, err := png.Encode(cell)
	if err != nil {
		return cellResult{err: err}
	}
	return cellResult{data: data}
}
