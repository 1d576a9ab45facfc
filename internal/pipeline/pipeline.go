// Package pipeline composes the Anime4K feature extractors and push stages
// into the two algorithm generations, v0.9 and v1.0-RC2.
//
// A Pipeline runs a fixed sequence of full-frame stages per pass. Every stage
// reads one completed grid and writes another, so the end of a stage is a
// full-grid barrier for the next. The context is checked before each stage;
// a cancelled run returns ctx.Err() and no image.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
)

// ErrInvalidPasses is returned when Config.Passes is below 1.
var ErrInvalidPasses = errors.New("pipeline: passes must be >= 1")

// Observer is called after every stage with the grid the stage produced.
// The grid is only valid for the duration of the call and must not be
// modified.
type Observer func(pass int, stage string, g *grid.Grid)

// Config holds the parameters of one run.
type Config struct {
	// ColorStrength and GradientStrength are blend weights in [0, 1].
	ColorStrength    float64
	GradientStrength float64

	// Passes is the number of times the stage sequence is repeated.
	Passes int

	// AntiAlias enables the FXAA stage where the pipeline has one.
	AntiAlias bool

	// Workers runs the per-stage row bands. Nil runs every stage on the
	// calling goroutine.
	Workers *parallel.WorkerPool

	// Buffers recycles intermediate grids. Nil allocates every grid.
	Buffers *grid.Pool

	Observer Observer
	Logger   *slog.Logger
}

// Pipeline is one algorithm generation.
type Pipeline interface {
	// Name returns the algorithm identifier ("v0.9", "v1.0-rc2").
	Name() string

	// Run refines img for cfg.Passes passes and returns the result, which
	// has the dimensions of img. Run takes ownership of img: it may be
	// modified or recycled, and the caller must only use the returned grid.
	Run(ctx context.Context, img *grid.Grid, cfg Config) (*grid.Grid, error)
}

// runner carries the per-run state shared by the stage helpers.
type runner struct {
	ctx  context.Context
	cfg  *Config
	log  *slog.Logger
	name string
	pass int
}

func newRunner(ctx context.Context, name string, cfg *Config) (*runner, error) {
	if cfg.Passes < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPasses, cfg.Passes)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &runner{ctx: ctx, cfg: cfg, log: log, name: name}, nil
}

// stage runs fn unless the context is done, then reports out to the observer.
func (r *runner) stage(name string, out *grid.Grid, fn func()) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	fn()
	r.log.Debug("pipeline: stage done",
		"algorithm", r.name,
		"pass", r.pass,
		"stage", name,
		"elapsed", time.Since(start))

	if r.cfg.Observer != nil {
		r.cfg.Observer(r.pass, name, out)
	}
	return nil
}

// alloc returns a grid the size of like from the buffer pool.
func (r *runner) alloc(like *grid.Grid) *grid.Grid {
	g, err := r.cfg.Buffers.Get(like.Width(), like.Height())
	if err != nil {
		// like already has valid dimensions
		panic(err)
	}
	return g
}

// release hands grids back to the buffer pool.
func (r *runner) release(gs ...*grid.Grid) {
	for _, g := range gs {
		r.cfg.Buffers.Put(g)
	}
}
