package anime4k

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
	"github.com/gogpu/anime4k/internal/pipeline"
	"github.com/gogpu/anime4k/internal/resize"
)

// maxPooledGrids bounds the intermediate grids a Scaler keeps per size.
const maxPooledGrids = 4

// Scaler resizes images and refines them with an Anime4K pipeline.
//
// A Scaler is safe for concurrent use. Each call owns its own worker pool;
// intermediate grids are recycled across calls.
type Scaler struct {
	opts    options
	buffers *grid.Pool
}

// NewScaler creates a Scaler with the given options.
func NewScaler(opts ...Option) *Scaler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Scaler{
		opts:    o,
		buffers: grid.NewPool(maxPooledGrids),
	}
}

// Scale resizes img by factor and refines it with a Scaler built from opts.
func Scale(ctx context.Context, img image.Image, factor float64, opts ...Option) (*image.RGBA, error) {
	return NewScaler(opts...).ScaleFactor(ctx, img, factor)
}

// ScaleFactor resizes img to floor(w*factor)×floor(h*factor) and refines it.
func (s *Scaler) ScaleFactor(ctx context.Context, img image.Image, factor float64) (*image.RGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if !(factor > 0) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: scale factor must be > 0, got %v", ErrInvalidConfiguration, factor)
	}

	b := img.Bounds()
	w, h := resize.ScaledSize(b.Dx(), b.Dy(), factor)
	return s.run(ctx, img, w, h, factor)
}

// ScaleTo resizes img to exactly width×height and refines it. Derived
// strengths use the factor min(width/w, height/h).
func (s *Scaler) ScaleTo(ctx context.Context, img image.Image, width, height int) (*image.RGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size must be positive, got %dx%d", ErrInvalidConfiguration, width, height)
	}

	b := img.Bounds()
	return s.run(ctx, img, width, height, resize.FitFactor(b.Dx(), b.Dy(), width, height))
}

// Push refines img without resizing. Derived strengths use factor 1.
func (s *Scaler) Push(ctx context.Context, img image.Image) (*image.RGBA, error) {
	if err := checkImage(img); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return s.run(ctx, img, b.Dx(), b.Dy(), 1)
}

// Strengths returns the color and gradient strengths the Scaler uses for the
// given scale factor: explicit values clamped to [0, 1], or
// clamp(factor/6, 0, 1) and clamp(factor/2, 0, 1).
func (s *Scaler) Strengths(factor float64) (color, gradient float64) {
	color = clamp01(factor / 6)
	if s.opts.colorSet {
		color = clamp01(s.opts.colorStrength)
	}
	gradient = clamp01(factor / 2)
	if s.opts.gradientSet {
		gradient = clamp01(s.opts.gradientStrength)
	}
	return color, gradient
}

// validate checks the options and the target size.
func (s *Scaler) validate(width, height int) error {
	o := &s.opts
	if o.passes < 1 {
		return fmt.Errorf("%w: passes must be >= 1, got %d", ErrInvalidConfiguration, o.passes)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: target size must be positive, got %dx%d", ErrInvalidConfiguration, width, height)
	}
	if o.colorSet && !(o.colorStrength >= 0) {
		return fmt.Errorf("%w: color strength must be >= 0, got %v", ErrInvalidConfiguration, o.colorStrength)
	}
	if o.gradientSet && !(o.gradientStrength >= 0) {
		return fmt.Errorf("%w: gradient strength must be >= 0, got %v", ErrInvalidConfiguration, o.gradientStrength)
	}
	if o.workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfiguration, o.workers)
	}
	return nil
}

func (s *Scaler) run(ctx context.Context, img image.Image, width, height int, factor float64) (*image.RGBA, error) {
	if err := s.validate(width, height); err != nil {
		return nil, err
	}
	p, err := s.opts.algorithm.newPipeline()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := Logger()
	start := time.Now()

	src, err := grid.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("anime4k: convert input: %w", err)
	}
	resized, err := resize.Bicubic(src, width, height)
	if err != nil {
		return nil, fmt.Errorf("anime4k: resize: %w", err)
	}
	if resized != src {
		s.buffers.Put(src)
	}

	workers := parallel.NewWorkerPool(s.opts.workers)
	defer workers.Close()

	color, gradient := s.Strengths(factor)
	cfg := pipeline.Config{
		ColorStrength:    color,
		GradientStrength: gradient,
		Passes:           s.opts.passes,
		AntiAlias:        s.opts.antiAlias,
		Workers:          workers,
		Buffers:          s.buffers,
		Logger:           log,
	}
	if obs := s.opts.observer; obs != nil {
		cfg.Observer = func(pass int, stage string, g *grid.Grid) {
			obs(pass, stage, g)
		}
	}

	out, err := p.Run(ctx, resized, cfg)
	if err != nil {
		return nil, err
	}
	result := out.ToImage()
	s.buffers.Put(out)

	log.Info("anime4k: image refined",
		"algorithm", p.Name(),
		"src", img.Bounds().Size(),
		"dst", result.Bounds().Size(),
		"factor", factor,
		"passes", s.opts.passes,
		"strengthColor", color,
		"strengthGradient", gradient,
		"workers", workers.Workers(),
		"pooledGrids", s.buffers.Len(),
		"elapsed", time.Since(start))

	return result, nil
}

// checkImage rejects nil and empty images.
func checkImage(img image.Image) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidConfiguration)
	}
	if img.Bounds().Empty() {
		return fmt.Errorf("%w: empty image", ErrInvalidConfiguration)
	}
	return nil
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
