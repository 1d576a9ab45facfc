package anime4k

import "image"

// Observer receives the grid produced by every pipeline stage. img is only
// valid during the call; copy it to keep it. Stage names identify the
// algorithm step, for example "2_push-col" or "7_img_push-lines".
type Observer func(pass int, stage string, img image.Image)

// Option configures a Scaler during creation.
// Use functional options to customize Scaler behavior.
//
// Example:
//
//	// Default v0.9, two passes, strengths derived from the scale factor
//	s := anime4k.NewScaler()
//
//	// v1.0-RC2 with fixed strengths
//	s := anime4k.NewScaler(
//	    anime4k.WithAlgorithm(anime4k.V10RC2),
//	    anime4k.WithStrengths(0.3, 1),
//	)
type Option func(*options)

// options holds optional configuration for Scaler creation.
type options struct {
	algorithm Algorithm
	passes    int

	colorStrength    float64
	gradientStrength float64
	colorSet         bool
	gradientSet      bool

	antiAlias bool
	workers   int
	observer  Observer
}

// defaultOptions returns the default Scaler options.
func defaultOptions() options {
	return options{
		algorithm: V09,
		passes:    2,
		workers:   0, // GOMAXPROCS
	}
}

// WithAlgorithm selects the algorithm generation. Default: V09.
func WithAlgorithm(a Algorithm) Option {
	return func(o *options) {
		o.algorithm = a
	}
}

// WithPasses sets how many times the pipeline is applied. Must be >= 1.
// Default: 2.
func WithPasses(n int) Option {
	return func(o *options) {
		o.passes = n
	}
}

// WithStrengths sets both push strengths explicitly. Values must be >= 0
// and are clamped to 1.
func WithStrengths(color, gradient float64) Option {
	return func(o *options) {
		o.colorStrength, o.colorSet = color, true
		o.gradientStrength, o.gradientSet = gradient, true
	}
}

// WithColorStrength sets the color (thin line) push strength, leaving the
// gradient strength derived from the scale factor.
func WithColorStrength(s float64) Option {
	return func(o *options) {
		o.colorStrength, o.colorSet = s, true
	}
}

// WithGradientStrength sets the gradient (line) push strength, leaving the
// color strength derived from the scale factor.
func WithGradientStrength(s float64) Option {
	return func(o *options) {
		o.gradientStrength, o.gradientSet = s, true
	}
}

// WithAntiAliasing enables the experimental FXAA stage. It only affects
// V10RC2 and is off by default.
func WithAntiAliasing(enabled bool) Option {
	return func(o *options) {
		o.antiAlias = enabled
	}
}

// WithWorkers sets the number of worker goroutines per Scale call.
// Zero uses GOMAXPROCS. Default: 0.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithObserver installs a callback invoked after every pipeline stage,
// typically to dump intermediate images for debugging.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observer = fn
	}
}
