package filter

import (
	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
)

// Border selects how Sobel treats the outermost rows and columns.
type Border int

const (
	// SkipBorder leaves pixels on the first/last row or column unchanged.
	SkipBorder Border = iota

	// ClampBorder computes every pixel, reading clamped neighbors at the edge.
	ClampBorder
)

// String returns the border policy name.
func (b Border) String() string {
	switch b {
	case SkipBorder:
		return "SkipBorder"
	case ClampBorder:
		return "ClampBorder"
	default:
		return "Unknown"
	}
}

// SobelParams configures a gradient extraction.
type SobelParams struct {
	From   grid.Channel // channel the operator samples
	To     grid.Channel // channel receiving 255 - magnitude
	Border Border
}

// Gradient writes the inverted Sobel magnitude of src's From channel into
// the To channel of dst: floor(255 - clamp(sqrt(dx²+dy²), 0, 255)).
// All other channels are copied from src.
func Gradient(pool *parallel.WorkerPool, src, dst *grid.Grid, params SobelParams) {
	w, h := src.Width(), src.Height()
	from, to := params.From, params.To
	skip := params.Border == SkipBorder

	parallel.TransformInto(pool, src, dst, func(x, y int, p grid.Pixel) grid.Pixel {
		if skip && (x == 0 || y == 0 || x == w-1 || y == h-1) {
			return p
		}

		var s [3][3]float32
		for r := range 3 {
			for c := range 3 {
				s[r][c] = float32(src.Channel(x+c-1, y+r-1, from))
			}
		}

		dx := convolve3(&sobelX, &s)
		dy := convolve3(&sobelY, &s)
		return p.With(to, unfloat(255-clampf(hypot(dx, dy), 0, 255)))
	})
}
