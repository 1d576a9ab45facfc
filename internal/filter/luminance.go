package filter

import (
	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
)

// Luminance returns floor((max(R,G,B) + min(R,G,B)) / 2).
func Luminance(p grid.Pixel) uint8 {
	hi := max(p.R, p.G, p.B)
	lo := min(p.R, p.G, p.B)
	return uint8((uint16(hi) + uint16(lo)) / 2)
}

// LuminanceInPlace stores the luminance of every pixel of g into channel c.
// Only channel c changes, and only from the same pixel's color, so the
// rewrite is safe without a second buffer.
func LuminanceInPlace(pool *parallel.WorkerPool, g *grid.Grid, c grid.Channel) {
	parallel.TransformInPlace(pool, g, func(_, _ int, p grid.Pixel) grid.Pixel {
		return p.With(c, Luminance(p))
	})
}

// LuminanceInto writes the luminance of every pixel of src into all four
// channels of dst. This seeds a data grid.
func LuminanceInto(pool *parallel.WorkerPool, src, dst *grid.Grid) {
	parallel.TransformInto(pool, src, dst, func(_, _ int, p grid.Pixel) grid.Pixel {
		l := Luminance(p)
		return grid.Pixel{R: l, G: l, B: l, A: l}
	})
}
