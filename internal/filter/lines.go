package filter

import (
	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
)

// lineBias is subtracted from the luminance ratio before inversion.
const lineBias = 0.05

// LineStrength estimates how much a pixel lies on a thin dark line from its
// luminance l and blurred luminance lg, both in 0–255. The result is in 0–255,
// 0 meaning no line.
func LineStrength(l, lg uint8) uint8 {
	lum := clampf(float32(l)/255, 0.001, 0.999)
	blur := clampf(float32(lg)/255, 0.001, 0.999)

	// Color-divide blend of blur over lum. lum is below 1 after clamping.
	ratio := min(blur/lum, 1)

	line := 1 - clampf(ratio-lineBias, 0, 1)
	return unfloat(line * 255)
}

// DetectLines writes the line strength computed from src's LumaChannel and
// LumaBlurChannel into the LineChannel of dst.
func DetectLines(pool *parallel.WorkerPool, src, dst *grid.Grid) {
	parallel.TransformInto(pool, src, dst, func(_, _ int, p grid.Pixel) grid.Pixel {
		l := p.Get(grid.LumaChannel)
		lg := p.Get(grid.LumaBlurChannel)
		return p.With(grid.LineChannel, LineStrength(l, lg))
	})
}

// SetChannel sets channel c of every pixel of g to v in place.
func SetChannel(pool *parallel.WorkerPool, g *grid.Grid, c grid.Channel, v uint8) {
	parallel.TransformInPlace(pool, g, func(_, _ int, p grid.Pixel) grid.Pixel {
		return p.With(c, v)
	})
}
