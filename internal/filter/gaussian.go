package filter

import (
	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
)

// Gaussian7 blurs channel from of src with the 7-tap Gaussian and stores the
// result in channel to of dst. The horizontal pass writes tmp, the vertical
// pass reads tmp and writes dst; other channels are copied from src.
//
// tmp must differ from both src and dst. dst may be src.
func Gaussian7(pool *parallel.WorkerPool, src, tmp, dst *grid.Grid, from, to grid.Channel) {
	parallel.TransformInto(pool, src, tmp, func(x, y int, p grid.Pixel) grid.Pixel {
		var sum float32
		for k, wgt := range gauss7 {
			sum += float32(src.Channel(x+k-3, y, from)) * wgt
		}
		return p.With(to, unfloat(clampf(sum, 0, 255)))
	})

	parallel.TransformInto(pool, tmp, dst, func(x, y int, p grid.Pixel) grid.Pixel {
		var sum float32
		for k, wgt := range gauss7 {
			sum += float32(tmp.Channel(x, y+k-3, to)) * wgt
		}
		return p.With(to, unfloat(clampf(sum, 0, 255)))
	})
}
