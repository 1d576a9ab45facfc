package parallel

import (
	"errors"

	"github.com/gogpu/anime4k/internal/grid"
)

// errAliased reports a TransformInto call whose destination is its source.
var errAliased = errors.New("parallel: source and destination grids alias")

// PixelFunc computes the output pixel at (x, y) from the source pixel p.
//
// Neighborhood reads must go to the source grid the function closes over,
// never to the grid being written.
type PixelFunc func(x, y int, p grid.Pixel) grid.Pixel

// TransformInto applies fn to every pixel of src and writes the results to
// dst. dst must have the size of src and must not be src.
func TransformInto(pool *WorkerPool, src, dst *grid.Grid, fn PixelFunc) {
	grid.MustMatch(src, dst)
	if src == dst {
		panic(errAliased)
	}
	run(pool, src, dst, fn)
}

// TransformInPlace rewrites every pixel of g with fn(x, y, g[x,y]).
//
// Only neighbor-independent functions may be used here (pure per-pixel
// reassignments such as resetting alpha), because other bands may already
// have overwritten any neighbor.
func TransformInPlace(pool *WorkerPool, g *grid.Grid, fn PixelFunc) {
	run(pool, g, g, fn)
}

func run(pool *WorkerPool, src, dst *grid.Grid, fn PixelFunc) {
	width := src.Width()
	bands := SplitRows(src.Height(), pool.Workers()*bandsPerWorker)

	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() {
			for y := b.Y0; y < b.Y1; y++ {
				in := src.Row(y)
				out := dst.Row(y)
				for x := range width {
					o := x * 4
					p := fn(x, y, grid.Pixel{R: in[o], G: in[o+1], B: in[o+2], A: in[o+3]})
					out[o+0] = p.R
					out[o+1] = p.G
					out[o+2] = p.B
					out[o+3] = p.A
				}
			}
		}
	}

	pool.ExecuteAll(work)
}
