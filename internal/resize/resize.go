// Package resize resamples grids to a target size ahead of the refinement
// pipeline.
package resize

import (
	"fmt"
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/anime4k/internal/grid"
)

// view exposes the pixels of g as an *image.NRGBA without copying.
func view(g *grid.Grid) *image.NRGBA {
	return &image.NRGBA{
		Pix:    g.Data(),
		Stride: g.Width() * 4,
		Rect:   image.Rect(0, 0, g.Width(), g.Height()),
	}
}

// Bicubic resamples src to width×height with the Catmull-Rom kernel and
// returns a new grid. When the size is unchanged src itself is returned.
func Bicubic(src *grid.Grid, width, height int) (*grid.Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize: %w: %dx%d", grid.ErrInvalidDimensions, width, height)
	}
	if src.Width() == width && src.Height() == height {
		return src, nil
	}

	dst, err := grid.New(width, height)
	if err != nil {
		return nil, err
	}
	out := view(dst)
	xdraw.CatmullRom.Scale(out, out.Bounds(), view(src), view(src).Bounds(), xdraw.Src, nil)
	return dst, nil
}

// FitFactor returns the uniform scale factor that makes a srcW×srcH image fit
// inside width×height: min(width/srcW, height/srcH).
func FitFactor(srcW, srcH, width, height int) float64 {
	return min(float64(width)/float64(srcW), float64(height)/float64(srcH))
}

// ScaledSize returns floor(w*factor)×floor(h*factor). The result may be
// zero for small factors; callers validate it.
func ScaledSize(w, h int, factor float64) (int, int) {
	return int(math.Floor(float64(w) * factor)), int(math.Floor(float64(h) * factor))
}
