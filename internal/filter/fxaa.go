package filter

import (
	"math"

	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
)

// FXAA tuning, in normalized luminance units.
const (
	fxaaReduceMin = 1.0 / 128
	fxaaReduceMul = 1.0 / 8
	fxaaSpanMax   = 8.0
)

// Line gating shared with the v1.0 push stages.
const (
	// LineThreshold is the line strength below which a pixel is left alone.
	LineThreshold = 15

	// LineStrengthScale multiplies the normalized line strength into the
	// effective blend weight.
	LineStrengthScale = 6
)

// LineScaledStrength returns clamp(line/255 * strength * 6, 0, 1).
func LineScaledStrength(line uint8, strength float64) float32 {
	return clampf(float32(float64(line)/255*strength*LineStrengthScale), 0, 1)
}

// FXAA runs one iteration of fast approximate anti-aliasing over img and
// writes the result to dst. data supplies luminance (LumaChannel) for the
// edge direction and line strength (LineChannel) for gating: pixels whose
// line strength is below LineThreshold are copied unchanged, the others are
// blended toward the anti-aliased sample with LineScaledStrength.
func FXAA(pool *parallel.WorkerPool, img, data, dst *grid.Grid, strength float64) {
	grid.MustMatch(img, data)

	sample := func(fx, fy float64) [4]float32 {
		p := img.Pixel(int(math.Floor(fx)), int(math.Floor(fy)))
		return [4]float32{float32(p.R), float32(p.G), float32(p.B), float32(p.A)}
	}
	luma := func(x, y int) float32 {
		return float32(data.Channel(x, y, grid.LumaChannel)) / 255
	}

	parallel.TransformInto(pool, img, dst, func(x, y int, p grid.Pixel) grid.Pixel {
		line := data.Channel(x, y, grid.LineChannel)
		if line < LineThreshold {
			return p
		}

		tl, tr := luma(x-1, y-1), luma(x+1, y-1)
		bl, br := luma(x-1, y+1), luma(x+1, y+1)
		mc := luma(x, y)

		lumaMin := min(mc, tl, tr, bl, br)
		lumaMax := max(mc, tl, tr, bl, br)

		dirX := -((tl + tr) - (bl + br))
		dirY := (tl + bl) - (tr + br)

		reduce := max((tl+tr+bl+br)*(0.25*fxaaReduceMul), fxaaReduceMin)
		rcpDirMin := 1 / (min(abs32(dirX), abs32(dirY)) + reduce)
		dirX = clampf(dirX*rcpDirMin, -fxaaSpanMax, fxaaSpanMax)
		dirY = clampf(dirY*rcpDirMin, -fxaaSpanMax, fxaaSpanMax)

		px, py := float64(x), float64(y)
		dx, dy := float64(dirX), float64(dirY)

		a1 := sample(px-dx/6, py-dy/6)
		a2 := sample(px+dx/6, py+dy/6)
		b1 := sample(px-dx/2, py-dy/2)
		b2 := sample(px+dx/2, py+dy/2)

		var rgbA, rgbB [4]float32
		for i := range 4 {
			rgbA[i] = 0.5 * (a1[i] + a2[i])
			rgbB[i] = 0.5*rgbA[i] + 0.25*(b1[i]+b2[i])
		}

		target := rgbB
		lumaB := (max(rgbB[0], rgbB[1], rgbB[2]) + min(rgbB[0], rgbB[1], rgbB[2])) / 2 / 255
		if lumaB < lumaMin || lumaB > lumaMax {
			target = rgbA
		}

		rs := LineScaledStrength(line, strength)
		return grid.Pixel{
			R: unfloat(float32(p.R)*(1-rs) + target[0]*rs),
			G: unfloat(float32(p.G)*(1-rs) + target[1]*rs),
			B: unfloat(float32(p.B)*(1-rs) + target[2]*rs),
			A: unfloat(float32(p.A)*(1-rs) + target[3]*rs),
		}
	})
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
