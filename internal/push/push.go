// Package push implements the directional push kernel shared by every
// Anime4K refinement stage.
//
// Around each pixel the kernel examines eight directions grouped into four
// opposing pairs. A direction matches when its three "light" neighbors all
// carry a larger feature value than both the center and the three opposite
// "dark" neighbors; the pixel is then blended toward the average of the light
// triad. The stages differ only in which grid supplies the feature, how
// multiple matches combine, whether a line map gates the pixel, and how the
// blended value is rounded.
package push

import (
	"math"

	"github.com/gogpu/anime4k/internal/filter"
	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/parallel"
)

// Policy decides how a match combines with earlier matches of the same pixel.
type Policy int

const (
	// LightestWins keeps the candidate with the largest feature value.
	LightestWins Policy = iota

	// LastWins overwrites the result on every match; the last matching pair
	// determines the output.
	LastWins
)

// String returns the policy name.
func (p Policy) String() string {
	switch p {
	case LightestWins:
		return "LightestWins"
	case LastWins:
		return "LastWins"
	default:
		return "Unknown"
	}
}

// Rounding selects how blended channel values are converted back to bytes.
type Rounding int

const (
	// RoundNearest blends with the strength scaled to 0–255,
	// (c*(255-S) + avg*S) / 255, and rounds half up.
	RoundNearest Rounding = iota

	// RoundDown blends with the unit strength, c*(1-s) + avg*s, and
	// truncates toward zero.
	RoundDown
)

// String returns the rounding mode name.
func (r Rounding) String() string {
	switch r {
	case RoundNearest:
		return "RoundNearest"
	case RoundDown:
		return "RoundDown"
	default:
		return "Unknown"
	}
}

// Params configures one push stage.
type Params struct {
	// Feature is the grid that supplies the feature channel. When nil, the
	// image itself is used.
	Feature *grid.Grid

	// FeatureChannel selects the feature within Feature.
	FeatureChannel grid.Channel

	// Lines, when non-nil, gates the stage: pixels whose LineChannel value
	// is below filter.LineThreshold are copied unchanged.
	Lines *grid.Grid

	// LineScaled replaces Strength with filter.LineScaledStrength of the
	// pixel's line value. Requires Lines.
	LineScaled bool

	// Strength is the blend weight in [0, 1].
	Strength float64

	Policy   Policy
	Rounding Rounding

	// Opaque sets the fourth channel of every output pixel to 255.
	Opaque bool
}

// Neighbor positions inside a 3×3 block, row-major.
const (
	tl = iota
	tc
	tr
	ml
	mc
	mr
	bl
	bc
	br
)

// direction is one kernel case: pixels at light are pushed toward when they
// all exceed the center and every pixel at dark.
type direction struct {
	dark, light [3]int
}

// pairs lists the four opposing direction pairs in evaluation order. The
// second direction of a pair is tried only when the first does not match.
var pairs = [4][2]direction{
	{
		{dark: [3]int{br, bc, bl}, light: [3]int{tl, tc, tr}},
		{dark: [3]int{tl, tc, tr}, light: [3]int{br, bc, bl}},
	},
	{
		{dark: [3]int{mc, ml, bc}, light: [3]int{mr, tc, tr}},
		{dark: [3]int{mc, mr, tc}, light: [3]int{bl, ml, bc}},
	},
	{
		{dark: [3]int{ml, tl, bl}, light: [3]int{mr, br, tr}},
		{dark: [3]int{mr, br, tr}, light: [3]int{ml, tl, bl}},
	},
	{
		{dark: [3]int{mc, ml, tc}, light: [3]int{mr, br, bc}},
		{dark: [3]int{mc, mr, bc}, light: [3]int{tc, ml, tl}},
	},
}

// matches reports whether d applies to the feature block f.
func (d *direction) matches(f *[9]uint8) bool {
	maxD := max(f[d.dark[0]], f[d.dark[1]], f[d.dark[2]])
	minL := min(f[d.light[0]], f[d.light[1]], f[d.light[2]])
	return minL > f[mc] && minL > maxD
}

// Apply runs one push stage over img and writes the result to dst.
//
// Each pixel is processed as (R, G, B, feature): its color comes from img and
// its fourth channel from the feature source, so the output's fourth channel
// holds the blended feature unless Opaque is set.
func Apply(pool *parallel.WorkerPool, img, dst *grid.Grid, params Params) {
	feature := params.Feature
	if feature == nil {
		feature = img
	}
	grid.MustMatch(img, feature)
	if params.Lines != nil {
		grid.MustMatch(img, params.Lines)
	}

	fc := params.FeatureChannel
	lines := params.Lines

	parallel.TransformInto(pool, img, dst, func(x, y int, p grid.Pixel) grid.Pixel {
		strength := float32(params.Strength)
		if lines != nil {
			line := lines.Channel(x, y, grid.LineChannel)
			if line < filter.LineThreshold {
				return p
			}
			if params.LineScaled {
				strength = filter.LineScaledStrength(line, params.Strength)
			}
		}

		px, feat := block(img, feature, fc, x, y)
		out := evaluate(&px, &feat, strength, params.Policy, params.Rounding)
		if params.Opaque {
			out.A = 255
		}
		return out
	})
}

// block gathers the 3×3 neighborhood of (x, y) with the feature channel in
// the fourth slot of each pixel.
func block(img, feature *grid.Grid, fc grid.Channel, x, y int) (px [9]grid.Pixel, feat [9]uint8) {
	n := img.Neighborhood(x, y)
	px = [9]grid.Pixel{n.TL, n.TC, n.TR, n.ML, n.MC, n.MR, n.BL, n.BC, n.BR}

	for i := range px {
		feat[i] = feature.Channel(x+i%3-1, y+i/3-1, fc)
		px[i].A = feat[i]
	}
	return px, feat
}

// evaluate walks the four pairs and returns the pushed center pixel.
func evaluate(px *[9]grid.Pixel, feat *[9]uint8, strength float32, policy Policy, rounding Rounding) grid.Pixel {
	result := px[mc]

	for i := range pairs {
		for j := range pairs[i] {
			d := &pairs[i][j]
			if !d.matches(feat) {
				continue
			}

			cand := blend(px[mc], px[d.light[0]], px[d.light[1]], px[d.light[2]], strength, rounding)
			switch policy {
			case LightestWins:
				if cand[3] > float32(result.A) {
					result = toPixel(cand, rounding)
				}
			default:
				result = toPixel(cand, rounding)
			}
			break
		}
	}
	return result
}

// blend pushes each channel of center toward avg(a, b, c) with strength s,
// in the arithmetic that belongs to rounding. Products are converted
// explicitly so they are never fused into the sums.
func blend(center, a, b, c grid.Pixel, s float32, rounding Rounding) [4]float32 {
	scaled := s * 255
	mix := func(cv, av, bv, ccv uint8) float32 {
		avg := (float32(av) + float32(bv) + float32(ccv)) / 3
		if rounding == RoundNearest {
			return (float32(float32(cv)*(255-scaled)) + float32(avg*scaled)) / 255
		}
		return float32(float32(cv)*(1-s)) + float32(avg*s)
	}
	return [4]float32{
		mix(center.R, a.R, b.R, c.R),
		mix(center.G, a.G, b.G, c.G),
		mix(center.B, a.B, b.B, c.B),
		mix(center.A, a.A, b.A, c.A),
	}
}

func toPixel(v [4]float32, rounding Rounding) grid.Pixel {
	return grid.Pixel{
		R: toByte(v[0], rounding),
		G: toByte(v[1], rounding),
		B: toByte(v[2], rounding),
		A: toByte(v[3], rounding),
	}
}

func toByte(v float32, rounding Rounding) uint8 {
	if rounding == RoundNearest {
		v = float32(math.Floor(float64(v) + 0.5))
	}
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
