package pipeline

import (
	"context"

	"github.com/gogpu/anime4k/internal/filter"
	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/push"
)

// Stage names of the v0.9 pipeline, in execution order.
const (
	StageGetLuminance = "1_get-lum"
	StagePushColor    = "2_push-col"
	StageGetGradient  = "3_get-grad"
	StagePushGradient = "4_push-grad"
)

// v09 keeps luminance and then gradient in the fourth channel of the image
// itself. The last stage of each pass resets that channel to 255.
type v09 struct{}

// V09 returns the v0.9 pipeline:
// Luminance, PushColor, Gradient, PushGradient.
func V09() Pipeline { return v09{} }

func (v09) Name() string { return "v0.9" }

func (v09) Run(ctx context.Context, img *grid.Grid, cfg Config) (*grid.Grid, error) {
	r, err := newRunner(ctx, "v0.9", &cfg)
	if err != nil {
		return nil, err
	}
	pool := cfg.Workers

	cur := img
	for pass := range cfg.Passes {
		r.pass = pass

		if err := r.stage(StageGetLuminance, cur, func() {
			filter.LuminanceInPlace(pool, cur, grid.ChannelA)
		}); err != nil {
			r.release(cur)
			return nil, err
		}

		next := r.alloc(cur)
		if err := r.stage(StagePushColor, next, func() {
			push.Apply(pool, cur, next, push.Params{
				FeatureChannel: grid.ChannelA,
				Strength:       cfg.ColorStrength,
				Policy:         push.LightestWins,
				Rounding:       push.RoundNearest,
			})
		}); err != nil {
			r.release(cur, next)
			return nil, err
		}
		cur, next = next, cur

		if err := r.stage(StageGetGradient, next, func() {
			filter.Gradient(pool, cur, next, filter.SobelParams{
				From:   grid.ChannelA,
				To:     grid.ChannelA,
				Border: filter.SkipBorder,
			})
		}); err != nil {
			r.release(cur, next)
			return nil, err
		}
		cur, next = next, cur

		if err := r.stage(StagePushGradient, next, func() {
			push.Apply(pool, cur, next, push.Params{
				FeatureChannel: grid.ChannelA,
				Strength:       cfg.GradientStrength,
				Policy:         push.LastWins,
				Rounding:       push.RoundNearest,
				Opaque:         true,
			})
		}); err != nil {
			r.release(cur, next)
			return nil, err
		}
		r.release(cur)
		cur = next
	}

	return cur, nil
}
