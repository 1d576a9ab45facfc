package pipeline

import (
	"context"

	"github.com/gogpu/anime4k/internal/filter"
	"github.com/gogpu/anime4k/internal/grid"
	"github.com/gogpu/anime4k/internal/push"
)

// Stage names of the v1.0-RC2 pipeline, in execution order. Stages prefixed
// with "data" produce the data grid, the others the image.
const (
	StageDataLuma       = "1_data_luma"
	StageDataLumaGauss  = "2_data_luma-gauss"
	StageDataLines      = "3_data_line-detect"
	StageDataLinesGauss = "4_data_line-gauss"
	StageDataGradient   = "5_data_gradient"
	StagePushThinLines  = "6_img_push-thin-lines"
	StagePushLines      = "7_img_push-lines"
	StageFXAA           = "8_img_fxaa"
	StageResetAlpha     = "9_img_reset-alpha"
)

// v10rc2 computes its features into a separate data grid
// (R luminance, G blurred luminance, B blurred line strength, A gradient)
// that is rebuilt every pass and never written into the image.
type v10rc2 struct{}

// V10RC2 returns the v1.0-RC2 pipeline.
func V10RC2() Pipeline { return v10rc2{} }

func (v10rc2) Name() string { return "v1.0-rc2" }

func (v10rc2) Run(ctx context.Context, img *grid.Grid, cfg Config) (*grid.Grid, error) {
	r, err := newRunner(ctx, "v1.0-rc2", &cfg)
	if err != nil {
		return nil, err
	}
	pool := cfg.Workers

	cur := img
	data := r.alloc(img)
	tmp := r.alloc(img)
	next := r.alloc(img)

	fail := func(err error) (*grid.Grid, error) {
		r.release(cur, data, tmp, next)
		return nil, err
	}

	for pass := range cfg.Passes {
		r.pass = pass

		if err := r.stage(StageDataLuma, data, func() {
			filter.LuminanceInto(pool, cur, data)
		}); err != nil {
			return fail(err)
		}

		if err := r.stage(StageDataLumaGauss, data, func() {
			filter.Gaussian7(pool, data, tmp, data, grid.LumaChannel, grid.LumaBlurChannel)
		}); err != nil {
			return fail(err)
		}

		if err := r.stage(StageDataLines, tmp, func() {
			filter.DetectLines(pool, data, tmp)
		}); err != nil {
			return fail(err)
		}
		data, tmp = tmp, data

		if err := r.stage(StageDataLinesGauss, data, func() {
			filter.Gaussian7(pool, data, tmp, data, grid.LineChannel, grid.LineChannel)
		}); err != nil {
			return fail(err)
		}

		if err := r.stage(StageDataGradient, tmp, func() {
			filter.Gradient(pool, data, tmp, filter.SobelParams{
				From:   grid.LumaChannel,
				To:     grid.GradientChannel,
				Border: filter.ClampBorder,
			})
		}); err != nil {
			return fail(err)
		}
		data, tmp = tmp, data

		if err := r.stage(StagePushThinLines, next, func() {
			push.Apply(pool, cur, next, push.Params{
				Feature:        data,
				FeatureChannel: grid.LumaChannel,
				Lines:          data,
				Strength:       cfg.ColorStrength,
				Policy:         push.LightestWins,
				Rounding:       push.RoundDown,
			})
		}); err != nil {
			return fail(err)
		}
		cur, next = next, cur

		if err := r.stage(StagePushLines, next, func() {
			push.Apply(pool, cur, next, push.Params{
				Feature:        data,
				FeatureChannel: grid.GradientChannel,
				Lines:          data,
				LineScaled:     true,
				Strength:       cfg.GradientStrength,
				Policy:         push.LastWins,
				Rounding:       push.RoundDown,
			})
		}); err != nil {
			return fail(err)
		}
		cur, next = next, cur

		if cfg.AntiAlias {
			if err := r.stage(StageFXAA, next, func() {
				filter.FXAA(pool, cur, data, next, cfg.GradientStrength)
			}); err != nil {
				return fail(err)
			}
			cur, next = next, cur
		}

		if err := r.stage(StageResetAlpha, cur, func() {
			filter.SetChannel(pool, cur, grid.ChannelA, 255)
		}); err != nil {
			return fail(err)
		}
	}

	r.release(data, tmp, next)
	return cur, nil
}
