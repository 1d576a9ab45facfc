// Package anime4k sharpens and upscales images with the Anime4K family of
// hand-crafted directional-kernel filters.
//
// # Overview
//
// An image is first resampled to the target size with a bicubic kernel, then
// refined by a fixed sequence of full-frame passes. Each pass extracts
// luminance and edge features and pushes color toward the detected edges.
// Two algorithm generations are available:
//   - V09: luminance and Sobel gradient kept in a scratch channel
//   - V10RC2: a separate data grid with blurred luminance and a line map,
//     which gates the push stages to pixels that lie on lines
//
// # Quick Start
//
//	import "github.com/gogpu/anime4k"
//
//	out, err := anime4k.Scale(ctx, img, 2)
//
//	// Or configure a reusable Scaler:
//	s := anime4k.NewScaler(
//	    anime4k.WithAlgorithm(anime4k.V10RC2),
//	    anime4k.WithPasses(2),
//	)
//	out, err := s.ScaleTo(ctx, img, 3840, 2160)
//
// # Strengths
//
// The color and gradient push strengths are in [0, 1]. When not set
// explicitly they are derived from the scale factor as clamp(f/6, 0, 1) and
// clamp(f/2, 0, 1).
//
// # Concurrency
//
// Stages are split into row bands executed by a work-stealing worker pool;
// every stage completes before the next begins. The output is identical for
// any number of workers. A Scaler is safe for concurrent use.
//
// # Output
//
// The result is always an opaque *image.RGBA. Alpha of the input is not
// preserved: the fourth channel serves as working storage during processing.
package anime4k
