// Package filter provides the feature extractors of the Anime4K pipelines.
//
// Every extractor reads one source grid and writes one destination grid, so a
// stage never observes its own partial output:
//   - Luminance ((max+min)/2 of RGB) into a chosen channel
//   - Sobel gradient magnitude, inverted (low value = strong edge)
//   - Separable 7-tap Gaussian blur of one channel
//   - Line detection from luminance and blurred luminance
//   - One iteration of fast FXAA gated by line strength
//
// Neighborhood reads use the replicate-edge border policy of the grid
// package. Extractors run row bands on a parallel.WorkerPool; a nil pool
// processes the grid on the calling goroutine.
package filter
