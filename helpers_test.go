package anime4k

import (
	"image"
	"image/color"
)

// checkerImage returns a w×h image of 4×4 black and white blocks with a
// diagonal gray stripe, giving every pipeline stage edges to work on.
func checkerImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := color.NRGBA{A: 255}
			if (x/4+y/4)%2 == 0 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			if x == y {
				c = color.NRGBA{R: 120, G: 90, B: 60, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// flatImage returns a w×h image of a single opaque color.
func flatImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
