package imageio

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
)

// channelFiles names the per-channel images written by DumpChannels.
var channelFiles = [4]string{"0-RED.png", "1-GREEN.png", "2-BLUE.png", "3-ALPHA.png"}

// StageDir returns the directory DumpChannels writes a stage into:
// <dir>/<pass>--<stage>.
func StageDir(dir string, pass int, stage string) string {
	return filepath.Join(dir, fmt.Sprintf("%d--%s", pass, stage))
}

// DumpChannels writes img into StageDir(dir, pass, stage) as one opaque
// grayscale PNG per channel plus the unmodified composite 4-ORG.png.
// Channel values are read without premultiplication.
func DumpChannels(dir string, pass int, stage string, img image.Image) error {
	out := StageDir(dir, pass, stage)
	b := img.Bounds()

	var planes [4]*image.Gray
	for i := range planes {
		planes[i] = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			px, py := x-b.Min.X, y-b.Min.Y
			planes[0].SetGray(px, py, color.Gray{Y: c.R})
			planes[1].SetGray(px, py, color.Gray{Y: c.G})
			planes[2].SetGray(px, py, color.Gray{Y: c.B})
			planes[3].SetGray(px, py, color.Gray{Y: c.A})
		}
	}

	for i, plane := range planes {
		if err := Save(filepath.Join(out, channelFiles[i]), plane); err != nil {
			return fmt.Errorf("imageio: dump %s: %w", stage, err)
		}
	}
	if err := Save(filepath.Join(out, "4-ORG.png"), img); err != nil {
		return fmt.Errorf("imageio: dump %s: %w", stage, err)
	}
	return nil
}
