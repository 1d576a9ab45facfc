// Package grid provides the fixed-size RGBA8 pixel buffer that every Anime4K
// stage reads from and writes to.
//
// A Grid never changes its dimensions after creation. Neighborhood reads are
// clamped to the nearest edge pixel (replicate-edge border policy), so stencil
// code can address x-1 or y+3 without bounds checks of its own.
package grid

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Common errors for grid operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")

	// ErrDimensionMismatch reports two grids combined by a stage that do not
	// have the same size. Stages raise it with panic: every stage preserves
	// dimensions, so a mismatch is a programming error.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")
)

// Channel selects one of the four 8-bit channels of a Pixel.
type Channel uint8

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// Channel roles inside a v1.0-RC2 data grid.
const (
	LumaChannel     = ChannelR
	LumaBlurChannel = ChannelG
	LineChannel     = ChannelB
	GradientChannel = ChannelA
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelR:
		return "R"
	case ChannelG:
		return "G"
	case ChannelB:
		return "B"
	case ChannelA:
		return "A"
	default:
		return "Unknown"
	}
}

// Pixel is one grid cell: four independent 8-bit channels.
// The fourth channel is alpha at the API boundary and scratch storage while a
// pipeline runs.
type Pixel struct {
	R, G, B, A uint8
}

// Get returns the value of channel c.
func (p Pixel) Get(c Channel) uint8 {
	switch c {
	case ChannelR:
		return p.R
	case ChannelG:
		return p.G
	case ChannelB:
		return p.B
	default:
		return p.A
	}
}

// With returns a copy of p with channel c set to v.
func (p Pixel) With(c Channel, v uint8) Pixel {
	switch c {
	case ChannelR:
		p.R = v
	case ChannelG:
		p.G = v
	case ChannelB:
		p.B = v
	default:
		p.A = v
	}
	return p
}

// Grid is a width×height buffer of RGBA8 pixels stored row-major,
// 4 bytes per pixel, without row padding.
//
// Grid implements image.Image so snapshots can be handed to encoders directly.
type Grid struct {
	width  int
	height int
	data   []uint8
}

// New creates a zeroed grid with the given dimensions.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}, nil
}

// FromImage copies img into a new grid. Channel values are taken
// non-premultiplied: *image.NRGBA is copied byte for byte, *image.RGBA is
// unpremultiplied the way color.NRGBAModel converts it.
func FromImage(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	g, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	rowBytes := g.width * 4
	switch src := img.(type) {
	case *image.RGBA:
		for y := range g.height {
			start := (y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X-src.Rect.Min.X)*4
			row := g.Row(y)
			copy(row, src.Pix[start:start+rowBytes])
			unpremultiply(row)
		}
	case *image.NRGBA:
		for y := range g.height {
			start := (y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X-src.Rect.Min.X)*4
			copy(g.Row(y), src.Pix[start:start+rowBytes])
		}
	default:
		for y := range g.height {
			for x := range g.width {
				c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				g.Set(x, y, Pixel{R: c.R, G: c.G, B: c.B, A: c.A})
			}
		}
	}
	return g, nil
}

// unpremultiply converts a row of premultiplied RGBA bytes in place.
// Opaque pixels are left as they are.
func unpremultiply(row []uint8) {
	for i := 0; i < len(row); i += 4 {
		a := row[i+3]
		if a == 255 {
			continue
		}
		c := color.NRGBAModel.Convert(color.RGBA{R: row[i], G: row[i+1], B: row[i+2], A: a}).(color.NRGBA)
		row[i], row[i+1], row[i+2] = c.R, c.G, c.B
	}
}

// Width returns the grid width in pixels.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in pixels.
func (g *Grid) Height() int {
	return g.height
}

// Data returns the raw pixel data (RGBA order, 4 bytes per pixel).
func (g *Grid) Data() []uint8 {
	return g.data
}

// Row returns the bytes of row y. y must be in range.
func (g *Grid) Row(y int) []uint8 {
	start := y * g.width * 4
	return g.data[start : start+g.width*4]
}

// SameSize reports whether g and o have identical dimensions.
func (g *Grid) SameSize(o *Grid) bool {
	return g.width == o.width && g.height == o.height
}

// MustMatch panics with ErrDimensionMismatch unless a and b have the same size.
func MustMatch(a, b *Grid) {
	if !a.SameSize(b) {
		panic(fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimensionMismatch, a.width, a.height, b.width, b.height))
	}
}

// clampX and clampY implement the replicate-edge border policy.
func (g *Grid) clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= g.width {
		return g.width - 1
	}
	return x
}

func (g *Grid) clampY(y int) int {
	if y < 0 {
		return 0
	}
	if y >= g.height {
		return g.height - 1
	}
	return y
}

// Pixel returns the pixel at (x, y). Out-of-range coordinates are clamped to
// the nearest edge pixel.
func (g *Grid) Pixel(x, y int) Pixel {
	i := (g.clampY(y)*g.width + g.clampX(x)) * 4
	d := g.data[i : i+4 : i+4]
	return Pixel{R: d[0], G: d[1], B: d[2], A: d[3]}
}

// Channel returns channel c of the pixel at (x, y), with clamped coordinates.
func (g *Grid) Channel(x, y int, c Channel) uint8 {
	return g.data[(g.clampY(y)*g.width+g.clampX(x))*4+int(c)]
}

// Set stores p at (x, y). Coordinates outside the grid are ignored.
func (g *Grid) Set(x, y int, p Pixel) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	i := (y*g.width + x) * 4
	d := g.data[i : i+4 : i+4]
	d[0] = p.R
	d[1] = p.G
	d[2] = p.B
	d[3] = p.A
}

// ToImage copies the grid into a new *image.RGBA.
func (g *Grid) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	copy(img.Pix, g.data)
	return img
}

// At implements the image.Image interface.
func (g *Grid) At(x, y int) color.Color {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return color.NRGBA{}
	}
	p := g.Pixel(x, y)
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}
}

// Bounds implements the image.Image interface.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// ColorModel implements the image.Image interface.
func (g *Grid) ColorModel() color.Model {
	return color.NRGBAModel
}
