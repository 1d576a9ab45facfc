package grid

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"valid", 4, 3, false},
		{"single pixel", 1, 1, false},
		{"zero width", 0, 3, true},
		{"negative height", 3, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDimensions) {
					t.Fatalf("New(%d, %d) error = %v, want ErrInvalidDimensions", tt.w, tt.h, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d) unexpected error: %v", tt.w, tt.h, err)
			}
			if g.Width() != tt.w || g.Height() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", g.Width(), g.Height(), tt.w, tt.h)
			}
			if len(g.Data()) != tt.w*tt.h*4 {
				t.Errorf("len(Data()) = %d, want %d", len(g.Data()), tt.w*tt.h*4)
			}
		})
	}
}

func TestPixelClampsToEdge(t *testing.T) {
	g := mustNew(t, 3, 2)
	for y := range 2 {
		for x := range 3 {
			g.Set(x, y, Pixel{R: uint8(x), G: uint8(y), B: 7, A: 255})
		}
	}

	tests := []struct {
		x, y  int
		wantX int
		wantY int
	}{
		{-1, -1, 0, 0},
		{-5, 1, 0, 1},
		{3, 0, 2, 0},
		{10, 10, 2, 1},
		{1, -3, 1, 0},
		{1, 1, 1, 1},
	}

	for _, tt := range tests {
		got := g.Pixel(tt.x, tt.y)
		want := Pixel{R: uint8(tt.wantX), G: uint8(tt.wantY), B: 7, A: 255}
		if got != want {
			t.Errorf("Pixel(%d, %d) = %+v, want %+v", tt.x, tt.y, got, want)
		}
		if c := g.Channel(tt.x, tt.y, ChannelR); c != uint8(tt.wantX) {
			t.Errorf("Channel(%d, %d, R) = %d, want %d", tt.x, tt.y, c, tt.wantX)
		}
	}
}

func TestSetOutOfRangeIgnored(t *testing.T) {
	g := mustNew(t, 2, 2)
	g.Set(-1, 0, Pixel{R: 1})
	g.Set(0, 2, Pixel{R: 1})

	for i, v := range g.Data() {
		if v != 0 {
			t.Fatalf("Data()[%d] = %d, want 0 after out-of-range Set", i, v)
		}
	}
}

func TestPixelGetWith(t *testing.T) {
	p := Pixel{R: 1, G: 2, B: 3, A: 4}
	for c, want := range map[Channel]uint8{ChannelR: 1, ChannelG: 2, ChannelB: 3, ChannelA: 4} {
		if got := p.Get(c); got != want {
			t.Errorf("Get(%v) = %d, want %d", c, got, want)
		}
		q := p.With(c, 200)
		if q.Get(c) != 200 {
			t.Errorf("With(%v, 200).Get(%v) = %d", c, c, q.Get(c))
		}
	}
	if p != (Pixel{R: 1, G: 2, B: 3, A: 4}) {
		t.Error("With modified the receiver")
	}
}

func TestFromImageRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	for i := range src.Pix {
		src.Pix[i] = uint8(i)
		if i%4 == 3 {
			src.Pix[i] = 255
		}
	}

	g, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(src.Pix, g.Data()); diff != "" {
		t.Errorf("FromImage data mismatch (-want +got):\n%s", diff)
	}
}

func TestFromImageRGBAUnpremultiplies(t *testing.T) {
	premul := image.NewRGBA(image.Rect(0, 0, 4, 3))
	straight := image.NewNRGBA(premul.Bounds())
	colors := []color.NRGBA{
		{R: 200, G: 100, B: 50, A: 128},
		{R: 255, G: 0, B: 90, A: 1},
		{R: 10, G: 240, B: 30, A: 255},
		{R: 70, G: 70, B: 70, A: 0},
		{R: 33, G: 180, B: 255, A: 200},
	}
	for y := range 3 {
		for x := range 4 {
			premul.Set(x, y, colors[(x+y*4)%len(colors)])
			straight.Set(x, y, premul.At(x, y))
		}
	}

	fromRGBA, err := FromImage(premul)
	if err != nil {
		t.Fatal(err)
	}
	fromNRGBA, err := FromImage(straight)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(fromNRGBA.Data(), fromRGBA.Data()); diff != "" {
		t.Errorf("RGBA and NRGBA of the same content differ (-nrgba +rgba):\n%s", diff)
	}

	if got := fromRGBA.Pixel(0, 0); got.A != 128 || got.R < 198 {
		t.Errorf("Pixel(0, 0) = %+v, want unpremultiplied red near 200", got)
	}
}

func TestFromImageSubImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(2, 2, color.NRGBA{R: 9, G: 8, B: 7, A: 6})
	sub := src.SubImage(image.Rect(1, 1, 3, 3))

	g, err := FromImage(sub)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 2 || g.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", g.Width(), g.Height())
	}
	if got := g.Pixel(1, 1); got != (Pixel{R: 9, G: 8, B: 7, A: 6}) {
		t.Errorf("Pixel(1, 1) = %+v, want {9 8 7 6}", got)
	}
}

func TestFromImageGeneric(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 1))
	src.SetGray(1, 0, color.Gray{Y: 128})

	g, err := FromImage(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Pixel(1, 0); got != (Pixel{R: 128, G: 128, B: 128, A: 255}) {
		t.Errorf("Pixel(1, 0) = %+v, want gray 128 opaque", got)
	}
}

func TestToImageRoundTrip(t *testing.T) {
	g := mustNew(t, 2, 2)
	g.Set(1, 0, Pixel{R: 10, G: 20, B: 30, A: 40})

	img := g.ToImage()
	if img.Bounds() != g.Bounds() {
		t.Errorf("bounds = %v, want %v", img.Bounds(), g.Bounds())
	}
	if diff := cmp.Diff(g.Data(), img.Pix); diff != "" {
		t.Errorf("ToImage mismatch (-want +got):\n%s", diff)
	}
}

func TestMustMatchPanics(t *testing.T) {
	a := mustNew(t, 2, 2)
	b := mustNew(t, 3, 2)

	MustMatch(a, mustNew(t, 2, 2))

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrDimensionMismatch) {
			t.Errorf("recover() = %v, want ErrDimensionMismatch", r)
		}
	}()
	MustMatch(a, b)
}

func TestGridImplementsImage(t *testing.T) {
	var _ image.Image = (*Grid)(nil)

	g := mustNew(t, 1, 1)
	g.Set(0, 0, Pixel{R: 1, G: 2, B: 3, A: 4})
	if got := g.At(0, 0); got != (color.NRGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("At(0, 0) = %v", got)
	}
	if got := g.At(5, 5); got != (color.NRGBA{}) {
		t.Errorf("At(5, 5) = %v, want transparent", got)
	}
}

func mustNew(t *testing.T, w, h int) *Grid {
	t.Helper()
	g, err := New(w, h)
	if err != nil {
		t.Fatalf("New(%d, %d): %v", w, h, err)
	}
	return g
}

func TestNeighborhoodClampsAtCorner(t *testing.T) {
	g := mustNew(t, 3, 3)
	for y := range 3 {
		for x := range 3 {
			g.Set(x, y, Pixel{R: uint8(y*3 + x)})
		}
	}

	got := g.Neighborhood(0, 0)
	want := Neighborhood{
		TL: Pixel{R: 0}, TC: Pixel{R: 0}, TR: Pixel{R: 1},
		ML: Pixel{R: 0}, MC: Pixel{R: 0}, MR: Pixel{R: 1},
		BL: Pixel{R: 3}, BC: Pixel{R: 3}, BR: Pixel{R: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Neighborhood(0, 0) mismatch (-want +got):\n%s", diff)
	}

	got = g.Neighborhood(1, 1)
	if got.TL.R != 0 || got.MC.R != 4 || got.BR.R != 8 {
		t.Errorf("Neighborhood(1, 1) = %+v", got)
	}
}
