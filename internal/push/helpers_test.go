package push

import (
	"testing"

	"github.com/gogpu/anime4k/internal/grid"
)

// grayGrid builds a grid where every channel of pixel (x, y) is rows[y][x],
// so color and feature coincide.
func grayGrid(t testing.TB, rows [][]uint8) *grid.Grid {
	t.Helper()
	g, err := grid.New(len(rows[0]), len(rows))
	if err != nil {
		t.Fatal(err)
	}
	for y, row := range rows {
		for x, v := range row {
			g.Set(x, y, grid.Pixel{R: v, G: v, B: v, A: v})
		}
	}
	return g
}

// noiseGrid fills a w×h grid with a deterministic pseudo-random pattern.
func noiseGrid(t testing.TB, w, h int, seed uint32) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	state := seed
	for i := range g.Data() {
		state = state*1664525 + 1013904223
		g.Data()[i] = uint8(state >> 24)
	}
	return g
}

func blankLike(t testing.TB, g *grid.Grid) *grid.Grid {
	t.Helper()
	out, err := grid.New(g.Width(), g.Height())
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func fillChannel(g *grid.Grid, c grid.Channel, v uint8) {
	for y := range g.Height() {
		for x := range g.Width() {
			g.Set(x, y, g.Pixel(x, y).With(c, v))
		}
	}
}

// fill sets every pixel of g to p.
func fill(g *grid.Grid, p grid.Pixel) {
	for y := range g.Height() {
		for x := range g.Width() {
			g.Set(x, y, p)
		}
	}
}
