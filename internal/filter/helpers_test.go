package filter

import (
	"testing"

	"github.com/gogpu/anime4k/internal/grid"
)

// Test helper functions shared across filter tests.

// newGrid creates a grid filled with p.
func newGrid(t testing.TB, w, h int, p grid.Pixel) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatalf("grid.New(%d, %d): %v", w, h, err)
	}
	for y := range h {
		for x := range w {
			g.Set(x, y, p)
		}
	}
	return g
}

// channelGrid builds a grid whose channel c holds rows[y][x]; other channels
// are zero.
func channelGrid(t testing.TB, c grid.Channel, rows [][]uint8) *grid.Grid {
	t.Helper()
	g := newGrid(t, len(rows[0]), len(rows), grid.Pixel{})
	for y, row := range rows {
		for x, v := range row {
			g.Set(x, y, grid.Pixel{}.With(c, v))
		}
	}
	return g
}

// channelOf extracts channel c of g as rows.
func channelOf(g *grid.Grid, c grid.Channel) [][]uint8 {
	rows := make([][]uint8, g.Height())
	for y := range rows {
		rows[y] = make([]uint8, g.Width())
		for x := range rows[y] {
			rows[y][x] = g.Channel(x, y, c)
		}
	}
	return rows
}

// blank returns an uninitialized grid the size of g.
func blank(t testing.TB, g *grid.Grid) *grid.Grid {
	t.Helper()
	return newGrid(t, g.Width(), g.Height(), grid.Pixel{})
}
