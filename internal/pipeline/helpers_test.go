package pipeline

import (
	"testing"

	"github.com/gogpu/anime4k/internal/grid"
)

// noiseGrid fills a w×h grid with a deterministic pseudo-random opaque pattern.
func noiseGrid(t testing.TB, w, h int, seed uint32) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	state := seed
	d := g.Data()
	for i := range d {
		state = state*1664525 + 1013904223
		d[i] = uint8(state >> 24)
		if i%4 == 3 {
			d[i] = 255
		}
	}
	return g
}

// whiteSquare returns a 4×4 black grid with a 2×2 white square at (1,1)-(2,2).
func whiteSquare(t testing.TB) *grid.Grid {
	t.Helper()
	g, err := grid.New(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	fill(g, grid.Pixel{A: 255})
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 2; x++ {
			g.Set(x, y, grid.Pixel{R: 255, G: 255, B: 255, A: 255})
		}
	}
	return g
}

// snapshot records the stage outputs seen by an Observer.
type snapshot struct {
	stages []string
	grids  map[string]*grid.Grid
}

func newSnapshot() *snapshot {
	return &snapshot{grids: make(map[string]*grid.Grid)}
}

func (s *snapshot) observe(pass int, stage string, g *grid.Grid) {
	s.stages = append(s.stages, stage)
	if pass == 0 {
		s.grids[stage] = clone(g)
	}
}

func pipelines() []Pipeline {
	return []Pipeline{V09(), V10RC2()}
}

// fill sets every pixel of g to p.
func fill(g *grid.Grid, p grid.Pixel) {
	for y := range g.Height() {
		for x := range g.Width() {
			g.Set(x, y, p)
		}
	}
}

// clone returns a copy of g.
func clone(g *grid.Grid) *grid.Grid {
	c, _ := grid.New(g.Width(), g.Height())
	copy(c.Data(), g.Data())
	return c
}
