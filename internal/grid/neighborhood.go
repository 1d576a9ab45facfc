package grid

// Neighborhood is the 3×3 block of pixels around a center cell:
//
//	TL TC TR
//	ML MC MR
//	BL BC BR
type Neighborhood struct {
	TL, TC, TR Pixel
	ML, MC, MR Pixel
	BL, BC, BR Pixel
}

// Neighborhood returns the 3×3 block centered on (x, y). Reads outside the
// grid are clamped to the nearest edge pixel.
func (g *Grid) Neighborhood(x, y int) Neighborhood {
	x0, x2 := g.clampX(x-1), g.clampX(x+1)
	y0, y2 := g.clampY(y-1), g.clampY(y+1)
	x1, y1 := g.clampX(x), g.clampY(y)

	return Neighborhood{
		TL: g.at(x0, y0), TC: g.at(x1, y0), TR: g.at(x2, y0),
		ML: g.at(x0, y1), MC: g.at(x1, y1), MR: g.at(x2, y1),
		BL: g.at(x0, y2), BC: g.at(x1, y2), BR: g.at(x2, y2),
	}
}

// at reads an in-range pixel without clamping.
func (g *Grid) at(x, y int) Pixel {
	i := (y*g.width + x) * 4
	d := g.data[i : i+4 : i+4]
	return Pixel{R: d[0], G: d[1], B: d[2], A: d[3]}
}
