package noise

// Grid is a row-major 2D field of heights.
type Grid struct {
	Width  int
	Height int
	Values []float32
}

// NewGrid allocates a zeroed grid.
func NewGrid(width, height int) Grid {
	return Grid{
		Width:  width,
		Height: height,
		Values: make([]float32, width*height),
	}
}

// At returns the value at column x, row y.
func (g Grid) At(x, y int) float32 {
	return g.Values[y*g.Width+x]
}

// Set stores v at column x, row y.
func (g Grid) Set(x, y int, v float32) {
	g.Values[y*g.Width+x] = v
}

// Range returns the minimum and maximum value in the grid.
func (g Grid) Range() (lo, hi float32) {
	if len(g.Values) == 0 {
		return 0, 0
	}
	lo, hi = g.Values[0], g.Values[0]
	for _, v := range g.Values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
