package core

import "forest-ca/internal/errx"

// Grid stores a W×H field of cells in row-major order (y*W + x).
//
// y = 0 is the ground row; renderers flip it to the bottom of the image.
type Grid struct {
	W, H  int
	cells []Cell
}

// NewGrid allocates a grid with every cell at the Cell defaults.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, errx.ErrInvalidConfig.Withf("grid dimensions must be positive").
			With("width", w).With("height", h)
	}
	cells := make([]Cell, w*h)
	for i := range cells {
		cells[i] = NewCell()
	}
	return &Grid{W: w, H: h, cells: cells}, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Cells exposes the backing slice so hot loops can avoid bounds checks.
func (g *Grid) Cells() []Cell { return g.cells }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Get returns the cell at (x, y).
func (g *Grid) Get(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, g.boundsErr(x, y)
	}
	return g.cells[g.Index(x, y)], nil
}

// Set overwrites the cell at (x, y).
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return g.boundsErr(x, y)
	}
	g.cells[g.Index(x, y)] = c
	return nil
}

// Count returns how many cells hold material m.
func (g *Grid) Count(m Material) int {
	n := 0
	for _, c := range g.cells {
		if c.Material == m {
			n++
		}
	}
	return n
}

// CountState returns how many cells are in state s.
func (g *Grid) CountState(s State) int {
	n := 0
	for _, c := range g.cells {
		if c.State == s {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	return &Grid{W: g.W, H: g.H, cells: append([]Cell(nil), g.cells...)}
}

// Equal reports whether both grids have the same size and identical cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Reset returns every cell to the defaults.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = NewCell()
	}
}

func (g *Grid) boundsErr(x, y int) error {
	return errx.ErrBounds.With("x", x).With("y", y).With("width", g.W).With("height", g.H)
}
