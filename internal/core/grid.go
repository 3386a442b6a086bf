package core

// Grid stores one 2D scalar field per chemical in row-major order. Values are
// rounded to the grid's precision on write.
type Grid struct {
	W, H  int
	dtype DataType
	data  [][]float64
}

// NewGrid allocates a zeroed grid.
func NewGrid(w, h, chemicals int, dtype DataType) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if chemicals < 0 {
		chemicals = 0
	}
	g := &Grid{W: w, H: h, dtype: dtype, data: make([][]float64, chemicals)}
	for i := range g.data {
		g.data[i] = make([]float64, w*h)
	}
	return g
}

// Chemicals returns the number of fields.
func (g *Grid) Chemicals() int { return len(g.data) }

// Cells returns the number of cells per field.
func (g *Grid) Cells() int { return g.W * g.H }

// DataType returns the storage precision.
func (g *Grid) DataType() DataType { return g.dtype }

// Values exposes the backing slice of one chemical.
func (g *Grid) Values(chemical int) []float64 { return g.data[chemical] }

// At returns the value of cell in chemical.
func (g *Grid) At(chemical, cell int) float64 { return g.data[chemical][cell] }

// Set stores v at the grid's precision.
func (g *Grid) Set(chemical, cell int, v float64) {
	g.data[chemical][cell] = g.dtype.Quantize(v)
}

// Index returns the linear cell index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.W && y < g.H
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clamp pins coordinates to the nearest edge cell.
func (g *Grid) Clamp(x, y int) (int, int) {
	return clampInt(x, 0, g.W-1), clampInt(y, 0, g.H-1)
}

// Fill sets every cell of chemical to v.
func (g *Grid) Fill(chemical int, v float64) {
	v = g.dtype.Quantize(v)
	vals := g.data[chemical]
	for i := range vals {
		vals[i] = v
	}
}

// MemorySize reports the bytes the cell data occupies at its precision.
func (g *Grid) MemorySize() int {
	return g.Cells() * len(g.data) * g.dtype.Size()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
