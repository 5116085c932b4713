package probe

import "time"

// Cell is one measured point of the sweep grid.
type Cell struct {
	// Elapsed is the mean latency sample for this (elems, stride) pair.
	Elapsed time.Duration
	// Jump marks a latency discontinuity relative to the previous
	// working-set size at the same stride.
	Jump bool
}

// Grid is the 2D result table of a sweep: rows are working-set sizes in
// elements (1..maxAssoc-1), columns are stride doublings starting at
// minStride bytes. Built incrementally during the sweep, read afterwards.
type Grid struct {
	maxAssoc    uint32
	minStride   uint32
	strideCount int
	cells       []Cell
}

// NewGrid creates an empty grid for working-set sizes 1..maxAssoc-1 and
// strideCount stride doublings starting at minStride bytes.
func NewGrid(maxAssoc, minStride uint32, strideCount int) *Grid {
	if maxAssoc < 2 || strideCount < 1 {
		panic("probe: grid must have at least one row and one column")
	}

	return &Grid{
		maxAssoc:    maxAssoc,
		minStride:   minStride,
		strideCount: strideCount,
		cells:       make([]Cell, int(maxAssoc-1)*strideCount),
	}
}

// MaxAssoc returns the exclusive upper bound on working-set size in elements.
func (g *Grid) MaxAssoc() uint32 {
	return g.maxAssoc
}

// MinStride returns the smallest measured stride in bytes.
func (g *Grid) MinStride() uint32 {
	return g.minStride
}

// StrideCount returns the number of stride columns.
func (g *Grid) StrideCount() int {
	return g.strideCount
}

// Stride returns the stride in bytes of column stridePow.
func (g *Grid) Stride(stridePow int) uint32 {
	return g.minStride << stridePow
}

// Cell returns the cell for working-set size elems and stride column
// stridePow. Panics if out of range.
func (g *Grid) Cell(elems uint32, stridePow int) Cell {
	return g.cells[g.index(elems, stridePow)]
}

// SetCell stores the cell for working-set size elems and stride column
// stridePow. Panics if out of range.
func (g *Grid) SetCell(elems uint32, stridePow int, cell Cell) {
	g.cells[g.index(elems, stridePow)] = cell
}

func (g *Grid) index(elems uint32, stridePow int) int {
	if elems < 1 || elems >= g.maxAssoc || stridePow < 0 || stridePow >= g.strideCount {
		panic("probe: grid cell out of range")
	}

	return int(elems-1)*g.strideCount + stridePow
}
