package probe

import (
	"fmt"
	"time"
)

// Assertion identifiers printed on fatal precondition failures.
const (
	AssertGeometry  = 1
	AssertLog2Zero  = 2
	AssertMinStride = 3
)

// ValidateGeometry checks that the sweep footprint fits the backing buffer:
// maxAssoc * maxStride must not exceed maxMemory (all in bytes except
// maxAssoc, which is in elements). Run before allocating anything.
func ValidateGeometry(maxMemory, maxAssoc, maxStride uint64) error {
	if maxAssoc*maxStride > maxMemory {
		return fmt.Errorf("assertion %d: maxAssociativity (%d) * maxStride (%d) exceeds capacity (%d)",
			AssertGeometry, maxAssoc, maxStride, maxMemory)
	}

	return nil
}

// Sweep measures every cell of the (elems × stride) grid: working-set sizes
// 1..maxAssoc-1 elements crossed with strides doubling from minStride to
// maxStride bytes inclusive. Cells are measured column by column, strictly
// sequentially.
//
// The configured jump detector compares each cell against the previous
// working-set size at the same stride; the first row of a column has no
// predecessor and is never flagged.
func (p *Prober) Sweep(maxAssoc, minStride, maxStride uint32) *Grid {
	strideCount := 0
	for s := minStride; s <= maxStride; s *= 2 {
		strideCount++
	}

	grid := NewGrid(maxAssoc, minStride, strideCount)

	stride := minStride / ElementSize // elements
	for stridePow := 0; stride*ElementSize <= maxStride; stridePow++ {
		var prev time.Duration
		for elems := uint32(1); elems < maxAssoc; elems++ {
			current := p.TimeArrayRead(stride, elems)

			jump := false
			if elems > 1 {
				jump = p.cfg.detector.Detect(current, prev)
			}

			grid.SetCell(elems, stridePow, Cell{Elapsed: current, Jump: jump})
			prev = current
		}

		stride *= 2
	}

	return grid
}
