// Package report renders sweep result grids for human and machine consumers.
package report

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cachelat/cachelat/probe"
)

const (
	// displayFactor scales raw nanosecond figures down to table-friendly integers.
	displayFactor = 10_000

	colWidth = 10
)

// BytesToString renders a byte count in human-readable form: "512B", "16KB",
// "32MB". Integer division, matching the table's coarse granularity.
func BytesToString(bytes uint32) string {
	switch {
	case bytes >= 1<<20:
		return strconv.FormatUint(uint64(bytes/(1<<20)), 10) + "MB"
	case bytes >= 1<<10:
		return strconv.FormatUint(uint64(bytes/(1<<10)), 10) + "KB"
	default:
		return strconv.FormatUint(uint64(bytes), 10) + "B"
	}
}

// WriteTable renders the grid as a plain-text table: a header row of
// humanized stride sizes and one row per power-of-two working-set size.
// Cells hold the scaled latency figure, prefixed with "[+]" when the cell is
// jump-marked.
func WriteTable(w io.Writer, g *probe.Grid) {
	fmt.Fprintf(w, "%*s", colWidth, "s/e")
	for p := 0; p < g.StrideCount(); p++ {
		fmt.Fprintf(w, "%*s", colWidth, BytesToString(g.Stride(p)))
	}
	fmt.Fprintln(w)

	for s := uint32(1); s < g.MaxAssoc(); s *= 2 {
		fmt.Fprintf(w, "%*d", colWidth, s)
		for p := 0; p < g.StrideCount(); p++ {
			cell := g.Cell(s, p)
			figure := strconv.FormatInt(cell.Elapsed.Nanoseconds()/displayFactor, 10)
			if cell.Jump {
				figure = "[+]" + figure
			}
			fmt.Fprintf(w, "%*s", colWidth, figure)
		}
		fmt.Fprintln(w)
	}
}

// ExportCSV writes every grid cell (not just the power-of-two rows) to a CSV
// file, one row per (elems, stride) pair.
func ExportCSV(filename string, g *probe.Grid) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := file.WriteString("elems,stride_bytes,latency_ns,jump\n"); err != nil {
		return err
	}

	for elems := uint32(1); elems < g.MaxAssoc(); elems++ {
		for p := 0; p < g.StrideCount(); p++ {
			cell := g.Cell(elems, p)
			_, err := file.WriteString(fmt.Sprintf("%d,%d,%d,%t\n",
				elems,
				g.Stride(p),
				cell.Elapsed.Nanoseconds(),
				cell.Jump))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
