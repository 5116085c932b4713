// Package cachelat empirically infers CPU cache geometry by timing
// pointer-chasing memory reads over working sets of varying size and stride.
//
// A measurement builds a random single-cycle permutation inside an aligned
// backing buffer, so that each read's address depends on the value just
// read. Chasing that cycle defeats prefetching and instruction-level
// parallelism and exposes true load-to-use latency. Sweeping the working-set
// size against doubling strides produces a latency grid in which cache
// capacity and associativity boundaries show up as jumps.
//
// # Basic Usage
//
// Running a sweep with default geometry and printing the table:
//
//	grid, err := cachelat.Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report.WriteTable(os.Stdout, grid)
//
// For smaller working sets or custom measurement parameters, allocate the
// buffer and prober explicitly:
//
//	prober, err := cachelat.New(1<<20, buffer.DefaultAlignment,
//	    probe.WithBatchesCount(3),
//	    probe.WithEngineSeed(7),
//	)
//	grid := prober.Sweep(9, 16, 256)
//
// # Package Structure
//
// This package provides convenient top-level wrappers. For fine-grained
// control use the buffer, pattern, and probe packages directly; report
// renders grids and snapshot serializes them.
package cachelat

import (
	"github.com/cachelat/cachelat/buffer"
	"github.com/cachelat/cachelat/internal/hash"
	"github.com/cachelat/cachelat/probe"
)

// Default sweep geometry. The backing buffer holds the largest footprint the
// default sweep can touch: 32 ways of 32MiB stride inside 1GiB.
const (
	DefaultMaxMemory        = 1 << 30 // 1 GiB
	DefaultMaxAssociativity = 32
	DefaultMaxStride        = 1 << 25 // 32 MiB
	DefaultMinStride        = 16      // 16 B
)

// New allocates an aligned backing buffer of capacityBytes and creates a
// Prober over it with the given measurement options.
func New(capacityBytes, alignment uint64, opts ...probe.Option) (*probe.Prober, error) {
	buf, err := buffer.New(capacityBytes, alignment)
	if err != nil {
		return nil, err
	}

	return probe.New(buf, opts...)
}

// Run performs a full sweep with the default geometry and measurement
// parameters, returning the latency grid.
//
// The default geometry allocates a 1GiB buffer; use New with a smaller
// capacity for constrained environments.
func Run(opts ...probe.Option) (*probe.Grid, error) {
	if err := probe.ValidateGeometry(DefaultMaxMemory, DefaultMaxAssociativity, DefaultMaxStride); err != nil {
		return nil, err
	}

	prober, err := New(DefaultMaxMemory, buffer.DefaultAlignment, opts...)
	if err != nil {
		return nil, err
	}

	// The sweep bound is exclusive: elems runs 1..DefaultMaxAssociativity.
	return prober.Sweep(DefaultMaxAssociativity+1, DefaultMinStride, DefaultMaxStride), nil
}

// RunID converts a run label to a stable 64-bit identifier for tagging
// exported results.
func RunID(label string) uint64 {
	return hash.ID(label)
}
