// Package probe measures average pointer-chase read latency across a
// (working-set size × stride) parameter grid.
//
// The Prober owns a backing buffer and a seeded shuffle engine. One
// measurement (TimeArrayRead) runs several batches; each batch regenerates a
// fresh shuffled chase, performs untimed warmup reads to populate cache and
// TLB state, then times a fixed number of chained reads. Sweep drives
// TimeArrayRead over stride doublings and working-set sizes, collecting the
// results into a Grid for reporting or serialization.
//
// Everything is strictly sequential: one cell's measurement never overlaps
// another, so cache state stays attributable to exactly one pattern at a
// time.
package probe
