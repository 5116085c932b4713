// Package buffer provides the backing array that access patterns are
// materialized into and chased through.
//
// The buffer is a single contiguous block of uint32 elements, aligned to a
// configurable boundary (page-sized by default) so that stride patterns map
// predictably onto cache sets and TLB pages. It is allocated once, up front,
// at the maximum working-set size the sweep will ever touch; every pattern
// overwrites the footprint it is about to read, so the same block is reused
// for the whole run.
package buffer

import (
	"fmt"
	"unsafe"
)

const (
	// ElementSize is the width in bytes of one buffer element.
	ElementSize = 4

	// DefaultAlignment aligns the buffer base to 16KiB boundaries.
	DefaultAlignment = 1 << 14
)

// Buffer is a page-aligned block of uint32 elements.
//
// The zero value is not usable; construct with New.
type Buffer struct {
	raw  []uint32 // full allocation including alignment slack, pins the memory
	data []uint32 // aligned view of exactly the requested capacity
}

// New allocates a Buffer of capacityBytes bytes whose base address is a
// multiple of alignment.
//
// capacityBytes must be a positive multiple of ElementSize and alignment must
// be a power of two. Go's allocator gives no alignment guarantee beyond the
// element size, so the buffer over-allocates by one alignment unit and slices
// at the first aligned element.
func New(capacityBytes uint64, alignment uint64) (*Buffer, error) {
	if capacityBytes == 0 || capacityBytes%ElementSize != 0 {
		return nil, fmt.Errorf("capacity must be a positive multiple of %d bytes, got %d", ElementSize, capacityBytes)
	}
	if alignment == 0 || alignment&(alignment-1) != 0 {
		return nil, fmt.Errorf("alignment must be a power of two, got %d", alignment)
	}
	if alignment%ElementSize != 0 {
		return nil, fmt.Errorf("alignment must be a multiple of %d bytes, got %d", ElementSize, alignment)
	}

	elems := capacityBytes / ElementSize
	slack := alignment / ElementSize

	raw := make([]uint32, elems+slack)

	base := uintptr(unsafe.Pointer(&raw[0]))
	var offset uintptr
	if rem := base % uintptr(alignment); rem != 0 {
		offset = (uintptr(alignment) - rem) / ElementSize
	}

	return &Buffer{
		raw:  raw,
		data: raw[offset : offset+uintptr(elems)],
	}, nil
}

// Data returns the aligned element slice. Pattern generators write next-hop
// indexes into it and the timed reader chases through it.
func (b *Buffer) Data() []uint32 {
	return b.data
}

// Len returns the buffer capacity in elements.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Size returns the buffer capacity in bytes.
func (b *Buffer) Size() uint64 {
	return uint64(len(b.data)) * ElementSize
}

// Base returns the aligned base address, for diagnostics.
func (b *Buffer) Base() uintptr {
	return uintptr(unsafe.Pointer(&b.data[0]))
}
