// Package pattern builds pointer-chase layouts inside a backing buffer.
//
// A pattern is a permutation of elems positions spaced stride elements apart:
// reading buffer[p] yields the next position to visit. Every generator in
// this package produces exactly one cycle covering all elems positions, so a
// chase of length elems traverses the whole working set without repetition
// and a longer chase revisits it deterministically. The data dependency
// between consecutive reads is what defeats prefetching and instruction-level
// parallelism during measurement.
package pattern

import (
	"fmt"
	"math/rand"

	"github.com/cachelat/cachelat/format"
)

const (
	// DefaultSeed seeds one-shot shuffled fills.
	DefaultSeed = 42

	// DefaultEngineSeed seeds the shared shuffle engine used across batches.
	DefaultEngineSeed = 239
)

// FillDirect writes a forward-sequential chase: position i*stride points to
// (i+1)*stride and the last position wraps back to 0.
func FillDirect(dst []uint32, stride, elems uint32) {
	checkArgs(stride, elems)

	last := stride * (elems - 1)
	for i := uint32(0); i <= last; i += stride {
		if i == last {
			// loop back
			dst[i] = 0
			break
		}
		dst[i] = i + stride
	}
}

// FillReverse writes a backward-sequential chase: position (elems-1-i)*stride
// points to (elems-2-i)*stride and the lowest position wraps back to the
// highest.
func FillReverse(dst []uint32, stride, elems uint32) {
	checkArgs(stride, elems)

	last := stride * (elems - 1)
	for i, cnt := last, uint32(0); cnt < elems; i, cnt = i-stride, cnt+1 {
		if i == 0 {
			// loop back
			dst[i] = last
			break
		}
		dst[i] = i - stride
	}
}

// FillShuffled writes a random single-cycle chase using a one-shot engine
// seeded with seed. Deterministic for a given seed.
//
// The measurement path regenerates patterns every batch from a shared,
// advancing engine; use a Shuffler for that instead.
func FillShuffled(dst []uint32, stride, elems uint32, seed int64) {
	NewShuffler(seed).Fill(dst, stride, elems)
}

// Fill dispatches to the generator for the given pattern kind. Shuffled
// patterns use a one-shot engine seeded with seed; seed is ignored otherwise.
func Fill(kind format.PatternKind, dst []uint32, stride, elems uint32, seed int64) error {
	switch kind {
	case format.PatternDirect:
		FillDirect(dst, stride, elems)
	case format.PatternReverse:
		FillReverse(dst, stride, elems)
	case format.PatternShuffled:
		FillShuffled(dst, stride, elems, seed)
	default:
		return fmt.Errorf("invalid pattern kind: %s", kind)
	}

	return nil
}

// Shuffler generates shuffled chases from a seeded engine whose state
// advances across calls. Regenerating per batch from one engine keeps runs
// reproducible while still giving each batch an independent random layout.
//
// Not safe for concurrent use; the measurement loop is single-threaded.
type Shuffler struct {
	rng *rand.Rand
}

// NewShuffler creates a Shuffler seeded with the given engine seed.
func NewShuffler(seed int64) *Shuffler {
	return &Shuffler{rng: rand.New(rand.NewSource(seed))}
}

// Fill writes a uniformly random single-cycle chase over the positions
// {0, stride, ..., (elems-1)*stride}: slot perm[i] links to perm[i+1] and the
// last slot links back to perm[0].
func (s *Shuffler) Fill(dst []uint32, stride, elems uint32) {
	checkArgs(stride, elems)

	perm := s.rng.Perm(int(elems))
	for i, slot := range perm {
		next := perm[0]
		if i+1 < len(perm) {
			next = perm[i+1]
		}
		dst[uint32(slot)*stride] = uint32(next) * stride
	}
}

func checkArgs(stride, elems uint32) {
	if stride == 0 {
		panic("pattern: stride must be nonzero")
	}
	if elems == 0 {
		panic("pattern: elems must be nonzero")
	}
}
