package probe

import (
	"fmt"
	"time"

	"github.com/cachelat/cachelat/buffer"
	"github.com/cachelat/cachelat/format"
	"github.com/cachelat/cachelat/internal/options"
	"github.com/cachelat/cachelat/pattern"
)

// ElementSize is the width in bytes of one chased element.
const ElementSize = buffer.ElementSize

// Sink receives every read target of every chase. Storing each loaded value
// into a package-level variable keeps the loads observable: the compiler
// cannot prove the reads dead and elide the memory accesses being measured.
var Sink uint32

// Prober measures pointer-chase read latency over a backing buffer.
//
// Not safe for concurrent use: measurements share the buffer and must not
// overlap, or cache state stops being attributable to a single pattern.
type Prober struct {
	buf      *buffer.Buffer
	shuffler *pattern.Shuffler
	cfg      *Config
}

// New creates a Prober over the given buffer.
func New(buf *buffer.Buffer, opts ...Option) (*Prober, error) {
	if buf == nil {
		return nil, fmt.Errorf("buffer must not be nil")
	}

	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Prober{
		buf:      buf,
		shuffler: pattern.NewShuffler(cfg.engineSeed),
		cfg:      cfg,
	}, nil
}

// Buffer returns the backing buffer the prober chases through.
func (p *Prober) Buffer() *buffer.Buffer {
	return p.buf
}

// Fill materializes a one-shot chase of the given kind in the buffer, using
// the configured pattern seed for shuffled layouts. The timed measurement
// path regenerates its own patterns; Fill is for inspecting or pre-building
// a specific layout.
func (p *Prober) Fill(kind format.PatternKind, stride, elems uint32) error {
	return pattern.Fill(kind, p.buf.Data(), stride, elems, p.cfg.patternSeed)
}

// TimeArrayRead measures the mean elapsed time of one batch of chained reads
// over a working set of elems positions spaced stride elements apart.
//
// Per batch: a fresh shuffled chase is generated (so no batch benefits from
// hardware adaptation to the previous layout), warmup reads bring the
// footprint into cache, then the timed reads run on the monotonic clock,
// continuing from wherever warmup left the chase. The returned duration is
// the total across batches divided by the batch count.
//
// The footprint {0, stride, ..., (elems-1)*stride} must fit in the buffer;
// an oversized footprint panics on the out-of-range write.
func (p *Prober) TimeArrayRead(stride, elems uint32) time.Duration {
	data := p.buf.Data()

	var total time.Duration
	for batch := uint32(0); batch < p.cfg.batchesCount; batch++ {
		p.shuffler.Fill(data, stride, elems)

		idx := uint32(0)
		for i := uint32(0); i < p.cfg.warmupReadsCount; i++ {
			idx = data[idx]
			Sink = idx
		}

		start := time.Now()
		for i := uint32(0); i < p.cfg.readsCount; i++ {
			idx = data[idx]
			Sink = idx
		}
		total += time.Since(start)
	}

	return total / time.Duration(p.cfg.batchesCount)
}
