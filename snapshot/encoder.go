package snapshot

import (
	"encoding/binary"

	"github.com/cachelat/cachelat/compress"
	"github.com/cachelat/cachelat/internal/hash"
	"github.com/cachelat/cachelat/internal/options"
	"github.com/cachelat/cachelat/internal/pool"
	"github.com/cachelat/cachelat/probe"
)

// Encode serializes a grid. The returned slice is newly allocated and owned
// by the caller.
func Encode(g *probe.Grid, opts ...Option) ([]byte, error) {
	cfg := defaultEncodeConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	staging := pool.GetSnapshotBuffer()
	defer pool.PutSnapshotBuffer(staging)
	appendPayload(staging, g)

	compressed, err := codec.Compress(staging.Bytes())
	if err != nil {
		return nil, err
	}

	engine := cfg.engine()
	out := make([]byte, 0, headerSize+len(compressed)+checksumSize)
	out = append(out, magic[:]...)
	out = append(out, snapshotVersion, cfg.flagByte())
	out = engine.AppendUint32(out, g.MaxAssoc())
	out = engine.AppendUint32(out, g.MinStride())
	out = engine.AppendUint32(out, uint32(g.StrideCount()))
	out = engine.AppendUint32(out, uint32(len(compressed)))
	out = append(out, compressed...)
	out = engine.AppendUint64(out, hash.Checksum(out))

	return out, nil
}

// appendPayload writes the uncompressed payload: zigzag-varint deltas of the
// cell latencies in row-major order, then the jump bitmap.
func appendPayload(staging *pool.ByteBuffer, g *probe.Grid) {
	cellCount := int(g.MaxAssoc()-1) * g.StrideCount()
	bitmap := make([]byte, (cellCount+7)/8)

	var prev int64
	cellIdx := 0
	for elems := uint32(1); elems < g.MaxAssoc(); elems++ {
		for p := 0; p < g.StrideCount(); p++ {
			cell := g.Cell(elems, p)

			ns := cell.Elapsed.Nanoseconds()
			staging.B = binary.AppendVarint(staging.B, ns-prev)
			prev = ns

			if cell.Jump {
				bitmap[cellIdx/8] |= 1 << (cellIdx % 8)
			}
			cellIdx++
		}
	}

	staging.B = append(staging.B, bitmap...)
}
