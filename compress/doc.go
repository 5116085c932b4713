// Package compress provides compression and decompression codecs for
// serialized measurement snapshots.
//
// Snapshots are varint-encoded latency grids, which compress well because
// neighboring cells tend to hold similar durations. The package supports
// multiple algorithms so callers can trade ratio against speed:
//
//   - None: no compression (fastest, largest)
//   - Zstd: best compression ratio, moderate speed
//   - S2:   balanced compression and speed
//   - LZ4:  fast decompression, moderate compression
//
// The Zstd codec has two implementations selected by build tags: a cgo
// binding (valyala/gozstd) when cgo is available, and a pure-Go fallback
// (klauspost/compress/zstd) otherwise. Both produce standard Zstandard
// frames and interoperate freely.
//
// All codecs are stateless values and safe for concurrent use; pooled
// internal state (encoders, decoders, block compressors) is managed with
// sync.Pool.
package compress
