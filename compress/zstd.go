package compress

// ZstdCompressor provides Zstandard compression for snapshot payloads.
//
// Zstd gives the best compression ratio of the supported algorithms and is
// the right choice when snapshots are archived or shipped across machines.
//
// Two implementations exist behind build tags: a cgo binding when cgo is
// available (zstd_cgo.go) and a pure-Go fallback (zstd_pure.go). Both emit
// standard Zstandard frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
