// Package snapshot serializes sweep result grids to a compact binary form.
//
// Layout (version 1):
//
//	magic "CLS1" | version | flag | maxAssoc | minStride | strideCount |
//	payload length | payload | xxHash64 checksum
//
// The flag byte carries the payload compression type in its low nibble and
// the byte order of the multi-byte fields in its high bit. The payload is
// the grid's cell latencies as zigzag-varint deltas in row-major order
// (adjacent cells hold similar durations, so deltas stay small), followed by
// a jump-flag bitmap. The checksum covers everything before it.
package snapshot

import (
	"errors"
	"fmt"

	"github.com/cachelat/cachelat/endian"
	"github.com/cachelat/cachelat/format"
	"github.com/cachelat/cachelat/internal/options"
)

const snapshotVersion = 1

// magic identifies a serialized grid, any version.
var magic = [4]byte{'C', 'L', 'S', '1'}

const (
	flagCompressionMask = 0x0F
	flagBigEndian       = 0x80
)

// headerSize is the fixed number of bytes before the payload.
const headerSize = 4 + 1 + 1 + 4*4

// checksumSize is the size of the xxHash64 trailer.
const checksumSize = 8

var (
	ErrTruncated          = errors.New("snapshot: data truncated")
	ErrInvalidMagic       = errors.New("snapshot: invalid magic")
	ErrUnsupportedVersion = errors.New("snapshot: unsupported version")
	ErrChecksumMismatch   = errors.New("snapshot: checksum mismatch")
	ErrCorrupted          = errors.New("snapshot: corrupted payload")
)

type encodeConfig struct {
	compression format.CompressionType
	bigEndian   bool
}

func defaultEncodeConfig() *encodeConfig {
	return &encodeConfig{
		compression: format.CompressionNone,
	}
}

func (c *encodeConfig) engine() endian.EndianEngine {
	if c.bigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

func (c *encodeConfig) flagByte() byte {
	flag := byte(c.compression) & flagCompressionMask
	if c.bigEndian {
		flag |= flagBigEndian
	}

	return flag
}

// Option is a functional option for configuring snapshot encoding.
type Option = options.Option[*encodeConfig]

// WithCompression sets the payload compression algorithm.
func WithCompression(t format.CompressionType) Option {
	return options.New(func(c *encodeConfig) error {
		switch t {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = t
			return nil
		default:
			return fmt.Errorf("invalid snapshot compression: %v", t)
		}
	})
}

// WithLittleEndian encodes multi-byte fields little-endian. It is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *encodeConfig) {
		c.bigEndian = false
	})
}

// WithBigEndian encodes multi-byte fields big-endian.
func WithBigEndian() Option {
	return options.NoError(func(c *encodeConfig) {
		c.bigEndian = true
	})
}
