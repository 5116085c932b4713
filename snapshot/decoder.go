package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/cachelat/cachelat/compress"
	"github.com/cachelat/cachelat/endian"
	"github.com/cachelat/cachelat/format"
	"github.com/cachelat/cachelat/internal/hash"
	"github.com/cachelat/cachelat/probe"
)

// Decode deserializes a grid previously produced by Encode, validating the
// magic, version, and checksum, and auto-detecting byte order and
// compression from the flag byte.
func Decode(data []byte) (*probe.Grid, error) {
	if len(data) < headerSize+checksumSize {
		return nil, ErrTruncated
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return nil, ErrInvalidMagic
	}
	if data[4] != snapshotVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}

	flag := data[5]
	engine := endian.GetLittleEndianEngine()
	if flag&flagBigEndian != 0 {
		engine = endian.GetBigEndianEngine()
	}

	stored := engine.Uint64(data[len(data)-checksumSize:])
	if hash.Checksum(data[:len(data)-checksumSize]) != stored {
		return nil, ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(format.CompressionType(flag & flagCompressionMask))
	if err != nil {
		return nil, err
	}

	maxAssoc := engine.Uint32(data[6:10])
	minStride := engine.Uint32(data[10:14])
	strideCount := engine.Uint32(data[14:18])
	payloadLen := engine.Uint32(data[18:22])

	if maxAssoc < 2 || strideCount < 1 {
		return nil, ErrCorrupted
	}
	if len(data) != headerSize+int(payloadLen)+checksumSize {
		return nil, ErrTruncated
	}

	payload, err := codec.Decompress(data[headerSize : headerSize+payloadLen])
	if err != nil {
		return nil, fmt.Errorf("snapshot: decompress payload: %w", err)
	}

	return decodePayload(payload, maxAssoc, minStride, int(strideCount))
}

func decodePayload(payload []byte, maxAssoc, minStride uint32, strideCount int) (*probe.Grid, error) {
	grid := probe.NewGrid(maxAssoc, minStride, strideCount)
	cellCount := int(maxAssoc-1) * strideCount

	durations := make([]time.Duration, 0, cellCount)
	var prev int64
	offset := 0
	for i := 0; i < cellCount; i++ {
		delta, n := binary.Varint(payload[offset:])
		if n <= 0 {
			return nil, ErrCorrupted
		}
		offset += n
		prev += delta
		durations = append(durations, time.Duration(prev))
	}

	bitmapLen := (cellCount + 7) / 8
	if len(payload)-offset != bitmapLen {
		return nil, ErrCorrupted
	}
	bitmap := payload[offset:]

	cellIdx := 0
	for elems := uint32(1); elems < maxAssoc; elems++ {
		for p := 0; p < strideCount; p++ {
			grid.SetCell(elems, p, probe.Cell{
				Elapsed: durations[cellIdx],
				Jump:    bitmap[cellIdx/8]&(1<<(cellIdx%8)) != 0,
			})
			cellIdx++
		}
	}

	return grid, nil
}
