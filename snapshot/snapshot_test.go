package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cachelat/cachelat/format"
	"github.com/cachelat/cachelat/probe"
)

func buildGrid(t *testing.T) *probe.Grid {
	t.Helper()

	grid := probe.NewGrid(6, 16, 4)
	for elems := uint32(1); elems < 6; elems++ {
		for p := 0; p < 4; p++ {
			grid.SetCell(elems, p, probe.Cell{
				Elapsed: time.Duration(elems)*time.Millisecond + time.Duration(p)*time.Microsecond,
				Jump:    elems == 4 && p == 2,
			})
		}
	}

	return grid
}

func requireGridsEqual(t *testing.T, expected, actual *probe.Grid) {
	t.Helper()

	require.Equal(t, expected.MaxAssoc(), actual.MaxAssoc())
	require.Equal(t, expected.MinStride(), actual.MinStride())
	require.Equal(t, expected.StrideCount(), actual.StrideCount())

	for elems := uint32(1); elems < expected.MaxAssoc(); elems++ {
		for p := 0; p < expected.StrideCount(); p++ {
			require.Equal(t, expected.Cell(elems, p), actual.Cell(elems, p))
		}
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	grid := buildGrid(t)
	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			data, err := Encode(grid, WithCompression(comp))
			require.NoError(t, err)

			decoded, err := Decode(data)
			require.NoError(t, err)
			requireGridsEqual(t, grid, decoded)
		})
	}
}

func TestEncodeDecode_BigEndian(t *testing.T) {
	grid := buildGrid(t)

	data, err := Encode(grid, WithBigEndian(), WithCompression(format.CompressionS2))
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	requireGridsEqual(t, grid, decoded)
}

func TestEncode_InvalidCompression(t *testing.T) {
	_, err := Encode(buildGrid(t), WithCompression(format.CompressionType(0xEE)))
	require.Error(t, err)
}

func TestDecode_Truncated(t *testing.T) {
	data, err := Encode(buildGrid(t))
	require.NoError(t, err)

	_, err = Decode(data[:headerSize-1])
	require.ErrorIs(t, err, ErrTruncated)

	// Cutting into the payload shifts the checksum window, so the integrity
	// check fires before the length check can.
	_, err = Decode(data[:len(data)-1])
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecode_InvalidMagic(t *testing.T) {
	data, err := Encode(buildGrid(t))
	require.NoError(t, err)

	data[0] = 'X'
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	data, err := Encode(buildGrid(t))
	require.NoError(t, err)

	data[4] = 99
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecode_CorruptedPayload(t *testing.T) {
	data, err := Encode(buildGrid(t))
	require.NoError(t, err)

	data[headerSize+2] ^= 0xFF
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecode_CorruptedChecksum(t *testing.T) {
	data, err := Encode(buildGrid(t))
	require.NoError(t, err)

	data[len(data)-1] ^= 0xFF
	_, err = Decode(data)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestEncode_SingleCellGrid(t *testing.T) {
	grid := probe.NewGrid(2, 16, 1)
	grid.SetCell(1, 0, probe.Cell{Elapsed: 123 * time.Nanosecond})

	data, err := Encode(grid)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	requireGridsEqual(t, grid, decoded)
}
