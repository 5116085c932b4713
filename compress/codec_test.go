package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cachelat/cachelat/format"
)

// samplePayload mimics an encoded latency grid: small varint deltas with
// repetitive structure that every codec should shrink or at least round-trip.
func samplePayload() []byte {
	var buf bytes.Buffer
	for i := 0; i < 2048; i++ {
		buf.WriteByte(byte(i % 17))
		buf.WriteByte(byte(i % 3))
	}

	return buf.Bytes()
}

func TestCodecs_RoundTrip(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	payload := samplePayload()
	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			codec, err := GetCodec(comp)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, decompressed)
		})
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, comp := range compressions {
		t.Run(comp.String(), func(t *testing.T) {
			codec, err := GetCodec(comp)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestCreateCodec(t *testing.T) {
	codec, err := CreateCodec(format.CompressionS2, "snapshot")
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = CreateCodec(format.CompressionType(0xEE), "snapshot")
	require.Error(t, err)
	require.Contains(t, err.Error(), "snapshot")
}

func TestGetCodec_Unsupported(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestNoOpCompressor_PassThrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := samplePayload()

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)
}
