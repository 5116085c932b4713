package format

type (
	PatternKind     uint8
	CompressionType uint8
)

const (
	PatternDirect   PatternKind = 0x1 // PatternDirect is a forward-sequential chase.
	PatternReverse  PatternKind = 0x2 // PatternReverse is a backward-sequential chase.
	PatternShuffled PatternKind = 0x3 // PatternShuffled is a seeded random single-cycle chase.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (p PatternKind) String() string {
	switch p {
	case PatternDirect:
		return "Direct"
	case PatternReverse:
		return "Reverse"
	case PatternShuffled:
		return "Shuffled"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
