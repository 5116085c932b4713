package probe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// alwaysDetector flags every comparison, to verify detector wiring.
type alwaysDetector struct{}

func (alwaysDetector) Detect(_, _ time.Duration) bool { return true }

func TestValidateGeometry(t *testing.T) {
	// 32 ways of 32MiB stride fit exactly in 1GiB.
	require.NoError(t, ValidateGeometry(1<<30, 32, 1<<25))

	err := ValidateGeometry(1<<30, 33, 1<<25)
	require.Error(t, err)
	require.Contains(t, err.Error(), "assertion 1")
}

func TestSweep_GridShape(t *testing.T) {
	prober := newTestProber(t, 256,
		WithReadsCount(1_000),
		WithWarmupReadsCount(50),
		WithBatchesCount(1),
	)

	// Strides 4B and 8B (1 and 2 elements), working sets of 1 and 2.
	grid := prober.Sweep(3, 4, 8)

	require.Equal(t, uint32(3), grid.MaxAssoc())
	require.Equal(t, uint32(4), grid.MinStride())
	require.Equal(t, 2, grid.StrideCount())
	require.Equal(t, uint32(4), grid.Stride(0))
	require.Equal(t, uint32(8), grid.Stride(1))

	for elems := uint32(1); elems < 3; elems++ {
		for p := 0; p < 2; p++ {
			cell := grid.Cell(elems, p)
			require.GreaterOrEqual(t, cell.Elapsed, time.Duration(0))
			require.False(t, cell.Jump, "jumps must stay unflagged with the default detector")
		}
	}
}

func TestSweep_DetectorSkipsFirstRow(t *testing.T) {
	prober := newTestProber(t, 1024,
		WithReadsCount(500),
		WithWarmupReadsCount(10),
		WithBatchesCount(1),
		WithJumpDetector(alwaysDetector{}),
	)

	grid := prober.Sweep(4, 4, 8)

	for p := 0; p < grid.StrideCount(); p++ {
		require.False(t, grid.Cell(1, p).Jump, "first working-set size has no predecessor to jump from")
		for elems := uint32(2); elems < grid.MaxAssoc(); elems++ {
			require.True(t, grid.Cell(elems, p).Jump)
		}
	}
}
