package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cachelat/cachelat"
	"github.com/cachelat/cachelat/buffer"
	"github.com/cachelat/cachelat/format"
	"github.com/cachelat/cachelat/probe"
	"github.com/cachelat/cachelat/report"
	"github.com/cachelat/cachelat/snapshot"
	"github.com/cachelat/cachelat/sysinfo"
)

// rassert terminates the process when a startup invariant does not hold.
// Each check site carries a distinct identifier so a failure is attributable
// without a debugger.
func rassert(expr bool, id uint32) {
	if !expr {
		fmt.Fprintf(os.Stderr, "Assertion failed: %d\n", id)
		os.Exit(1)
	}
}

func log2(n uint32) uint32 {
	rassert(n != 0, probe.AssertLog2Zero)
	var log uint32
	for n >>= 1; n != 0; n >>= 1 {
		log++
	}

	return log
}

func parseCompression(name string) (format.CompressionType, error) {
	switch name {
	case "none":
		return format.CompressionNone, nil
	case "zstd":
		return format.CompressionZstd, nil
	case "s2":
		return format.CompressionS2, nil
	case "lz4":
		return format.CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, zstd, s2, or lz4)", name)
	}
}

func main() {
	reads := flag.Uint("reads", probe.DefaultReadsCount, "Timed chained reads per batch")
	warmupReads := flag.Uint("warmup-reads", probe.DefaultWarmupReadsCount, "Untimed warmup reads per batch")
	batches := flag.Uint("batches", probe.DefaultBatchesCount, "Batches averaged per grid cell")
	engineSeed := flag.Int64("seed", 239, "Shuffle engine seed")
	jumpFraction := flag.Float64("jump-fraction", -1, "Flag latency jumps above this fraction (negative disables)")
	csvFile := flag.String("csv", "", "Optional CSV output file")
	snapshotFile := flag.String("snapshot", "", "Optional binary snapshot output file")
	compression := flag.String("compression", "none", "Snapshot compression: none, zstd, s2, lz4")

	flag.Parse()

	if *reads == 0 || *batches == 0 {
		fmt.Fprintf(os.Stderr, "Error: -reads and -batches must be positive\n")
		os.Exit(1)
	}

	const (
		maxMemory = uint32(cachelat.DefaultMaxMemory)
		maxAssoc  = uint32(cachelat.DefaultMaxAssociativity)
		maxStride = uint32(cachelat.DefaultMaxStride)
		minStride = uint32(cachelat.DefaultMinStride)
		alignment = uint32(buffer.DefaultAlignment)
	)

	// Startup invariants, checked before the buffer is allocated.
	rassert(uint64(maxAssoc)*uint64(maxStride) <= uint64(maxMemory), probe.AssertGeometry)
	rassert(minStride >= buffer.ElementSize && minStride%buffer.ElementSize == 0, probe.AssertMinStride)
	strideCols := log2(maxStride/minStride) + 1

	buf, err := buffer.New(uint64(maxMemory), uint64(alignment))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("array: 0x%x\n", buf.Base())
	fmt.Printf("len: %d\n", buf.Len())
	fmt.Printf("grid: %d working-set sizes x %d strides\n", maxAssoc, strideCols)

	if info, err := sysinfo.Collect(); err != nil {
		fmt.Printf("cpu info unavailable: %v\n", err)
	} else {
		sysinfo.Fprint(os.Stdout, info)
	}

	opts := []probe.Option{
		probe.WithReadsCount(uint32(*reads)),
		probe.WithWarmupReadsCount(uint32(*warmupReads)),
		probe.WithBatchesCount(uint32(*batches)),
		probe.WithEngineSeed(*engineSeed),
	}
	if *jumpFraction >= 0 {
		opts = append(opts, probe.WithJumpDetector(probe.ThresholdDetector{Fraction: *jumpFraction}))
	}

	prober, err := probe.New(buf, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	grid := prober.Sweep(maxAssoc+1, minStride, maxStride)

	report.WriteTable(os.Stdout, grid)

	if *csvFile != "" {
		if err := report.ExportCSV(*csvFile, grid); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Results exported to: %s\n", *csvFile)
	}

	if *snapshotFile != "" {
		comp, err := parseCompression(*compression)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		data, err := snapshot.Encode(grid, snapshot.WithCompression(comp))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding snapshot: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*snapshotFile, data, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot written to: %s (%d bytes)\n", *snapshotFile, len(data))
	}
}
