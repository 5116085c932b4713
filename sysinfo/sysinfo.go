// Package sysinfo collects host CPU diagnostics so the empirical latency
// table can be read next to the hardware's advertised geometry.
package sysinfo

import (
	"fmt"
	"io"

	"github.com/shirou/gopsutil/v4/cpu"
)

// Info describes the host CPU as reported by the operating system.
type Info struct {
	ModelName     string
	Mhz           float64
	CacheSizeKB   int32 // advertised cache size; level is OS-dependent
	PhysicalCores int
	LogicalCores  int
}

// Collect queries the host CPU description. Core counts are best-effort:
// a failure there leaves the count at zero rather than failing the whole
// collection.
func Collect() (Info, error) {
	stats, err := cpu.Info()
	if err != nil {
		return Info{}, fmt.Errorf("query cpu info: %w", err)
	}

	var info Info
	if len(stats) > 0 {
		info.ModelName = stats[0].ModelName
		info.Mhz = stats[0].Mhz
		info.CacheSizeKB = stats[0].CacheSize
	}

	if physical, err := cpu.Counts(false); err == nil {
		info.PhysicalCores = physical
	}
	if logical, err := cpu.Counts(true); err == nil {
		info.LogicalCores = logical
	}

	return info, nil
}

// Fprint writes the diagnostic lines printed before the latency table.
func Fprint(w io.Writer, info Info) {
	fmt.Fprintf(w, "cpu: %s\n", info.ModelName)
	if info.CacheSizeKB > 0 {
		fmt.Fprintf(w, "advertised cache: %dKB\n", info.CacheSizeKB)
	}
	fmt.Fprintf(w, "cores: %d physical, %d logical\n", info.PhysicalCores, info.LogicalCores)
}
