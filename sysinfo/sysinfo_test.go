package sysinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFprint(t *testing.T) {
	var out bytes.Buffer
	Fprint(&out, Info{
		ModelName:     "Example CPU @ 3.2GHz",
		CacheSizeKB:   512,
		PhysicalCores: 8,
		LogicalCores:  16,
	})

	require.Contains(t, out.String(), "cpu: Example CPU @ 3.2GHz\n")
	require.Contains(t, out.String(), "advertised cache: 512KB\n")
	require.Contains(t, out.String(), "cores: 8 physical, 16 logical\n")
}

func TestFprint_OmitsUnknownCache(t *testing.T) {
	var out bytes.Buffer
	Fprint(&out, Info{ModelName: "Example CPU"})

	require.NotContains(t, out.String(), "advertised cache")
}

func TestCollect(t *testing.T) {
	info, err := Collect()
	if err != nil {
		t.Skipf("cpu info unavailable on this host: %v", err)
	}

	require.GreaterOrEqual(t, info.LogicalCores, info.PhysicalCores)
}
