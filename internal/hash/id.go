package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
// Used to derive stable identifiers for measurement runs.
func ID(label string) uint64 {
	return xxhash.Sum64String(label)
}

// Checksum computes the xxHash64 of the given bytes.
// Used as the integrity trailer of serialized result grids.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
