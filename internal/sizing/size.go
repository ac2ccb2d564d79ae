// Package sizing provides safe size arithmetic for the 32-bit offsets used in
// manifests.
package sizing

import "math"

// ToUint32 converts a non-negative int to uint32, returning overflowErr if it
// doesn't fit.
func ToUint32(size int, overflowErr error) (uint32, error) {
	if size < 0 || uint64(size) > math.MaxUint32 {
		return 0, overflowErr
	}
	return uint32(size), nil
}

// AddUint32 adds two uint32 values, returning (result, false) on overflow.
func AddUint32(a, b uint32) (uint32, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// InBounds reports whether the half-open range [start, end) lies within a
// buffer of length n.
func InBounds(start, end uint32, n int) bool {
	return start <= end && uint64(end) <= uint64(n)
}
