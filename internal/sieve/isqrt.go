package sieve

import "math/bits"

// Isqrt returns floor(sqrt(n)) for any n, computed exactly in integer
// arithmetic.
//
// The estimate starts at a power of two that is at least sqrt(n) and walks
// down with Newton steps, so the intermediate sums never exceed 2^33.
func Isqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}

	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) / 2
		if y >= x {
			return x
		}
		x = y
	}
}

// square returns p*p and false when the product does not fit in 64 bits.
func square(p uint64) (uint64, bool) {
	hi, lo := bits.Mul64(p, p)
	return lo, hi == 0
}
