package sieve

import (
	"errors"
	"fmt"
	"math"
)

// DefaultMaxFullRange is the largest end Full accepts when no explicit limit
// is configured. One flag per candidate makes this a 1 GiB buffer.
const DefaultMaxFullRange uint64 = 1 << 30

// ErrRangeTooLarge is returned when a full in-memory sieve is requested for a
// range that exceeds the configured limit.
var ErrRangeTooLarge = errors.New("range too large for in-memory sieve")

// Eratosthenes returns every prime in [2, end) in ascending order using a
// single buffer of end flags.
//
// The buffer is sieved by every prime whose square lies inside it, which is
// every i up to and including Isqrt(end-1). The loop bound is exact, so
// perfect squares such as 9 and 25 are always marked.
//
// Memory use is one byte per integer below end. Callers that cannot bound end
// should use Full, which refuses oversized ranges, or Carried.
//
// Example:
//
//	Eratosthenes(10) // [2 3 5 7]
func Eratosthenes(end uint64) []uint64 {
	buf := make([]bool, end)
	for i := range buf {
		buf[i] = true
	}

	if end > 2 {
		limit := Isqrt(end - 1)
		for i := uint64(2); i <= limit; i++ {
			if buf[i] {
				MarkMultiples(buf, i, 0, 0)
			}
		}
	}

	return AppendPrimes(make([]uint64, 0, estimateCount(end)), buf, 0)
}

// Full is Eratosthenes with an upper bound on the buffer it may allocate.
// A limit of 0 selects DefaultMaxFullRange.
//
// Returns:
//   - the ascending primes below end
//   - ErrRangeTooLarge (wrapped) when end exceeds the limit or the platform's
//     addressable slice length
func Full(end, limit uint64) ([]uint64, error) {
	if limit == 0 {
		limit = DefaultMaxFullRange
	}
	if end > limit {
		return nil, fmt.Errorf("%w: end %d exceeds limit %d", ErrRangeTooLarge, end, limit)
	}
	if end > math.MaxInt {
		return nil, fmt.Errorf("%w: end %d exceeds addressable length", ErrRangeTooLarge, end)
	}
	return Eratosthenes(end), nil
}

// maxCapacityHint caps the up-front allocation for very large ranges; the
// result slice still grows past it as needed.
const maxCapacityHint = 1 << 24

// estimateCount is a capacity hint for the number of primes below end,
// based on the prime number theorem with a little headroom.
func estimateCount(end uint64) int {
	if end < 17 {
		return 6
	}
	n := float64(end)
	est := 1.26 * n / math.Log(n)
	if est > maxCapacityHint {
		return maxCapacityHint
	}
	return int(est)
}
