package sieve

import (
	"errors"
	"fmt"
)

// ErrSegmentTooSmall is returned when a segmented sieve is asked to use a
// segment narrower than two integers.
var ErrSegmentTooSmall = errors.New("segment size must be at least 2")

// Progress describes the segment a segmented generator is about to process.
type Progress struct {
	SegmentSize uint64 // Width of every full segment
	Segment     uint64 // 1-based index of the segment being processed
	Total       uint64 // Number of segments the run will process
}

func (p Progress) String() string {
	return fmt.Sprintf("Sieve Segment(%d) %d of %d is being processed.", p.SegmentSize, p.Segment, p.Total)
}

// ProgressFunc receives one Progress notice per segment, before the segment
// is processed. It must not retain or modify generator state; a nil
// ProgressFunc disables reporting.
type ProgressFunc func(Progress)

// Segmented returns the primes found in the first end/size segments of
// [2, end), in ascending order.
//
// Each segment [shift, shift+size) is initialised by trial division: a
// position is composite when some prime found in an earlier segment, not
// larger than the square root of its value, divides it. Positions that
// survive are primes of the segment and their multiples are then marked in
// the rest of the segment before extraction.
//
// Only whole segments are processed. When end is not a multiple of size the
// integers in [end/size*size, end) are never examined and any primes there
// are missing from the result. Use Carried when the whole range must be
// classified.
//
// Parameters:
//   - end: exclusive upper bound of the range
//   - size: segment width (must be >= 2)
//   - progress: optional per-segment notice
//
// Returns:
//   - ascending primes from the processed segments
//   - ErrSegmentTooSmall (wrapped) when size < 2
func Segmented(end, size uint64, progress ProgressFunc) ([]uint64, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrSegmentTooSmall, size)
	}

	total := end / size
	primes := make([]uint64, 0, estimateCount(total*size))
	for s := uint64(0); s < total; s++ {
		if progress != nil {
			progress(Progress{SegmentSize: size, Segment: s + 1, Total: total})
		}
		primes = segmentStep(primes, s*size, size)
	}
	return primes, nil
}

// segmentStep sieves the segment [shift, shift+size) against primes and
// returns primes extended by the segment's primes. The caller hands over
// primes and receives the extended slice back; nothing else holds it.
func segmentStep(primes []uint64, shift, size uint64) []uint64 {
	buf := make([]bool, size)
	for l := range buf {
		buf[l] = !hasKnownFactor(primes, uint64(l)+shift)
	}

	for l := range buf {
		n := uint64(l) + shift
		if n < 2 || !buf[l] {
			continue
		}
		MarkMultiples(buf, n, 0, shift)
	}

	return AppendPrimes(primes, buf, shift)
}

// hasKnownFactor reports whether any prime in the ascending list primes, up
// to the square root of n, divides n.
func hasKnownFactor(primes []uint64, n uint64) bool {
	root := Isqrt(n)
	for _, p := range primes {
		if p > root {
			return false
		}
		if n%p == 0 {
			return true
		}
	}
	return false
}
