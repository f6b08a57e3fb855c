package sieve

import "fmt"

// Carried returns every prime in [2, end) in ascending order, walking the
// range in segments of size integers and finishing with a short segment when
// end is not a multiple of size.
//
// Unlike Segmented, no segment is trial divided. Every prime whose square
// falls inside the range so far keeps the index of its next multiple, and
// each new segment resumes marking from there. Primes whose square lies
// inside the very segment that discovers them are marked in place, exactly as
// the full sieve does.
//
// The result equals Eratosthenes(end) for every end while holding only one
// segment buffer at a time.
func Carried(end, size uint64, progress ProgressFunc) ([]uint64, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrSegmentTooSmall, size)
	}

	total := end / size
	if end%size != 0 {
		total++
	}

	var c carrier
	primes := make([]uint64, 0, estimateCount(end))
	for s := uint64(0); s < total; s++ {
		shift := s * size
		width := size
		if end-shift < width {
			width = end - shift
		}
		if progress != nil {
			progress(Progress{SegmentSize: size, Segment: s + 1, Total: total})
		}
		primes = c.step(primes, shift, width)
	}
	return primes, nil
}

// carrier holds the resume state of the sieving primes. The sieving primes
// are always a prefix of the accumulated primes: next[i] is the multiple
// index at which primes[i] continues in the next segment.
type carrier struct {
	next []uint64
}

// step sieves [shift, shift+width) and returns primes extended by the
// segment's primes.
func (c *carrier) step(primes []uint64, shift, width uint64) []uint64 {
	buf := make([]bool, width)
	for i := range buf {
		buf[i] = true
	}
	end := shift + width

	for i, p := range primes[:len(c.next)] {
		c.next[i] = markFrom(buf, p, c.next[i], shift)
	}

	// Primes from earlier segments whose square has just come into range.
	// Their square is at least shift, otherwise they would already be in the
	// prefix, so marking starts at multiple 0.
	for len(c.next) < len(primes) {
		p := primes[len(c.next)]
		if sq, ok := square(p); !ok || sq >= end {
			break
		}
		c.next = append(c.next, markFrom(buf, p, 0, shift))
	}

	// Primes discovered in this segment that still have multiples in it.
	// They are the smallest primes of the segment, so appending their resume
	// indices after extraction keeps next aligned with primes.
	var found []uint64
	start := shift
	if start < 2 {
		start = 2
	}
	for n := start; n < end; n++ {
		if !buf[n-shift] {
			continue
		}
		if sq, ok := square(n); !ok || sq >= end {
			break
		}
		found = append(found, markFrom(buf, n, 0, shift))
	}

	primes = AppendPrimes(primes, buf, shift)
	c.next = append(c.next, found...)
	return primes
}
