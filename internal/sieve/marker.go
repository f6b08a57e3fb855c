package sieve

import "math/bits"

// MarkMultiples flags the multiples of the prime p as composite in buf.
//
// The marked values are p*p + p*k for k = m, m+1, ... and each value v lands
// at buf[v-o]. Marking stops at the first value whose position lies past the
// end of buf. Values below o belong to an earlier range and are skipped.
//
// Starting at p*p is sufficient when primes are applied in ascending order:
// every smaller multiple of p has a smaller prime factor and is already
// marked.
//
// Parameters:
//   - buf: sieve buffer covering the integers [o, o+len(buf))
//   - p: the prime whose multiples are marked (must be >= 2)
//   - m: the first multiple index to mark, normally 0
//   - o: the integer represented by buf[0], 0 for an unsegmented sieve
//
// Example:
//
//	buf := make([]bool, 30)
//	MarkMultiples(buf, 3, 0, 0) // clears 9, 12, 15, ... 27
func MarkMultiples(buf []bool, p, m, o uint64) {
	markFrom(buf, p, m, o)
}

// markFrom is MarkMultiples that reports the multiple index it stopped at,
// i.e. the first k whose value p*p + p*k lies at or past the end of buf.
// Carried feeds that index into the next segment.
func markFrom(buf []bool, p, k, o uint64) uint64 {
	if p < 2 {
		return k
	}
	sq, ok := square(p)
	if !ok {
		return k
	}
	hi, step := bits.Mul64(p, k)
	if hi != 0 {
		return k
	}
	v, carry := bits.Add64(sq, step, 0)
	if carry != 0 {
		return k
	}

	if v < o {
		gap := o - v
		skip := gap / p
		if gap%p != 0 {
			skip++
		}
		hi, jump := bits.Mul64(skip, p)
		if hi != 0 {
			return k
		}
		v, carry = bits.Add64(v, jump, 0)
		if carry != 0 {
			return k
		}
		k += skip
	}

	n := uint64(len(buf))
	for v-o < n {
		buf[v-o] = false
		k++
		v, carry = bits.Add64(v, p, 0)
		if carry != 0 {
			break
		}
	}
	return k
}
