package sieve

import "testing"

// trialPrimes lists the primes below end by trial division. It is slow but
// obviously correct, and serves as the reference for the generators.
func trialPrimes(end uint64) []uint64 {
	primes := []uint64{}
	for n := uint64(2); n < end; n++ {
		prime := true
		for d := uint64(2); d*d <= n; d++ {
			if n%d == 0 {
				prime = false
				break
			}
		}
		if prime {
			primes = append(primes, n)
		}
	}
	return primes
}

// requireStrictlyAscending fails the test when primes is not strictly
// increasing, which also rules out duplicates.
func requireStrictlyAscending(t *testing.T, primes []uint64) {
	t.Helper()
	for i := 1; i < len(primes); i++ {
		if primes[i-1] >= primes[i] {
			t.Fatalf("primes not strictly ascending at %d: %d then %d", i, primes[i-1], primes[i])
		}
	}
}

// allTrue returns a buffer of n flags set to true.
func allTrue(n int) []bool {
	buf := make([]bool, n)
	for i := range buf {
		buf[i] = true
	}
	return buf
}
