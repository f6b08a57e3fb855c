// Package sieve enumerates the primes below an upper bound using variants of
// the Sieve of Eratosthenes.
//
// # Overview
//
// Every generator works over the half-open range [2, end) and returns the
// primes it finds in ascending order. Three generators are provided, all
// built on the same two primitives:
//
//	┌──────────────────────────────────────────────┐
//	│                 Generators                   │
//	│  Eratosthenes / Full   one buffer, O(end)    │
//	│  Segmented             trial-division chunks │
//	│  Carried               carried multiples     │
//	└──────────────────────┬───────────────────────┘
//	                       │
//	        ┌──────────────┴──────────────┐
//	        ▼                             ▼
//	┌───────────────┐            ┌─────────────────┐
//	│ MarkMultiples │            │  AppendPrimes   │
//	│ p*p, p*p+p .. │            │ true → i+offset │
//	└───────────────┘            └─────────────────┘
//
// # Sieve Buffers
//
// A sieve buffer is a []bool with one flag per integer of a contiguous range.
// Index i stands for the integer i+offset. A true flag means "not yet proven
// composite"; false means "proven composite". Once every prime up to the
// square root of an integer has been applied as a marker, a remaining true
// flag means the integer is prime.
//
// # Generators
//
// Eratosthenes allocates a single buffer spanning [0, end). It is the fastest
// generator but needs one byte per candidate, so Full guards it with a range
// limit and reports ErrRangeTooLarge instead of attempting the allocation.
//
// Segmented walks the range in fixed-width segments and re-establishes
// primality inside each segment by trial division against the primes already
// found. It only processes end/size whole segments, so when end is not a
// multiple of size the primes in the final partial segment are not reported.
// This behaviour is kept for compatibility with existing callers.
//
// Carried is the corrected segmented sieve. Each sieving prime carries the
// index of its next multiple from one segment to the next, so segments are
// only ever marked, never trial divided, and the final short segment is
// processed. Its output is identical to Eratosthenes for every end.
//
// # Memory
//
// Eratosthenes: O(end) flags plus the result.
// Segmented and Carried: O(size) flags plus the result (and, for Carried, one
// resume index per prime up to sqrt(end)).
//
// # Concurrency
//
// Generators are synchronous and keep no state between calls. Each call owns
// its buffers and hands the result slice to the caller. Separate calls may run
// in parallel goroutines.
package sieve
