package sieve

// AppendPrimes appends i+o to dst for every index i of buf whose flag is still
// true, scanning from low to high, and returns the extended slice.
//
// With o == 0 the buffer starts at the integer 0, so indices 0 and 1 are not
// candidates and are skipped. With any other offset every index is a
// candidate.
func AppendPrimes(dst []uint64, buf []bool, o uint64) []uint64 {
	start := 0
	if o == 0 {
		start = 2
	}
	for i := start; i < len(buf); i++ {
		if buf[i] {
			dst = append(dst, uint64(i)+o)
		}
	}
	return dst
}
