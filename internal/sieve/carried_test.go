package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

func TestCarriedClassifiesTail(t *testing.T) {
	got, err := Carried(950, 100, nil)
	require.NoError(t, err)

	assert.Equal(t, Eratosthenes(950), got)
	for _, p := range []uint64{907, 911, 919, 929, 937, 941, 947} {
		_, found := slices.BinarySearch(got, p)
		assert.True(t, found, "missing %d", p)
	}
}

// TestCarriedSweep compares every (end, size) pair against the full sieve.
func TestCarriedSweep(t *testing.T) {
	for size := uint64(2); size <= 40; size++ {
		for end := uint64(0); end <= 500; end++ {
			got, err := Carried(end, size, nil)
			require.NoError(t, err)
			if !assert.Equal(t, Eratosthenes(end), got, "end=%d size=%d", end, size) {
				return
			}
		}
	}
}

func TestCarriedLargeRange(t *testing.T) {
	tests := []struct {
		end  uint64
		size uint64
	}{
		{end: 1_000_000, size: 100},
		{end: 1_000_003, size: 4096},
		{end: 250_000, size: 250_000},
		{end: 250_000, size: 1_000_000},
	}

	for _, tt := range tests {
		got, err := Carried(tt.end, tt.size, nil)
		require.NoError(t, err)
		assert.Equal(t, Eratosthenes(tt.end), got, "end=%d size=%d", tt.end, tt.size)
		assert.True(t, slices.IsSorted(got))
	}
}

func TestCarriedProgressCountsTail(t *testing.T) {
	var notices []Progress
	_, err := Carried(950, 100, func(p Progress) {
		notices = append(notices, p)
	})
	require.NoError(t, err)

	require.Len(t, notices, 10)
	assert.Equal(t, uint64(10), notices[9].Segment)
	assert.Equal(t, uint64(10), notices[9].Total)
}

func TestCarriedRejectsNarrowSegments(t *testing.T) {
	_, err := Carried(100, 1, nil)
	assert.ErrorIs(t, err, ErrSegmentTooSmall)
}

func TestCarriedIdempotent(t *testing.T) {
	first, err := Carried(20_000, 333, nil)
	require.NoError(t, err)
	second, err := Carried(20_000, 333, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	requireStrictlyAscending(t, first)
}
