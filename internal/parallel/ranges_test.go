package parallel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sizes(ranges []IndexRange) []int {
	out := make([]int, len(ranges))
	for i, r := range ranges {
		out[i] = r.Len()
	}
	return out
}

func TestPartition_Sizes(t *testing.T) {
	tests := []struct {
		length, workers int
		want            []int
	}{
		{3, 4, []int{1, 1, 1}},
		{4, 4, []int{1, 1, 1, 1}},
		{5, 4, []int{2, 1, 1, 1}},
		{7, 4, []int{2, 2, 2, 1}},
		{8, 4, []int{2, 2, 2, 2}},
		{9, 4, []int{3, 2, 2, 2}},
		{10, 3, []int{4, 3, 3}},
		{1, 1, []int{1}},
		{2_000_000, 1, []int{2_000_000}},
	}

	for _, tt := range tests {
		got := Partition(tt.length, tt.workers)
		assert.Equal(t, tt.want, sizes(got), "Partition(%d, %d)", tt.length, tt.workers)
	}
}

func TestPartition_RemainderGoesLeft(t *testing.T) {
	got := Partition(9, 4)
	want := []IndexRange{{0, 3}, {3, 5}, {5, 7}, {7, 9}}
	assert.Equal(t, want, got)
}

func TestPartition_CoversRangeExactlyOnce(t *testing.T) {
	for length := 1; length <= 64; length++ {
		for workers := 1; workers <= 40; workers++ {
			ranges := Partition(length, workers)
			require.Len(t, ranges, min(length, workers))
			require.Equal(t, 0, ranges[0].Start)
			require.Equal(t, length, ranges[len(ranges)-1].End)

			seen := make([]int, length)
			for i, r := range ranges {
				require.Positive(t, r.Len(), "empty range %d for (%d, %d)", i, length, workers)
				if i > 0 {
					require.Equal(t, ranges[i-1].End, r.Start, "gap before range %d", i)
				}
				for j := r.Start; j < r.End; j++ {
					seen[j]++
				}
			}
			for j, n := range seen {
				require.Equal(t, 1, n, "index %d covered %d times for (%d, %d)", j, n, length, workers)
			}

			lo, hi := ranges[0].Len(), ranges[0].Len()
			for _, r := range ranges {
				lo, hi = min(lo, r.Len()), max(hi, r.Len())
			}
			require.LessOrEqual(t, hi-lo, 1)
		}
	}
}

func TestPartition_ClampsToLength(t *testing.T) {
	ranges := Partition(5, 32)
	require.Len(t, ranges, 5)
	for i, r := range ranges {
		assert.Equal(t, IndexRange{Start: i, End: i + 1}, r)
	}
}

func TestPartition_SingleWorker(t *testing.T) {
	assert.Equal(t, []IndexRange{{0, 1000}}, Partition(1000, 1))
	assert.Equal(t, []IndexRange{{0, 1000}}, Partition(1000, 0), "non-positive workers act as one")
}

func TestPartition_EmptyLength(t *testing.T) {
	assert.Nil(t, Partition(0, 4))
	assert.Nil(t, Partition(-3, 4))
}

func TestPartition_Deterministic(t *testing.T) {
	first := Partition(1_234_567, 13)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Partition(1_234_567, 13))
	}
}

func TestIndexRange(t *testing.T) {
	r := IndexRange{Start: 3, End: 7}
	assert.Equal(t, 4, r.Len())
	assert.True(t, r.Contains(3))
	assert.True(t, r.Contains(6))
	assert.False(t, r.Contains(7))
	assert.False(t, r.Contains(2))
	assert.Equal(t, "[3, 7)", r.String())
}

func TestSub_CapsCapacity(t *testing.T) {
	s := []int{0, 1, 2, 3, 4, 5}
	part := Sub(s, IndexRange{Start: 2, End: 4})
	require.Equal(t, []int{2, 3}, part)
	assert.Equal(t, 2, cap(part))

	part = append(part, 99)
	assert.Equal(t, 4, s[4], "append must not write past the range")
	assert.Equal(t, []int{2, 3, 99}, part)
}
