package parallel

import "fmt"

// IndexRange is the half-open interval [Start, End) of indices assigned to one worker.
type IndexRange struct {
	Start int // First index (inclusive).
	End   int // Last index (exclusive), End >= Start.
}

// Len returns the number of indices in the range.
func (r IndexRange) Len() int {
	return r.End - r.Start
}

// Contains reports whether i lies inside the range.
func (r IndexRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// String formats the range as [start, end).
func (r IndexRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// ThreadData is what a ranged worker receives: its dense 0-based index
// and the sub-range it owns for the duration of one call.
type ThreadData struct {
	ThreadIndex int
	IndexRange  IndexRange
}

// Partition splits [0, length) into min(workers, length) contiguous ranges.
//
// Sizes differ by at most one element. The first length%numJobs ranges
// receive the extra element, so Partition(9, 4) yields sizes 3, 2, 2, 2.
// A non-positive length yields nil; a non-positive worker count is treated as 1.
func Partition(length, workers int) []IndexRange {
	if length <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	numJobs := min(workers, length)
	itemsPerJob := length / numJobs
	remaining := length - itemsPerJob*numJobs

	// Running cumulative sum of endpoints; bounds[numJobs] == length by construction.
	bounds := make([]int, numJobs+1)
	for d := 0; d < numJobs; d++ {
		items := itemsPerJob
		if d < remaining {
			items++
		}
		bounds[d+1] = bounds[d] + items
	}

	ranges := make([]IndexRange, numJobs)
	for i := range ranges {
		ranges[i] = IndexRange{Start: bounds[i], End: bounds[i+1]}
	}
	return ranges
}

// Sub returns the part of s covered by r.
//
// The result's capacity is capped at its length, so appending to it
// reallocates instead of overwriting the neighbouring worker's elements.
// It panics if r is not within [0, len(s)].
func Sub[T any](s []T, r IndexRange) []T {
	return s[r.Start:r.End:r.End]
}
