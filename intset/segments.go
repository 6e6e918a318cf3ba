package intset

import (
	"iter"
	"sort"
)

// Segment is a maximal contiguous run of positions within a Sorted set whose
// values all fall inside one group of an offset table.
type Segment struct {
	Group int // group index within the offset table
	Start int // first position of the run (inclusive)
	End   int // last position of the run (exclusive)
}

// Segments walks the contiguous runs of set against an offset table.
// offsets has length groupCount+1; group g spans values
// [offsets[g], offsets[g+1]). Each segment is visited once, using binary
// search to jump between group boundaries rather than testing each element.
func Segments(set Sorted, offsets []int32) iter.Seq[Segment] {
	return SegmentsRange(set, offsets, 0, set.Len())
}

// SegmentsRange is Segments restricted to the position range [start, end) of
// the set. Used to segment residues within an already computed chain segment.
func SegmentsRange(set Sorted, offsets []int32, start, end int) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		groups := len(offsets) - 1
		if groups < 1 {
			return // no offset table, nothing to segment against
		}
		i := start
		for i < end {
			v := set.At(i)
			// Group g with offsets[g] <= v < offsets[g+1].
			g := sort.Search(groups, func(g int) bool { return offsets[g+1] > v })
			if g == groups {
				return // value beyond the offset table
			}
			limit := offsets[g+1]
			j := min(set.LowerBound(limit), end)
			if !yield(Segment{Group: g, Start: i, End: j}) {
				return
			}
			i = j
		}
	}
}
