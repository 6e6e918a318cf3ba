package intset

import (
	"iter"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
)

// Sorted is an immutable, strictly increasing, deduplicated set of
// non-negative int32 indices with O(1) positional access.
//
// The zero value is the empty set.
type Sorted struct {
	vals []int32
}

// FromValues builds a Sorted set from arbitrary (unordered, possibly
// duplicated) values. Values must be non-negative.
func FromValues(values ...int32) Sorted {
	rb := roaring.New()
	for _, v := range values {
		rb.Add(uint32(v))
	}
	return fromBitmap(rb)
}

// FromRange builds the set {start, start+1, ..., end-1}.
func FromRange(start, end int32) Sorted {
	if end <= start {
		return Sorted{}
	}
	vals := make([]int32, end-start)
	for i := range vals {
		vals[i] = start + int32(i)
	}
	return Sorted{vals: vals}
}

// Union returns the union of the given sets.
func Union(sets ...Sorted) Sorted {
	rb := roaring.New()
	for _, s := range sets {
		for _, v := range s.vals {
			rb.Add(uint32(v))
		}
	}
	return fromBitmap(rb)
}

func fromBitmap(rb *roaring.Bitmap) Sorted {
	arr := rb.ToArray()
	if len(arr) == 0 {
		return Sorted{}
	}
	vals := make([]int32, len(arr))
	for i, v := range arr {
		vals[i] = int32(v)
	}
	return Sorted{vals: vals}
}

// Len returns the number of elements in the set.
func (s Sorted) Len() int { return len(s.vals) }

// IsEmpty returns true if the set has no elements.
func (s Sorted) IsEmpty() bool { return len(s.vals) == 0 }

// At returns the value at position i.
func (s Sorted) At(i int) int32 { return s.vals[i] }

// Values returns the backing slice. Callers must not modify it.
func (s Sorted) Values() []int32 { return s.vals }

// Has reports whether v is a member of the set.
func (s Sorted) Has(v int32) bool { return s.IndexOf(v) >= 0 }

// IndexOf returns the position of v within the set, or -1 if absent.
func (s Sorted) IndexOf(v int32) int {
	i := sort.Search(len(s.vals), func(i int) bool { return s.vals[i] >= v })
	if i < len(s.vals) && s.vals[i] == v {
		return i
	}
	return -1
}

// LowerBound returns the first position whose value is >= v.
func (s Sorted) LowerBound(v int32) int {
	return sort.Search(len(s.vals), func(i int) bool { return s.vals[i] >= v })
}

// Equal reports whether two sets contain exactly the same values.
func (s Sorted) Equal(o Sorted) bool {
	if len(s.vals) != len(o.vals) {
		return false
	}
	for i, v := range s.vals {
		if o.vals[i] != v {
			return false
		}
	}
	return true
}

// All iterates over (position, value) pairs in increasing order.
func (s Sorted) All() iter.Seq2[int, int32] {
	return func(yield func(int, int32) bool) {
		for i, v := range s.vals {
			if !yield(i, v) {
				return
			}
		}
	}
}
