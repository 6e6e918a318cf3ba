package intset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSorted(t *testing.T) {
	t.Run("FromValues", func(t *testing.T) {
		s := FromValues(5, 1, 3, 1, 5, 2)
		assert.Equal(t, []int32{1, 2, 3, 5}, s.Values())
		assert.Equal(t, 4, s.Len())
		assert.True(t, s.Has(3))
		assert.False(t, s.Has(4))
		assert.Equal(t, 2, s.IndexOf(3))
		assert.Equal(t, -1, s.IndexOf(4))
	})

	t.Run("LowerBound", func(t *testing.T) {
		s := FromValues(1, 3, 5)
		assert.Equal(t, 0, s.LowerBound(0))
		assert.Equal(t, 1, s.LowerBound(2))
		assert.Equal(t, 1, s.LowerBound(3))
		assert.Equal(t, 3, s.LowerBound(6))
	})

	t.Run("FromRange", func(t *testing.T) {
		s := FromRange(2, 6)
		assert.Equal(t, []int32{2, 3, 4, 5}, s.Values())
		assert.True(t, FromRange(3, 3).IsEmpty())
	})

	t.Run("Union", func(t *testing.T) {
		u := Union(FromValues(1, 2), FromValues(2, 3), FromValues(0))
		assert.Equal(t, []int32{0, 1, 2, 3}, u.Values())
	})

	t.Run("Equal", func(t *testing.T) {
		assert.True(t, FromValues(1, 2, 3).Equal(FromValues(3, 2, 1)))
		assert.False(t, FromValues(1, 2).Equal(FromValues(1, 2, 3)))
		assert.True(t, Sorted{}.Equal(FromValues()))
	})

	t.Run("All", func(t *testing.T) {
		s := FromValues(7, 9)
		var got []int32
		for _, v := range s.All() {
			got = append(got, v)
		}
		assert.Equal(t, []int32{7, 9}, got)
	})
}

func TestBuilder(t *testing.T) {
	t.Run("AccumulatesSortedDeduplicated", func(t *testing.T) {
		b := NewBuilder()
		b.Add(9)
		b.Add(1)
		b.Add(9)
		b.AddRange(3, 6)
		assert.Equal(t, 5, b.Len())

		s, err := b.Finalize()
		require.NoError(t, err)
		assert.Equal(t, []int32{1, 3, 4, 5, 9}, s.Values())
	})

	t.Run("WriteOnce", func(t *testing.T) {
		b := NewBuilder()
		b.Add(1)
		_, err := b.Finalize()
		require.NoError(t, err)

		_, err = b.Finalize()
		assert.ErrorIs(t, err, ErrFinalized)
		assert.Panics(t, func() { b.Add(2) })
	})
}

func TestSegments(t *testing.T) {
	// Three groups: [0,4), [4,6), [6,10).
	offsets := []int32{0, 4, 6, 10}

	t.Run("WalksContiguousRuns", func(t *testing.T) {
		s := FromValues(1, 2, 5, 6, 9)
		var got []Segment
		for seg := range Segments(s, offsets) {
			got = append(got, seg)
		}
		assert.Equal(t, []Segment{
			{Group: 0, Start: 0, End: 2},
			{Group: 1, Start: 2, End: 3},
			{Group: 2, Start: 3, End: 5},
		}, got)
	})

	t.Run("SkipsEmptyGroups", func(t *testing.T) {
		s := FromValues(0, 7)
		var groups []int
		for seg := range Segments(s, offsets) {
			groups = append(groups, seg.Group)
		}
		assert.Equal(t, []int{0, 2}, groups)
	})

	t.Run("Range", func(t *testing.T) {
		s := FromValues(1, 2, 5, 6, 9)
		var got []Segment
		for seg := range SegmentsRange(s, offsets, 2, 4) {
			got = append(got, seg)
		}
		assert.Equal(t, []Segment{
			{Group: 1, Start: 2, End: 3},
			{Group: 2, Start: 3, End: 4},
		}, got)
	})

	t.Run("EmptySet", func(t *testing.T) {
		for range Segments(Sorted{}, offsets) {
			t.Fatal("unexpected segment")
		}
	})

	t.Run("NoOffsetTable", func(t *testing.T) {
		s := FromValues(0, 1, 2)
		for range Segments(s, nil) {
			t.Fatal("unexpected segment")
		}
		for range Segments(s, []int32{0}) {
			t.Fatal("unexpected segment")
		}
	})
}
