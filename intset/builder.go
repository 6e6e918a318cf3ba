package intset

import (
	"errors"

	"github.com/RoaringBitmap/roaring/v2"
)

// ErrFinalized is returned when a write-once builder is used after Finalize.
var ErrFinalized = errors.New("intset: builder already finalized")

// Builder accumulates indices into a Sorted set. It is a single-owner,
// write-once object: Finalize consumes it and any further use fails.
type Builder struct {
	rb        *roaring.Bitmap
	finalized bool
}

// NewBuilder creates an empty set builder.
func NewBuilder() *Builder {
	return &Builder{rb: roaring.New()}
}

// Add inserts v into the set under construction. Duplicates are absorbed.
func (b *Builder) Add(v int32) {
	if b.finalized {
		panic("intset: Add after Finalize")
	}
	b.rb.Add(uint32(v))
}

// AddRange inserts the half-open range [start, end).
func (b *Builder) AddRange(start, end int32) {
	if b.finalized {
		panic("intset: AddRange after Finalize")
	}
	if end > start {
		b.rb.AddRange(uint64(start), uint64(end))
	}
}

// Len returns the number of distinct values added so far.
func (b *Builder) Len() int {
	return int(b.rb.GetCardinality())
}

// Finalize produces the Sorted set and invalidates the builder.
func (b *Builder) Finalize() (Sorted, error) {
	if b.finalized {
		return Sorted{}, ErrFinalized
	}
	b.finalized = true
	return fromBitmap(b.rb), nil
}
