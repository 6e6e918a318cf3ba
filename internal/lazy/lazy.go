// Package lazy provides a compute-once cell for memoized derived state.
package lazy

import "sync"

// Cell memoizes a single value: the first Get computes and stores it, later
// calls return the stored value. The transition happens exactly once, so a
// cell is safe to share between readers that pre-warm it.
type Cell[T any] struct {
	once  sync.Once
	value T
}

// Get returns the memoized value, computing it on first use.
func (c *Cell[T]) Get(compute func() T) T {
	c.once.Do(func() {
		c.value = compute()
	})
	return c.value
}
