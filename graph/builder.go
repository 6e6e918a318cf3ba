package graph

import (
	"errors"
	"sort"
)

// ErrFinalized is returned when a write-once edge builder is finalized twice.
var ErrFinalized = errors.New("graph: edge builder already finalized")

// EdgeBuilder constructs a Graph from parallel endpoint arrays a[i], b[i].
//
// The final slot layout (sorted per-vertex neighbor runs) is computed up
// front, so the slots exposed while traversing are the final ones and
// property arrays need no post-finalization permutation.
//
// Duplicate input edges occupy distinct slots; deduplication is the caller's
// responsibility. A self loop (a == b) occupies two slots on its vertex.
//
// The builder is single-owner and write-once: Graph finalizes it, and any
// traversal afterwards fails fast.
type EdgeBuilder struct {
	vertexCount int
	offsets     []int32
	neighbors   []int32
	slotA       []int32 // per input edge, final slot of direction a->b
	slotB       []int32 // per input edge, final slot of direction b->a
	cur         int     // 1-based current edge; 0 before first Next
	edgeCount   int
	finalized   bool
}

// NewEdgeBuilder initializes a builder over vertexCount vertices and the
// input edge list (a[i], b[i]). Both slices must have equal length.
func NewEdgeBuilder(vertexCount int, a, b []int32) *EdgeBuilder {
	if len(a) != len(b) {
		panic("graph: endpoint arrays differ in length")
	}
	n := len(a)
	eb := &EdgeBuilder{
		vertexCount: vertexCount,
		offsets:     make([]int32, vertexCount+1),
		neighbors:   make([]int32, 2*n),
		slotA:       make([]int32, n),
		slotB:       make([]int32, n),
		edgeCount:   n,
	}

	degree := make([]int32, vertexCount)
	for i := 0; i < n; i++ {
		degree[a[i]]++
		degree[b[i]]++
	}
	for v := 0; v < vertexCount; v++ {
		eb.offsets[v+1] = eb.offsets[v] + degree[v]
	}

	// Provisional fill in input order.
	fill := make([]int32, vertexCount)
	for i := 0; i < n; i++ {
		sa := eb.offsets[a[i]] + fill[a[i]]
		fill[a[i]]++
		eb.neighbors[sa] = b[i]
		eb.slotA[i] = sa

		sb := eb.offsets[b[i]] + fill[b[i]]
		fill[b[i]]++
		eb.neighbors[sb] = a[i]
		eb.slotB[i] = sb
	}

	// Sort each vertex run by neighbor and remap the per-edge slots.
	perm := make([]int32, len(eb.neighbors))
	order := make([]int32, 0, 16)
	sorted := make([]int32, len(eb.neighbors))
	for v := 0; v < vertexCount; v++ {
		lo, hi := eb.offsets[v], eb.offsets[v+1]
		order = order[:0]
		for s := lo; s < hi; s++ {
			order = append(order, s)
		}
		sort.SliceStable(order, func(i, j int) bool {
			return eb.neighbors[order[i]] < eb.neighbors[order[j]]
		})
		for k, s := range order {
			final := lo + int32(k)
			sorted[final] = eb.neighbors[s]
			perm[s] = final
		}
	}
	eb.neighbors = sorted
	for i := 0; i < n; i++ {
		eb.slotA[i] = perm[eb.slotA[i]]
		eb.slotB[i] = perm[eb.slotB[i]]
	}

	return eb
}

// EdgeCount returns the number of input edges.
func (eb *EdgeBuilder) EdgeCount() int { return eb.edgeCount }

// SlotCount returns the number of directed slots (2 per input edge).
func (eb *EdgeBuilder) SlotCount() int { return 2 * eb.edgeCount }

// Next advances to the next input edge. It returns false after the last edge
// or once the builder is finalized.
func (eb *EdgeBuilder) Next() bool {
	if eb.finalized || eb.cur >= eb.edgeCount {
		return false
	}
	eb.cur++
	return true
}

// Slots returns the two directed slots of the current edge: first the
// a->b direction, then b->a.
func (eb *EdgeBuilder) Slots() (int32, int32) {
	if eb.cur == 0 {
		panic("graph: Slots before Next")
	}
	return eb.slotA[eb.cur-1], eb.slotB[eb.cur-1]
}

// Assign writes v into both directed slots of the builder's current edge.
// Repeat with different property arrays to build several from one traversal.
func Assign[T any](eb *EdgeBuilder, prop []T, v T) {
	if eb.finalized {
		panic("graph: Assign after finalize")
	}
	sa, sb := eb.Slots()
	prop[sa] = v
	prop[sb] = v
}

// Graph finalizes the builder, attaching the given property arrays (each of
// length SlotCount, indexed by directed slot). The builder must not be used
// afterwards; a second finalization returns ErrFinalized.
func (eb *EdgeBuilder) Graph(props map[string]any) (*Graph, error) {
	if eb.finalized {
		return nil, ErrFinalized
	}
	eb.finalized = true
	return &Graph{
		vertexCount: eb.vertexCount,
		offsets:     eb.offsets,
		neighbors:   eb.neighbors,
		props:       props,
	}, nil
}
