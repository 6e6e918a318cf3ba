package graph

import "sort"

// NotFound is the sentinel slot returned by EdgeIndex when no edge connects
// the queried endpoints. Absence is an expected, checkable outcome.
const NotFound = int32(-1)

// Graph is an immutable compact adjacency structure over int32 vertices.
type Graph struct {
	vertexCount int
	offsets     []int32 // len vertexCount+1
	neighbors   []int32 // len slotCount, sorted within each vertex run
	props       map[string]any
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return g.vertexCount }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return len(g.neighbors) / 2 }

// SlotCount returns the number of directed edge slots (2 per edge).
func (g *Graph) SlotCount() int { return len(g.neighbors) }

// VertexEdgeCount returns the degree of vertex v.
func (g *Graph) VertexEdgeCount(v int32) int {
	return int(g.offsets[v+1] - g.offsets[v])
}

// Neighbor returns the other endpoint stored at the given directed slot.
func (g *Graph) Neighbor(slot int32) int32 { return g.neighbors[slot] }

// EdgeIndex returns the directed slot for the edge a->b, or NotFound if no
// such edge exists. With duplicate input edges any one matching slot may be
// returned.
func (g *Graph) EdgeIndex(a, b int32) int32 {
	lo, hi := int(g.offsets[a]), int(g.offsets[a+1])
	i := lo + sort.Search(hi-lo, func(k int) bool { return g.neighbors[lo+k] >= b })
	if i < hi && g.neighbors[i] == b {
		return int32(i)
	}
	return NotFound
}

// Prop returns the property array attached under name, typed as []T.
// The second result is false when the name is absent or the type differs.
func Prop[T any](g *Graph, name string) ([]T, bool) {
	p, ok := g.props[name].([]T)
	return p, ok
}
