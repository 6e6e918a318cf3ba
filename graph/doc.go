// Package graph provides a compact adjacency representation for dense
// element relationships such as bonds.
//
// A Graph stores, for V vertices, a flat neighbor array with per-vertex
// offsets (CSR layout). Each undirected input edge (a,b) occupies two
// directed slots, one per direction, so property arrays indexed by slot can
// carry per-direction payloads. Per-vertex neighbor runs are sorted so edge
// lookup by endpoint pair is a binary search within the run.
//
// Graphs are built through a two-phase EdgeBuilder: the builder is driven
// edge by edge so callers can assign values into externally owned property
// arrays, then finalized exactly once.
package graph
