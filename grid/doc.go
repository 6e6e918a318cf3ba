// Package grid buckets coordinate subsets into spatially local groups.
//
// Partition lays a uniform grid over the bounding box of the selected
// points, sized so each cell holds roughly Capacity points, and groups
// the input indices by cell. It bounds the element count of any single
// unit for degenerate inputs such as huge solvent shells.
package grid
