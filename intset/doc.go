// Package intset provides sorted, deduplicated integer index sets and
// segment iteration over them.
//
// A Sorted set stores element indices in strictly increasing order and
// supports O(1) positional access. Segments walks the contiguous runs of a
// set that fall inside the groups of an offset table (chain or residue
// boundaries), visiting each boundary once instead of each element.
package intset
