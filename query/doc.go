// Package query answers hierarchical filter and group-by questions over a
// structure.
//
// A query is a pure function from Structure to Selection. Filtering is
// expressed as up to four predicates over an element location, one per
// hierarchy level (entity, chain, residue, atom), plus an optional group-by
// key function. Execution walks each unit's sorted element set through
// chain and residue segment iterators, evaluating the entity, chain and
// residue predicates once per segment on a representative element instead
// of once per element, giving near-linear behavior on large structures.
package query
