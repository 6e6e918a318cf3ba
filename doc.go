// Package molstruct provides an in-memory engine for large hierarchical
// macromolecular structure data.
//
// A raw flat model (parallel coordinate arrays segmented by chain, residue
// and entity offset tables) is decomposed into a Structure: an ordered
// collection of spatially coherent Units, each an ordered deduplicated
// subset of the model's element indices tagged with a symmetry operator.
// Derived views (hash, spatial lookup, bond graph, symmetry grouping,
// serial numbering) are computed lazily, memoized per Structure, and shared
// across reads. Structures are immutable values: transforms and subsetting
// always produce new Structures that carry provenance back to their root.
//
// # Quick start
//
//	m := model.New("1abc")
//	// ... fill coordinate arrays and offset tables ...
//	b := molstruct.NewBuilder()
//	_ = b.AddModel(context.Background(), m)
//	s, _ := b.Finalize()
//
//	sel := query.Atoms(query.WithResidueTest(isLigand))(s)
//	for unitID, element := range sel.Elements() {
//	    // ...
//	}
//
// The query engine in package query answers hierarchical filter and
// group-by questions via ordered-set segment traversal instead of
// per-element lookups, giving near-linear behavior on large structures.
package molstruct
