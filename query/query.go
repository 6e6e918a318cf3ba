package query

import (
	"github.com/hupe1980/molstruct"
	"github.com/hupe1980/molstruct/intset"
)

// Location identifies one element while a query runs: the current unit and
// the element's global index within the unit's model.
type Location struct {
	Unit    *molstruct.Unit
	Element int32
}

// Predicate is an arbitrary caller-supplied test over a location. A nil
// predicate passes everything.
type Predicate func(l Location) bool

// GroupKey maps a location to a comparable grouping key.
type GroupKey func(l Location) any

// Options configures a query. Each predicate tests one hierarchy level and
// defaults to always-true when unset.
type Options struct {
	EntityTest  Predicate
	ChainTest   Predicate
	ResidueTest Predicate
	AtomTest    Predicate
	GroupBy     GroupKey
}

// WithEntityTest sets the entity-level predicate.
func WithEntityTest(p Predicate) func(o *Options) {
	return func(o *Options) { o.EntityTest = p }
}

// WithChainTest sets the chain-level predicate.
func WithChainTest(p Predicate) func(o *Options) {
	return func(o *Options) { o.ChainTest = p }
}

// WithResidueTest sets the residue-level predicate.
func WithResidueTest(p Predicate) func(o *Options) {
	return func(o *Options) { o.ResidueTest = p }
}

// WithAtomTest sets the atom-level predicate.
func WithAtomTest(p Predicate) func(o *Options) {
	return func(o *Options) { o.AtomTest = p }
}

// WithGroupBy sets the grouping key function.
func WithGroupBy(k GroupKey) func(o *Options) {
	return func(o *Options) { o.GroupBy = k }
}

// Fn is a compiled query: a pure function from structure to selection.
type Fn func(s *molstruct.Structure) Selection

// Atoms compiles a hierarchical element query. Execution picks one of three
// equivalent strategies based on which options are present: a trivial
// full-structure selection, a flat atom-only scan, or segmented traversal
// with per-segment representative predicate evaluation.
func Atoms(optFns ...func(o *Options)) Fn {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	switch {
	case opts.EntityTest == nil && opts.ChainTest == nil &&
		opts.ResidueTest == nil && opts.AtomTest == nil && opts.GroupBy == nil:
		return allElements
	case opts.EntityTest == nil && opts.ChainTest == nil &&
		opts.ResidueTest == nil && opts.GroupBy == nil:
		return func(s *molstruct.Structure) Selection {
			return flatFilter(s, opts.AtomTest)
		}
	default:
		return func(s *molstruct.Structure) Selection {
			return segmentedFilter(s, opts)
		}
	}
}

// allElements returns the structure's full element set as one selection.
func allElements(s *molstruct.Structure) Selection {
	var subset Subset
	for _, u := range s.Units() {
		subset = append(subset, UnitElements{Unit: u.ID, Elements: u.Elements})
	}
	return NewSubsets(subset)
}

// flatFilter scans every unit's elements against the atom predicate and
// combines the survivors into one selection.
func flatFilter(s *molstruct.Structure, atomTest Predicate) Selection {
	var subset Subset
	for _, u := range s.Units() {
		b := intset.NewBuilder()
		for _, e := range u.Elements.Values() {
			if atomTest(Location{Unit: u, Element: e}) {
				b.Add(e)
			}
		}
		if set, err := b.Finalize(); err == nil && !set.IsEmpty() {
			subset = append(subset, UnitElements{Unit: u.ID, Elements: set})
		}
	}
	if len(subset) == 0 {
		return Empty
	}
	return NewSubsets(subset)
}

// segmentedFilter walks chain and residue segments of every unit,
// evaluating entity and chain predicates once per chain segment and the
// residue predicate once per residue segment, each on the segment's first
// element as representative.
func segmentedFilter(s *molstruct.Structure, opts Options) Selection {
	var acc *groupAccumulator
	if opts.GroupBy != nil {
		acc = newGroupAccumulator()
	}

	var subset Subset
	for _, u := range s.Units() {
		m := u.Model
		var unitSet *intset.Builder
		if acc == nil {
			unitSet = intset.NewBuilder()
		}

		for chainSeg := range intset.Segments(u.Elements, m.ChainOffsets) {
			rep := Location{Unit: u, Element: u.Elements.At(chainSeg.Start)}
			if !pass(opts.EntityTest, rep) || !pass(opts.ChainTest, rep) {
				continue
			}
			for resSeg := range intset.SegmentsRange(u.Elements, m.ResidueOffsets, chainSeg.Start, chainSeg.End) {
				resRep := Location{Unit: u, Element: u.Elements.At(resSeg.Start)}
				if !pass(opts.ResidueTest, resRep) {
					continue
				}
				for i := resSeg.Start; i < resSeg.End; i++ {
					loc := Location{Unit: u, Element: u.Elements.At(i)}
					if !pass(opts.AtomTest, loc) {
						continue
					}
					if acc != nil {
						acc.add(opts.GroupBy(loc), u.ID, loc.Element)
					} else {
						unitSet.Add(loc.Element)
					}
				}
			}
		}

		if acc == nil {
			if set, err := unitSet.Finalize(); err == nil && !set.IsEmpty() {
				subset = append(subset, UnitElements{Unit: u.ID, Elements: set})
			}
		}
	}

	if acc != nil {
		return acc.selection()
	}
	if len(subset) == 0 {
		return Empty
	}
	return NewSubsets(subset)
}

func pass(p Predicate, l Location) bool {
	return p == nil || p(l)
}
