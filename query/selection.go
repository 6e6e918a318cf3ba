package query

import (
	"iter"

	"github.com/hupe1980/molstruct"
	"github.com/hupe1980/molstruct/intset"
)

// Kind is the shape of a selection.
type Kind uint8

const (
	// KindEmpty is the shape of a selection with no elements.
	KindEmpty Kind = iota
	// KindSingletons marks a selection of one element per logical group.
	KindSingletons
	// KindSubsets marks a selection of disjoint element subsets.
	KindSubsets
)

// UnitElements is a slice of one subset restricted to one unit.
type UnitElements struct {
	Unit     molstruct.UnitID
	Elements intset.Sorted
}

// Subset is one logical group of a selection: its elements in unit order.
type Subset []UnitElements

// ElementCount returns the number of elements in the subset.
func (s Subset) ElementCount() int {
	n := 0
	for _, ue := range s {
		n += ue.Elements.Len()
	}
	return n
}

// Pick is a single selected element.
type Pick struct {
	Unit    molstruct.UnitID
	Element int32
}

// Selection is the result of a query: empty, a set of singleton element
// picks, or a sequence of disjoint element subsets. The shapes are never
// mixed within one selection.
type Selection struct {
	kind    Kind
	subsets []Subset
}

// Empty is the inert empty selection.
var Empty = Selection{}

// NewSubsets builds a subsets-shaped selection, dropping empty subsets.
func NewSubsets(subsets ...Subset) Selection {
	kept := subsets[:0:0]
	for _, ss := range subsets {
		if ss.ElementCount() > 0 {
			kept = append(kept, ss)
		}
	}
	if len(kept) == 0 {
		return Empty
	}
	return Selection{kind: KindSubsets, subsets: kept}
}

// NewSingletons builds a singletons-shaped selection from one pick per
// logical group.
func NewSingletons(picks ...Pick) Selection {
	if len(picks) == 0 {
		return Empty
	}
	subsets := make([]Subset, len(picks))
	for i, p := range picks {
		subsets[i] = Subset{{Unit: p.Unit, Elements: intset.FromValues(p.Element)}}
	}
	return Selection{kind: KindSingletons, subsets: subsets}
}

// Kind returns the selection's shape.
func (s Selection) Kind() Kind { return s.kind }

// IsEmpty reports whether the selection holds no elements.
func (s Selection) IsEmpty() bool { return len(s.subsets) == 0 }

// Len returns the number of subsets (or picks, for the singleton shape).
func (s Selection) Len() int { return len(s.subsets) }

// Subset returns the i-th subset.
func (s Selection) Subset(i int) Subset { return s.subsets[i] }

// Picks returns the selection as one pick per subset. Only valid for the
// singletons shape.
func (s Selection) Picks() []Pick {
	if s.kind != KindSingletons {
		return nil
	}
	picks := make([]Pick, len(s.subsets))
	for i, ss := range s.subsets {
		picks[i] = Pick{Unit: ss[0].Unit, Element: ss[0].Elements.At(0)}
	}
	return picks
}

// ElementCount returns the total number of selected elements.
func (s Selection) ElementCount() int {
	n := 0
	for _, ss := range s.subsets {
		n += ss.ElementCount()
	}
	return n
}

// Elements iterates over all (unit id, element index) pairs across all
// subsets.
func (s Selection) Elements() iter.Seq2[molstruct.UnitID, int32] {
	return func(yield func(molstruct.UnitID, int32) bool) {
		for _, ss := range s.subsets {
			for _, ue := range ss {
				for _, v := range ue.Elements.Values() {
					if !yield(ue.Unit, v) {
						return
					}
				}
			}
		}
	}
}
