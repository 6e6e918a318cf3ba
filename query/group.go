package query

import (
	"github.com/hupe1980/molstruct"
	"github.com/hupe1980/molstruct/intset"
)

// groupAccumulator routes passing elements into one growing subset builder
// per distinct group key, in first-seen-key order.
type groupAccumulator struct {
	order   []any
	builder map[any]*subsetBuilder
}

type subsetBuilder struct {
	units    []molstruct.UnitID
	elements []*intset.Builder
	count    int
}

func newGroupAccumulator() *groupAccumulator {
	return &groupAccumulator{builder: make(map[any]*subsetBuilder)}
}

func (a *groupAccumulator) add(key any, unit molstruct.UnitID, element int32) {
	sb, ok := a.builder[key]
	if !ok {
		sb = &subsetBuilder{}
		a.builder[key] = sb
		a.order = append(a.order, key)
	}
	if n := len(sb.units); n == 0 || sb.units[n-1] != unit {
		sb.units = append(sb.units, unit)
		sb.elements = append(sb.elements, intset.NewBuilder())
	}
	sb.elements[len(sb.elements)-1].Add(element)
	sb.count++
}

// selection materializes the groups. When every group accumulated exactly
// one element the singleton shape is returned, so downstream consumers that
// expect per-group representative picks get them without double
// representation; any larger group forces the subsets shape.
func (a *groupAccumulator) selection() Selection {
	if len(a.order) == 0 {
		return Empty
	}

	singletons := true
	for _, key := range a.order {
		if a.builder[key].count != 1 {
			singletons = false
			break
		}
	}

	if singletons {
		picks := make([]Pick, 0, len(a.order))
		for _, key := range a.order {
			sb := a.builder[key]
			set, err := sb.elements[0].Finalize()
			if err != nil || set.IsEmpty() {
				continue // unreachable: builders are local
			}
			picks = append(picks, Pick{Unit: sb.units[0], Element: set.At(0)})
		}
		return NewSingletons(picks...)
	}

	subsets := make([]Subset, 0, len(a.order))
	for _, key := range a.order {
		sb := a.builder[key]
		var subset Subset
		for i, unit := range sb.units {
			set, err := sb.elements[i].Finalize()
			if err != nil || set.IsEmpty() {
				continue
			}
			subset = append(subset, UnitElements{Unit: unit, Elements: set})
		}
		if len(subset) > 0 {
			subsets = append(subsets, subset)
		}
	}
	return NewSubsets(subsets...)
}
