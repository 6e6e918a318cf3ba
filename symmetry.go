package molstruct

// SymmetryGroup collects the units sharing one invariant id: the same chain
// geometry repeated by crystallographic or NCS symmetry under different
// operators.
type SymmetryGroup struct {
	InvariantID InvariantID

	// Units are the group members in unit-sequence order.
	Units []*Unit

	// ElementsIdentical is true when every member carries the same element
	// set, so consumers can process the first member's geometry once.
	ElementsIdentical bool
}

// SymmetryGroups returns the units grouped by invariant id, in first-seen
// order, computing the grouping on first use.
func (s *Structure) SymmetryGroups() []SymmetryGroup {
	return s.symmetryGroups.Get(func() []SymmetryGroup {
		index := make(map[InvariantID]int)
		var groups []SymmetryGroup
		for _, u := range s.units {
			i, ok := index[u.InvariantID]
			if !ok {
				i = len(groups)
				index[u.InvariantID] = i
				groups = append(groups, SymmetryGroup{
					InvariantID:       u.InvariantID,
					ElementsIdentical: true,
				})
			}
			g := &groups[i]
			if len(g.Units) > 0 && !g.Units[0].Elements.Equal(u.Elements) {
				g.ElementsIdentical = false
			}
			g.Units = append(g.Units, u)
		}
		return groups
	})
}
