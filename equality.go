package molstruct

import (
	"hash/fnv"
	"slices"
)

// AreUnitAndIndicesEqual reports whether two structures carry the same unit
// ids in the same order with identical element-set contents.
func AreUnitAndIndicesEqual(a, b *Structure) bool {
	if a == b {
		return true
	}
	if len(a.units) != len(b.units) || a.elementCount != b.elementCount {
		return false
	}
	if a.HashCode() != b.HashCode() {
		return false
	}
	for i, ua := range a.units {
		ub := b.units[i]
		if ua.ID != ub.ID || !ua.Elements.Equal(ub.Elements) {
			return false
		}
	}
	return true
}

// AreEquivalent reports whether two structures cover identical geometry,
// allowing different unit ordering or splitting: the multiset of
// (invariant id, element-set content) signatures must match.
func AreEquivalent(a, b *Structure) bool {
	if a == b {
		return true
	}
	if a.elementCount != b.elementCount {
		return false
	}
	return slices.Equal(unitSignatures(a), unitSignatures(b))
}

// AreRootsEqual compares the top-most ancestors with AreUnitAndIndicesEqual.
func AreRootsEqual(a, b *Structure) bool {
	return AreUnitAndIndicesEqual(a.Root(), b.Root())
}

// AreRootsEquivalent compares the top-most ancestors with AreEquivalent.
func AreRootsEquivalent(a, b *Structure) bool {
	return AreEquivalent(a.Root(), b.Root())
}

type unitSignature struct {
	invariant InvariantID
	elements  uint64
}

func unitSignatures(s *Structure) []unitSignature {
	sigs := make([]unitSignature, len(s.units))
	for i, u := range s.units {
		h := fnv.New64a()
		var buf [8]byte
		for _, v := range u.Elements.Values() {
			putUint64(&buf, uint64(v))
			h.Write(buf[:])
		}
		sigs[i] = unitSignature{invariant: u.InvariantID, elements: h.Sum64()}
	}
	slices.SortFunc(sigs, func(a, b unitSignature) int {
		if a.invariant != b.invariant {
			return int(a.invariant) - int(b.invariant)
		}
		switch {
		case a.elements < b.elements:
			return -1
		case a.elements > b.elements:
			return 1
		default:
			return 0
		}
	})
	return sigs
}
