// Package model defines the input-model boundary: hierarchical element
// arrays segmented by chain, residue and entity offset tables, plus parallel
// coordinate arrays. The engine consumes models and never mutates them.
package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Kind classifies a chain's element representation.
type Kind uint8

const (
	// KindAtomic chains carry one element per atom.
	KindAtomic Kind = iota
	// KindSpheres chains carry coarse sphere elements.
	KindSpheres
	// KindGaussians chains carry coarse gaussian elements.
	KindGaussians
)

func (k Kind) String() string {
	switch k {
	case KindAtomic:
		return "atomic"
	case KindSpheres:
		return "spheres"
	case KindGaussians:
		return "gaussians"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Chain describes one chain segment of a model.
type Chain struct {
	// Entity is the entity key the chain belongs to.
	Entity string
	// AuthAsymID is the author-assigned chain identifier.
	AuthAsymID string
	// Kind is the element representation of the chain.
	Kind Kind
	// Water marks solvent chains.
	Water bool
}

// Model is one raw hierarchical model: parallel coordinate arrays over a
// dense element index space, segmented by chain and residue offset tables.
// Residue boundaries always nest inside chain boundaries.
type Model struct {
	ID    uuid.UUID
	Label string

	X, Y, Z []float32

	// ChainOffsets has length ChainCount+1; chain c spans elements
	// [ChainOffsets[c], ChainOffsets[c+1]).
	ChainOffsets []int32

	// ResidueOffsets has length ResidueCount+1, in element space.
	ResidueOffsets []int32

	// ResidueNames has length ResidueCount. May be nil when unknown.
	ResidueNames []string

	Chains []Chain
}

// New creates an empty model with a fresh identity.
func New(label string) *Model {
	return &Model{ID: uuid.New(), Label: label}
}

// ElementCount returns the total number of elements.
func (m *Model) ElementCount() int { return len(m.X) }

// ChainCount returns the number of chains.
func (m *Model) ChainCount() int { return len(m.Chains) }

// ResidueCount returns the number of residues.
func (m *Model) ResidueCount() int { return len(m.ResidueOffsets) - 1 }

// ChainElementRange returns the element range [start, end) of chain c.
func (m *Model) ChainElementRange(c int) (int32, int32) {
	return m.ChainOffsets[c], m.ChainOffsets[c+1]
}

// ResidueElementRange returns the element range [start, end) of residue r.
func (m *Model) ResidueElementRange(r int) (int32, int32) {
	return m.ResidueOffsets[r], m.ResidueOffsets[r+1]
}

// ChainResidueRange returns the residue range [start, end) of chain c.
func (m *Model) ChainResidueRange(c int) (int, int) {
	lo, hi := m.ChainElementRange(c)
	n := m.ResidueCount()
	start := sort.Search(n, func(r int) bool { return m.ResidueOffsets[r] >= lo })
	end := start + sort.Search(n-start, func(r int) bool { return m.ResidueOffsets[start+r] >= hi })
	return start, end
}

// ResidueOf returns the residue index containing element e.
func (m *Model) ResidueOf(e int32) int {
	n := m.ResidueCount()
	return sort.Search(n, func(r int) bool { return m.ResidueOffsets[r+1] > e })
}

// ChainOf returns the chain index containing element e.
func (m *Model) ChainOf(e int32) int {
	n := m.ChainCount()
	return sort.Search(n, func(c int) bool { return m.ChainOffsets[c+1] > e })
}

// EntityOf returns the entity key of chain c.
func (m *Model) EntityOf(c int) string { return m.Chains[c].Entity }

// IsWater reports whether chain c is a solvent chain.
func (m *Model) IsWater(c int) bool { return m.Chains[c].Water }

// Validate checks internal consistency of the offset tables.
func (m *Model) Validate() error {
	n := int32(len(m.X))
	if len(m.Y) != int(n) || len(m.Z) != int(n) {
		return fmt.Errorf("model %q: coordinate arrays differ in length", m.Label)
	}
	if len(m.ChainOffsets) != len(m.Chains)+1 {
		return fmt.Errorf("model %q: chain offsets/chains mismatch", m.Label)
	}
	if err := checkOffsets("chain", m.ChainOffsets, n); err != nil {
		return fmt.Errorf("model %q: %w", m.Label, err)
	}
	if len(m.ResidueOffsets) == 0 && n > 0 {
		return fmt.Errorf("model %q: residue offsets missing", m.Label)
	}
	if len(m.ResidueOffsets) > 0 {
		if err := checkOffsets("residue", m.ResidueOffsets, n); err != nil {
			return fmt.Errorf("model %q: %w", m.Label, err)
		}
		if m.ResidueNames != nil && len(m.ResidueNames) != m.ResidueCount() {
			return fmt.Errorf("model %q: residue names/offsets mismatch", m.Label)
		}
		// Every chain boundary must also be a residue boundary.
		for _, co := range m.ChainOffsets {
			i := sort.Search(len(m.ResidueOffsets), func(i int) bool { return m.ResidueOffsets[i] >= co })
			if i == len(m.ResidueOffsets) || m.ResidueOffsets[i] != co {
				return fmt.Errorf("model %q: chain boundary %d splits a residue", m.Label, co)
			}
		}
	}
	return nil
}

func checkOffsets(kind string, offsets []int32, total int32) error {
	if len(offsets) == 0 || offsets[0] != 0 {
		return fmt.Errorf("%s offsets must start at 0", kind)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return fmt.Errorf("%s offsets not monotonic at %d", kind, i)
		}
	}
	if offsets[len(offsets)-1] != total {
		return fmt.Errorf("%s offsets do not cover all %d elements", kind, total)
	}
	return nil
}
