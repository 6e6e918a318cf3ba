package testutil

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/hupe1980/molstruct/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewSource(r.seed)) // nolint gosec
}

// Coords returns n coordinates uniformly drawn from [0, extent).
func (r *RNG) Coords(n int, extent float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]float32, n)
	for i := range out {
		out[i] = r.rand.Float32() * extent
	}
	return out
}

// ChainSpec describes one chain of a fixture model.
type ChainSpec struct {
	AuthAsymID   string
	Entity       string
	Kind         model.Kind
	Water        bool
	Residues     int
	AtomsPerRes  int
	ResidueNames []string // optional; defaults to RES0, RES1, ...
}

// ProteinChain is a polymer chain of the given residue and per-residue atom
// counts.
func ProteinChain(auth, entity string, residues, atomsPerRes int) ChainSpec {
	return ChainSpec{AuthAsymID: auth, Entity: entity, Residues: residues, AtomsPerRes: atomsPerRes}
}

// WaterChain is a solvent chain of single-atom residues.
func WaterChain(auth string, residues int) ChainSpec {
	return ChainSpec{AuthAsymID: auth, Entity: "water", Water: true, Residues: residues, AtomsPerRes: 1}
}

// IonChain is a single-residue, single-atom chain of the given entity.
func IonChain(auth, entity string) ChainSpec {
	return ChainSpec{AuthAsymID: auth, Entity: entity, Residues: 1, AtomsPerRes: 1}
}

// CoarseChain is a coarse chain of the given kind with one element per
// residue.
func CoarseChain(auth, entity string, kind model.Kind, residues int) ChainSpec {
	return ChainSpec{AuthAsymID: auth, Entity: entity, Kind: kind, Residues: residues, AtomsPerRes: 1}
}

// BuildModel assembles a valid model from chain specs. Coordinates are laid
// out on a deterministic diagonal so spatial partitioning is reproducible.
func BuildModel(label string, chains ...ChainSpec) *model.Model {
	m := model.New(label)
	m.ChainOffsets = []int32{0}
	m.ResidueOffsets = []int32{0}

	e := int32(0)
	for _, spec := range chains {
		for r := 0; r < spec.Residues; r++ {
			name := fmt.Sprintf("RES%d", r)
			if spec.ResidueNames != nil {
				name = spec.ResidueNames[r]
			}
			m.ResidueNames = append(m.ResidueNames, name)
			for a := 0; a < spec.AtomsPerRes; a++ {
				m.X = append(m.X, float32(e))
				m.Y = append(m.Y, float32(e)*0.5)
				m.Z = append(m.Z, float32(e)*0.25)
				e++
			}
			m.ResidueOffsets = append(m.ResidueOffsets, e)
		}
		m.ChainOffsets = append(m.ChainOffsets, e)
		m.Chains = append(m.Chains, model.Chain{
			Entity:     spec.Entity,
			AuthAsymID: spec.AuthAsymID,
			Kind:       spec.Kind,
			Water:      spec.Water,
		})
	}
	return m
}
