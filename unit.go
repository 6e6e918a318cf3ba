package molstruct

import (
	"github.com/hupe1980/molstruct/intset"
	"github.com/hupe1980/molstruct/model"
	"github.com/hupe1980/molstruct/symop"
)

// UnitID uniquely identifies a unit within a structure. Unit ids are the
// sort and lookup key of the unit sequence.
type UnitID int32

// InvariantID is shared by units that are geometrically identical up to
// their symmetry operator (symmetry-equivalent copies).
type InvariantID int32

// ChainGroupID is shared by units produced by spatially partitioning one
// original logical chain, so partition artifacts can be re-merged
// conceptually.
type ChainGroupID int32

// Traits are flags describing how a unit was produced.
type Traits uint8

const (
	// TraitPartitioned marks units emitted by spatial partitioning that
	// split a chain into more than one bucket.
	TraitPartitioned Traits = 1 << iota
	// TraitMultiChain marks units covering several merged single-element
	// residue chains.
	TraitMultiChain
)

// Has reports whether all given trait flags are set.
func (t Traits) Has(flags Traits) bool { return t&flags == flags }

// Unit is one spatially and logically coherent subset of a model's
// elements. Units are immutable after construction; the element set is
// strictly increasing and deduplicated.
type Unit struct {
	ID           UnitID
	InvariantID  InvariantID
	ChainGroupID ChainGroupID
	Kind         model.Kind
	Traits       Traits

	// Operator positions the unit's copy of the geometry.
	Operator symop.Operator

	// Elements are indices into the owning model's element arrays.
	Elements intset.Sorted

	// Model is the owning model, shared and never mutated.
	Model *model.Model
}

// ElementCount returns the number of elements in the unit.
func (u *Unit) ElementCount() int { return u.Elements.Len() }

// Position returns the transformed coordinates of the element at local
// position i, with the unit's symmetry operator applied.
func (u *Unit) Position(i int) (float64, float64, float64) {
	e := u.Elements.At(i)
	return u.Operator.Apply(float64(u.Model.X[e]), float64(u.Model.Y[e]), float64(u.Model.Z[e]))
}

// withOperator returns a copy of the unit carrying op composed on top of
// the unit's current operator. Identity and element set are preserved.
func (u *Unit) withOperator(op symop.Operator) *Unit {
	c := *u
	c.Operator = symop.Compose(op, u.Operator)
	return &c
}
