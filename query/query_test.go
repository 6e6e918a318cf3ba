package query

import (
	"context"
	"testing"

	"github.com/hupe1980/molstruct"
	"github.com/hupe1980/molstruct/model"
	"github.com/hupe1980/molstruct/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildStructure(t *testing.T, m *model.Model) *molstruct.Structure {
	t.Helper()
	b := molstruct.NewBuilder()
	require.NoError(t, b.AddModel(context.Background(), m))
	s, err := b.Finalize()
	require.NoError(t, err)
	return s
}

func fixture(t *testing.T) *molstruct.Structure {
	return buildStructure(t, testutil.BuildModel("fixture",
		testutil.ProteinChain("A", "ent1", 2, 3),
		testutil.WaterChain("W", 4),
	))
}

// unevenResidues builds one chain with residue sizes 1 and 3.
func unevenResidues(t *testing.T) *molstruct.Structure {
	m := model.New("uneven")
	m.X = make([]float32, 4)
	m.Y = make([]float32, 4)
	m.Z = make([]float32, 4)
	m.ChainOffsets = []int32{0, 4}
	m.ResidueOffsets = []int32{0, 1, 4}
	m.Chains = []model.Chain{{Entity: "e", AuthAsymID: "A"}}
	return buildStructure(t, m)
}

func TestAtoms(t *testing.T) {
	t.Run("AllDefaultsSelectEverything", func(t *testing.T) {
		s := fixture(t)
		sel := Atoms()(s)

		assert.Equal(t, KindSubsets, sel.Kind())
		assert.Equal(t, 1, sel.Len())
		assert.Equal(t, s.ElementCount(), sel.ElementCount())
	})

	t.Run("EmptyStructure", func(t *testing.T) {
		s, err := molstruct.New(nil)
		require.NoError(t, err)
		sel := Atoms()(s)
		assert.True(t, sel.IsEmpty())
		assert.Equal(t, KindEmpty, sel.Kind())
	})

	t.Run("AtomOnlyFilter", func(t *testing.T) {
		s := fixture(t)
		sel := Atoms(WithAtomTest(func(l Location) bool {
			return l.Element%2 == 0
		}))(s)

		assert.Equal(t, 5, sel.ElementCount())
		for _, e := range sel.Elements() {
			assert.Zero(t, e%2)
		}
	})

	t.Run("ChainFilterSelectsWaterOnly", func(t *testing.T) {
		s := fixture(t)
		sel := Atoms(WithChainTest(func(l Location) bool {
			return l.Unit.Model.IsWater(l.Unit.Model.ChainOf(l.Element))
		}))(s)

		assert.Equal(t, 4, sel.ElementCount())
	})

	t.Run("EntityFilter", func(t *testing.T) {
		s := fixture(t)
		sel := Atoms(WithEntityTest(func(l Location) bool {
			return l.Unit.Model.EntityOf(l.Unit.Model.ChainOf(l.Element)) == "ent1"
		}))(s)

		assert.Equal(t, 6, sel.ElementCount())
	})

	t.Run("ResidueFilter", func(t *testing.T) {
		s := fixture(t)
		// Keep only the first residue of each chain.
		sel := Atoms(WithResidueTest(func(l Location) bool {
			m := l.Unit.Model
			r := m.ResidueOf(l.Element)
			c := m.ChainOf(l.Element)
			start, _ := m.ChainResidueRange(c)
			return r == start
		}))(s)

		assert.Equal(t, 3+1, sel.ElementCount())
	})

	t.Run("StrategiesAgree", func(t *testing.T) {
		s := fixture(t)
		even := func(l Location) bool { return l.Element%2 == 0 }
		always := func(Location) bool { return true }

		flat := Atoms(WithAtomTest(even))(s)
		// A non-nil chain test forces the segmented path.
		segmented := Atoms(WithAtomTest(even), WithChainTest(always))(s)

		assert.Equal(t, flat.ElementCount(), segmented.ElementCount())
		var a, b []int32
		for _, e := range flat.Elements() {
			a = append(a, e)
		}
		for _, e := range segmented.Elements() {
			b = append(b, e)
		}
		assert.Equal(t, a, b)
	})

	t.Run("NoMatchIsEmpty", func(t *testing.T) {
		s := fixture(t)
		sel := Atoms(WithAtomTest(func(Location) bool { return false }))(s)
		assert.True(t, sel.IsEmpty())
		assert.Equal(t, 0, sel.ElementCount())
	})
}

func TestGrouping(t *testing.T) {
	byResidue := func(l Location) any {
		return l.Unit.Model.ResidueOf(l.Element)
	}

	t.Run("UnevenGroupsYieldSubsets", func(t *testing.T) {
		// Residue sizes 1 and 3: one group is a singleton, but because not
		// all groups are, the selection shape is a sequence of subsets.
		s := unevenResidues(t)
		sel := Atoms(WithGroupBy(byResidue))(s)

		assert.Equal(t, KindSubsets, sel.Kind())
		require.Equal(t, 2, sel.Len())
		assert.Equal(t, 1, sel.Subset(0).ElementCount())
		assert.Equal(t, 3, sel.Subset(1).ElementCount())
		assert.Nil(t, sel.Picks())
	})

	t.Run("AllSingletonGroupsYieldPicks", func(t *testing.T) {
		// Water: four single-atom residues, so grouping by residue gives
		// one element per group and the singleton shape.
		s := buildStructure(t, testutil.BuildModel("w", testutil.WaterChain("W", 4)))
		sel := Atoms(WithGroupBy(byResidue))(s)

		assert.Equal(t, KindSingletons, sel.Kind())
		picks := sel.Picks()
		require.Len(t, picks, 4)
		assert.Equal(t, 4, sel.ElementCount())
	})

	t.Run("GroupingRespectsFilters", func(t *testing.T) {
		s := fixture(t)
		sel := Atoms(
			WithChainTest(func(l Location) bool {
				return !l.Unit.Model.IsWater(l.Unit.Model.ChainOf(l.Element))
			}),
			WithGroupBy(byResidue),
		)(s)

		// Two protein residues of three atoms each.
		assert.Equal(t, KindSubsets, sel.Kind())
		require.Equal(t, 2, sel.Len())
		assert.Equal(t, 6, sel.ElementCount())
	})

	t.Run("GroupKeysKeepFirstSeenOrder", func(t *testing.T) {
		s := unevenResidues(t)
		var order []any
		sel := Atoms(WithGroupBy(func(l Location) any {
			k := byResidue(l)
			if len(order) == 0 || order[len(order)-1] != k {
				order = append(order, k)
			}
			return k
		}))(s)

		require.Equal(t, 2, sel.Len())
		assert.Equal(t, []any{0, 1}, order)
	})
}

func TestSelection(t *testing.T) {
	t.Run("EmptyValue", func(t *testing.T) {
		assert.True(t, Empty.IsEmpty())
		assert.Equal(t, KindEmpty, Empty.Kind())
		assert.Equal(t, 0, Empty.ElementCount())
	})

	t.Run("SingletonsExposePicks", func(t *testing.T) {
		sel := NewSingletons(Pick{Unit: 1, Element: 5}, Pick{Unit: 2, Element: 9})
		assert.Equal(t, KindSingletons, sel.Kind())
		assert.Equal(t, 2, sel.ElementCount())
		assert.Equal(t, []Pick{{Unit: 1, Element: 5}, {Unit: 2, Element: 9}}, sel.Picks())
	})
}
