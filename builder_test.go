package molstruct

import (
	"context"
	"testing"

	"github.com/hupe1980/molstruct/model"
	"github.com/hupe1980/molstruct/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	ctx := context.Background()

	t.Run("WholeChainBecomesOneUnit", func(t *testing.T) {
		m := testutil.BuildModel("simple",
			testutil.ProteinChain("A", "ent1", 2, 3),
		)
		b := NewBuilder()
		require.NoError(t, b.AddModel(ctx, m))
		s, err := b.Finalize()
		require.NoError(t, err)

		require.Equal(t, 1, s.UnitCount())
		u := s.Units()[0]
		assert.Equal(t, 6, u.ElementCount())
		assert.Equal(t, model.KindAtomic, u.Kind)
		assert.Equal(t, Traits(0), u.Traits)
		assert.True(t, u.Operator.IsIdentity())
	})

	t.Run("ConsecutiveIonChainsMerge", func(t *testing.T) {
		m := testutil.BuildModel("ions",
			testutil.IonChain("X", "zn"),
			testutil.IonChain("X", "zn"),
			testutil.IonChain("X", "zn"),
			testutil.IonChain("Y", "zn"),
		)
		b := NewBuilder()
		require.NoError(t, b.AddModel(ctx, m))
		s, err := b.Finalize()
		require.NoError(t, err)

		// Three same-author chains collapse into one multi-chain unit; the
		// fourth has a different author id and stays separate.
		require.Equal(t, 2, s.UnitCount())
		merged := s.Units()[0]
		assert.Equal(t, 3, merged.ElementCount())
		assert.True(t, merged.Traits.Has(TraitMultiChain))
		single := s.Units()[1]
		assert.Equal(t, 1, single.ElementCount())
		assert.False(t, single.Traits.Has(TraitMultiChain))
		assert.NotEqual(t, merged.ChainGroupID, single.ChainGroupID)
	})

	t.Run("OversizedChainPartitionsByResidue", func(t *testing.T) {
		m := testutil.BuildModel("big",
			testutil.ProteinChain("A", "ent1", 12, 3),
		)
		b := NewBuilder(func(o *BuilderOptions) {
			o.PartitionThreshold = 10
			o.GridCapacity = 3
		})
		require.NoError(t, b.AddModel(ctx, m))
		s, err := b.Finalize()
		require.NoError(t, err)

		require.Greater(t, s.UnitCount(), 1)

		group := s.Units()[0].ChainGroupID
		total := 0
		for _, u := range s.Units() {
			assert.True(t, u.Traits.Has(TraitPartitioned))
			assert.Equal(t, group, u.ChainGroupID)
			total += u.ElementCount()
		}
		assert.Equal(t, m.ElementCount(), total)

		// No residue is split across units.
		for r := 0; r < m.ResidueCount(); r++ {
			lo, hi := m.ResidueElementRange(r)
			owner := -1
			for i, u := range s.Units() {
				if u.Elements.Has(lo) {
					owner = i
					break
				}
			}
			require.GreaterOrEqual(t, owner, 0)
			for e := lo; e < hi; e++ {
				assert.True(t, s.Units()[owner].Elements.Has(e), "residue %d split", r)
			}
		}
	})

	t.Run("WaterChainPartitions", func(t *testing.T) {
		m := testutil.BuildModel("solvent",
			testutil.WaterChain("W", 20),
		)
		b := NewBuilder(func(o *BuilderOptions) { o.GridCapacity = 4 })
		require.NoError(t, b.AddModel(ctx, m))
		s, err := b.Finalize()
		require.NoError(t, err)

		assert.Greater(t, s.UnitCount(), 1)
		assert.Equal(t, 20, s.ElementCount())
	})

	t.Run("CoarseChainsBypassPartitioning", func(t *testing.T) {
		m := testutil.BuildModel("coarse",
			testutil.CoarseChain("S", "cg1", model.KindSpheres, 30),
			testutil.CoarseChain("G", "cg2", model.KindGaussians, 5),
		)
		b := NewBuilder(func(o *BuilderOptions) { o.GridCapacity = 4 })
		require.NoError(t, b.AddModel(ctx, m))
		s, err := b.Finalize()
		require.NoError(t, err)

		require.Equal(t, 2, s.UnitCount())
		assert.Equal(t, model.KindSpheres, s.Units()[0].Kind)
		assert.Equal(t, 30, s.Units()[0].ElementCount())
		assert.Equal(t, model.KindGaussians, s.Units()[1].Kind)
	})

	t.Run("MultiModelIDsStayUnique", func(t *testing.T) {
		m1 := testutil.BuildModel("frame1", testutil.ProteinChain("A", "ent1", 2, 3))
		m2 := testutil.BuildModel("frame2", testutil.ProteinChain("A", "ent1", 2, 3))

		b := NewBuilder()
		require.NoError(t, b.AddModel(ctx, m1))
		require.NoError(t, b.AddModel(ctx, m2))
		s, err := b.Finalize()
		require.NoError(t, err)

		require.Equal(t, 2, s.UnitCount())
		assert.NotEqual(t, s.Units()[0].ID, s.Units()[1].ID)
		assert.NotEqual(t, s.Units()[0].InvariantID, s.Units()[1].InvariantID)
		assert.NotEqual(t, s.Units()[0].ChainGroupID, s.Units()[1].ChainGroupID)
		assert.Len(t, s.Models(), 2)
	})

	t.Run("MissingResidueOffsetsRejected", func(t *testing.T) {
		// A non-empty model must carry a residue table; without one the
		// residue-segmented views would have nothing to walk.
		m := model.New("noresidues")
		m.X = make([]float32, 3)
		m.Y = make([]float32, 3)
		m.Z = make([]float32, 3)
		m.ChainOffsets = []int32{0, 3}
		m.Chains = []model.Chain{{Entity: "e", AuthAsymID: "A"}}

		b := NewBuilder()
		assert.Error(t, b.AddModel(ctx, m))
	})

	t.Run("InvalidModelRejected", func(t *testing.T) {
		m := testutil.BuildModel("bad", testutil.ProteinChain("A", "e", 1, 2))
		m.Y = m.Y[:1]
		b := NewBuilder()
		assert.Error(t, b.AddModel(ctx, m))
	})

	t.Run("WriteOnce", func(t *testing.T) {
		b := NewBuilder()
		_, err := b.Finalize()
		require.NoError(t, err)

		_, err = b.Finalize()
		assert.ErrorIs(t, err, ErrBuilderFinalized)
		assert.ErrorIs(t, b.AddModel(ctx, testutil.BuildModel("late")), ErrBuilderFinalized)
	})

	t.Run("EmptyStructureIsValid", func(t *testing.T) {
		b := NewBuilder()
		s, err := b.Finalize()
		require.NoError(t, err)
		assert.True(t, s.IsEmpty())
		assert.Equal(t, 0, s.ElementCount())
	})
}
