package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoChainModel() *Model {
	// Chain 0: residues [0,3) and [3,6). Chain 1: waters [6,7), [7,8).
	m := New("test")
	m.X = make([]float32, 8)
	m.Y = make([]float32, 8)
	m.Z = make([]float32, 8)
	m.ChainOffsets = []int32{0, 6, 8}
	m.ResidueOffsets = []int32{0, 3, 6, 7, 8}
	m.ResidueNames = []string{"ALA", "GLY", "HOH", "HOH"}
	m.Chains = []Chain{
		{Entity: "protein1", AuthAsymID: "A"},
		{Entity: "water", AuthAsymID: "W", Water: true},
	}
	return m
}

func TestModel(t *testing.T) {
	m := twoChainModel()
	require.NoError(t, m.Validate())

	t.Run("Counts", func(t *testing.T) {
		assert.Equal(t, 8, m.ElementCount())
		assert.Equal(t, 2, m.ChainCount())
		assert.Equal(t, 4, m.ResidueCount())
	})

	t.Run("Ranges", func(t *testing.T) {
		lo, hi := m.ChainElementRange(0)
		assert.Equal(t, int32(0), lo)
		assert.Equal(t, int32(6), hi)

		start, end := m.ChainResidueRange(1)
		assert.Equal(t, 2, start)
		assert.Equal(t, 4, end)

		lo, hi = m.ResidueElementRange(1)
		assert.Equal(t, int32(3), lo)
		assert.Equal(t, int32(6), hi)
	})

	t.Run("ContainmentLookups", func(t *testing.T) {
		assert.Equal(t, 0, m.ChainOf(5))
		assert.Equal(t, 1, m.ChainOf(6))
		assert.Equal(t, 1, m.ResidueOf(4))
		assert.Equal(t, 3, m.ResidueOf(7))
	})

	t.Run("ChainMetadata", func(t *testing.T) {
		assert.Equal(t, "protein1", m.EntityOf(0))
		assert.False(t, m.IsWater(0))
		assert.True(t, m.IsWater(1))
	})
}

func TestValidate(t *testing.T) {
	t.Run("CoordinateLengthMismatch", func(t *testing.T) {
		m := twoChainModel()
		m.Y = m.Y[:4]
		assert.Error(t, m.Validate())
	})

	t.Run("NonMonotonicOffsets", func(t *testing.T) {
		m := twoChainModel()
		m.ResidueOffsets = []int32{0, 5, 3, 7, 8}
		assert.Error(t, m.Validate())
	})

	t.Run("ChainBoundarySplitsResidue", func(t *testing.T) {
		m := twoChainModel()
		m.ChainOffsets = []int32{0, 5, 8}
		assert.Error(t, m.Validate())
	})

	t.Run("MissingResidueOffsets", func(t *testing.T) {
		m := twoChainModel()
		m.ResidueOffsets = nil
		m.ResidueNames = nil
		assert.Error(t, m.Validate())
	})

	t.Run("EmptyModel", func(t *testing.T) {
		m := New("empty")
		m.ChainOffsets = []int32{0}
		m.ResidueOffsets = []int32{0}
		assert.NoError(t, m.Validate())
	})
}
