package molstruct

import (
	"context"
	"fmt"

	"github.com/hupe1980/molstruct/grid"
	"github.com/hupe1980/molstruct/intset"
	"github.com/hupe1980/molstruct/model"
	"github.com/hupe1980/molstruct/symop"
)

// BuilderOptions contains configuration options for model decomposition.
type BuilderOptions struct {
	// PartitionThreshold is the chain element count above which an atomic
	// chain is spatially partitioned per residue.
	PartitionThreshold int

	// GridCapacity is the target bucket size passed to the grid
	// partitioner.
	GridCapacity int

	// Logger receives decomposition summaries. Defaults to a no-op logger.
	Logger *Logger
}

// DefaultBuilderOptions contains the default configuration options for a
// builder. The defaults match the engine-internal constants: chains above
// 200k elements and solvent chains get partitioned.
var DefaultBuilderOptions = BuilderOptions{
	PartitionThreshold: 200_000,
	GridCapacity:       512,
}

// Builder decomposes raw models into a structure's unit sequence. It is a
// single-owner, write-once object: Finalize consumes it, and further use
// fails with ErrBuilderFinalized.
//
// Unit, invariant and chain-group ids are drawn from builder-owned counters
// so they stay globally unique across all models added to one builder, as
// required when merging a multi-model trajectory.
type Builder struct {
	opts  BuilderOptions
	units []*Unit

	nextUnit       UnitID
	nextInvariant  InvariantID
	nextChainGroup ChainGroupID

	finalized bool
}

// NewBuilder creates a structure builder.
func NewBuilder(optFns ...func(o *BuilderOptions)) *Builder {
	opts := DefaultBuilderOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = NoopLogger()
	}
	return &Builder{opts: opts}
}

// AddModel decomposes one model into units. The model is validated and
// never mutated. Chains are visited in order; consecutive single-element
// residue chains sharing entity and author chain id are merged, solvent and
// oversized chains are spatially partitioned, coarse chains map to one unit
// each.
func (b *Builder) AddModel(ctx context.Context, m *model.Model) error {
	if b.finalized {
		return ErrBuilderFinalized
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("add model: %w", err)
	}

	before := len(b.units)
	chainCount := m.ChainCount()
	for c := 0; c < chainCount; {
		start, end := m.ChainElementRange(c)
		if end == start {
			c++
			continue // empty chain, nothing to emit
		}

		if m.Chains[c].Kind != model.KindAtomic {
			b.emit(m, intset.FromRange(start, end), m.Chains[c].Kind, 0, b.freshChainGroup())
			c++
			continue
		}

		if b.singleElementResidues(m, c) {
			merged := c
			for merged+1 < chainCount &&
				m.Chains[merged+1].Kind == model.KindAtomic &&
				b.singleElementResidues(m, merged+1) &&
				m.Chains[merged+1].Entity == m.Chains[c].Entity &&
				m.Chains[merged+1].AuthAsymID == m.Chains[c].AuthAsymID {
				merged++
			}
			_, end = m.ChainElementRange(merged)
			var traits Traits
			if merged > c {
				traits |= TraitMultiChain
			}
			b.partitionByElement(m, start, end, traits)
			c = merged + 1
			continue
		}

		if int(end-start) > b.opts.PartitionThreshold || m.IsWater(c) {
			b.partitionByResidue(m, c)
			c++
			continue
		}

		b.emit(m, intset.FromRange(start, end), model.KindAtomic, 0, b.freshChainGroup())
		c++
	}

	b.opts.Logger.WithModel(m.Label).LogDecompose(ctx, chainCount, len(b.units)-before)
	return nil
}

// Finalize produces the structure and invalidates the builder. Structure
// options (label, master/representative model, collaborators) are forwarded.
func (b *Builder) Finalize(optFns ...func(o *Options)) (*Structure, error) {
	if b.finalized {
		return nil, ErrBuilderFinalized
	}
	b.finalized = true
	return New(b.units, optFns...)
}

// partitionByElement buckets arbitrary elements of [start, end) by spatial
// cell, one unit per bucket.
func (b *Builder) partitionByElement(m *model.Model, start, end int32, traits Traits) {
	indices := intset.FromRange(start, end)
	res := grid.Partition(m.X, m.Y, m.Z, indices.Values(), func(o *grid.Options) {
		o.Capacity = b.opts.GridCapacity
	})
	if res.BucketCount() > 1 {
		traits |= TraitPartitioned
	}
	group := b.freshChainGroup()
	for i := 0; i < res.BucketCount(); i++ {
		b.emit(m, intset.FromValues(res.Bucket(i)...), model.KindAtomic, traits, group)
	}
}

// partitionByResidue buckets chain c by the spatial cell of each residue's
// first element; all elements of a residue follow its representative, so no
// residue is ever split across units.
func (b *Builder) partitionByResidue(m *model.Model, c int) {
	resStart, resEnd := m.ChainResidueRange(c)
	reps := make([]int32, 0, resEnd-resStart)
	for r := resStart; r < resEnd; r++ {
		lo, hi := m.ResidueElementRange(r)
		if hi > lo {
			reps = append(reps, lo)
		}
	}

	res := grid.Partition(m.X, m.Y, m.Z, reps, func(o *grid.Options) {
		o.Capacity = b.opts.GridCapacity
	})
	var traits Traits
	if res.BucketCount() > 1 {
		traits = TraitPartitioned
	}
	group := b.freshChainGroup()
	for i := 0; i < res.BucketCount(); i++ {
		set := intset.NewBuilder()
		for _, rep := range res.Bucket(i) {
			r := m.ResidueOf(rep)
			lo, hi := m.ResidueElementRange(r)
			set.AddRange(lo, hi)
		}
		elements, err := set.Finalize()
		if err != nil {
			continue // unreachable: builder is local
		}
		b.emit(m, elements, model.KindAtomic, traits, group)
	}
}

func (b *Builder) singleElementResidues(m *model.Model, c int) bool {
	start, end := m.ChainElementRange(c)
	resStart, resEnd := m.ChainResidueRange(c)
	return int(end-start) == resEnd-resStart
}

func (b *Builder) emit(m *model.Model, elements intset.Sorted, kind model.Kind, traits Traits, group ChainGroupID) {
	if elements.IsEmpty() {
		return
	}
	b.units = append(b.units, &Unit{
		ID:           b.freshUnit(),
		InvariantID:  b.freshInvariant(),
		ChainGroupID: group,
		Kind:         kind,
		Traits:       traits,
		Operator:     symop.Identity(),
		Elements:     elements,
		Model:        m,
	})
}

func (b *Builder) freshUnit() UnitID {
	id := b.nextUnit
	b.nextUnit++
	return id
}

func (b *Builder) freshInvariant() InvariantID {
	id := b.nextInvariant
	b.nextInvariant++
	return id
}

func (b *Builder) freshChainGroup() ChainGroupID {
	id := b.nextChainGroup
	b.nextChainGroup++
	return id
}
