package molstruct

import (
	"hash/fnv"
	"slices"

	"github.com/google/uuid"
	"github.com/hupe1980/molstruct/internal/lazy"
	"github.com/hupe1980/molstruct/intset"
	"github.com/hupe1980/molstruct/model"
	"github.com/hupe1980/molstruct/symop"
)

// Options contains configuration options for a structure.
type Options struct {
	// Label is a display name for the structure.
	Label string

	// Parent links the structure to the one it was derived from. The link
	// is flattened at construction: it always points to the ultimate root.
	Parent *Structure

	// CoordinateSystem is the designated coordinate-system transform.
	CoordinateSystem symop.Operator

	// Master designates the master model of a multi-model structure.
	Master *model.Model

	// Representative designates the representative model of a multi-model
	// structure. Takes precedence over Master during model resolution.
	Representative *model.Model

	// LookupBuilder constructs the spatial index on first use.
	// Defaults to a grid-backed lookup.
	LookupBuilder LookupBuilder

	// BondComputer computes the bond graph on first use.
	// Defaults to an empty graph.
	BondComputer BondComputer

	// RestraintComputer computes cross-link restraints on first use.
	// Defaults to none.
	RestraintComputer RestraintComputer
}

// DefaultOptions contains the default configuration options for a structure.
var DefaultOptions = Options{
	CoordinateSystem: symop.Identity(),
}

// Structure is an ordered, id-sorted collection of units over one or more
// models, with a bundle of lazily computed, memoized derived views.
//
// A Structure is an immutable value: the unit sequence and element sets are
// never mutated after construction. The only internal mutability is the
// derived-view cache, whose fields transition from unset to set exactly
// once, so pre-warmed structures can be shared between readers.
type Structure struct {
	units     []*Unit
	unitByID  map[UnitID]*Unit
	indexByID map[UnitID]int

	elementCount int
	models       []*model.Model // distinct, in first-seen order

	opts Options

	hashCode        lazy.Cell[uint64]
	transformHash   lazy.Cell[uint64]
	lookup          lazy.Cell[Lookup]
	bonds           lazy.Cell[bondsResult]
	restraints      lazy.Cell[restraintsResult]
	symmetryGroups  lazy.Cell[[]SymmetryGroup]
	serial          lazy.Cell[*SerialMapping]
	residueNames    lazy.Cell[[]string]
	entityKeys      lazy.Cell[[]string]
	residuesByModel lazy.Cell[map[uuid.UUID]intset.Sorted]
}

// New creates a structure from the given units. Units are re-sorted by id;
// duplicate ids are rejected. An empty unit slice yields the valid empty
// structure.
func New(units []*Unit, optFns ...func(o *Options)) (*Structure, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	// Provenance never nests: always point at the ultimate root.
	if opts.Parent != nil {
		opts.Parent = opts.Parent.Root()
	}

	sorted := make([]*Unit, len(units))
	copy(sorted, units)
	slices.SortFunc(sorted, func(a, b *Unit) int { return int(a.ID) - int(b.ID) })

	s := &Structure{
		units:     sorted,
		unitByID:  make(map[UnitID]*Unit, len(sorted)),
		indexByID: make(map[UnitID]int, len(sorted)),
		opts:      opts,
	}

	seenModels := make(map[uuid.UUID]struct{})
	for i, u := range sorted {
		if _, ok := s.unitByID[u.ID]; ok {
			return nil, &ErrDuplicateUnitID{ID: u.ID}
		}
		s.unitByID[u.ID] = u
		s.indexByID[u.ID] = i
		s.elementCount += u.ElementCount()
		if _, ok := seenModels[u.Model.ID]; !ok {
			seenModels[u.Model.ID] = struct{}{}
			s.models = append(s.models, u.Model)
		}
	}
	return s, nil
}

// Units returns the id-sorted unit sequence. Callers must not modify it.
func (s *Structure) Units() []*Unit { return s.units }

// Unit returns the unit with the given id, or nil.
func (s *Structure) Unit(id UnitID) *Unit { return s.unitByID[id] }

// UnitIndex returns the position of the unit with the given id within the
// sequence.
func (s *Structure) UnitIndex(id UnitID) (int, bool) {
	i, ok := s.indexByID[id]
	return i, ok
}

// UnitCount returns the number of units.
func (s *Structure) UnitCount() int { return len(s.units) }

// ElementCount returns the total element count across all units.
func (s *Structure) ElementCount() int { return s.elementCount }

// IsEmpty reports whether the structure has no elements.
func (s *Structure) IsEmpty() bool { return s.elementCount == 0 }

// Label returns the display label.
func (s *Structure) Label() string { return s.opts.Label }

// CoordinateSystem returns the designated coordinate-system transform.
func (s *Structure) CoordinateSystem() symop.Operator { return s.opts.CoordinateSystem }

// Parent returns the structure this one was derived from, or nil. The link
// always points at the ultimate root.
func (s *Structure) Parent() *Structure { return s.opts.Parent }

// Root returns the top-most ancestor, or the structure itself.
func (s *Structure) Root() *Structure {
	if s.opts.Parent != nil {
		return s.opts.Parent
	}
	return s
}

// Models returns the distinct models referenced by the units, in first-seen
// order.
func (s *Structure) Models() []*model.Model { return s.models }

// Model resolves the single underlying model: the only referenced model if
// there is exactly one, else the designated representative, else the
// designated master. Resolution of an undesignated multi-model structure
// fails with ErrAmbiguousModel.
func (s *Structure) Model() (*model.Model, error) {
	switch {
	case len(s.models) == 1:
		return s.models[0], nil
	case s.opts.Representative != nil:
		return s.opts.Representative, nil
	case s.opts.Master != nil:
		return s.opts.Master, nil
	default:
		return nil, ErrAmbiguousModel
	}
}

// HashCode returns an order-sensitive hash over unit ids, element-set
// contents and the total element count. Structurally identical structures
// hash equal regardless of cache warm state; collisions are acceptable and
// the value must only be used for fast inequality checks.
func (s *Structure) HashCode() uint64 {
	return s.hashCode.Get(func() uint64 {
		h := fnv.New64a()
		var buf [8]byte
		for _, u := range s.units {
			putUint64(&buf, uint64(u.ID))
			h.Write(buf[:])
			for _, v := range u.Elements.Values() {
				putUint64(&buf, uint64(v))
				h.Write(buf[:])
			}
		}
		putUint64(&buf, uint64(s.elementCount))
		h.Write(buf[:])
		return h.Sum64()
	})
}

// TransformHash returns a hash over the ordered unit ids only. It changes
// when units are replaced by symmetry-transformed copies even if the
// geometry is identical, so it detects "has this been moved" without
// comparing coordinates.
func (s *Structure) TransformHash() uint64 {
	return s.transformHash.Get(func() uint64 {
		h := fnv.New64a()
		var buf [8]byte
		for _, u := range s.units {
			putUint64(&buf, uint64(u.ID))
			h.Write(buf[:])
		}
		return h.Sum64()
	})
}

// UniqueResidueNames returns the distinct residue names covered by the
// structure's elements, in first-seen order.
func (s *Structure) UniqueResidueNames() []string {
	return s.residueNames.Get(func() []string {
		var names []string
		seen := make(map[string]struct{})
		for _, u := range s.units {
			m := u.Model
			if m.ResidueNames == nil {
				continue
			}
			for seg := range intset.Segments(u.Elements, m.ResidueOffsets) {
				name := m.ResidueNames[seg.Group]
				if _, ok := seen[name]; !ok {
					seen[name] = struct{}{}
					names = append(names, name)
				}
			}
		}
		return names
	})
}

// EntityKeys returns the distinct entity keys covered by the structure's
// elements, in first-seen order.
func (s *Structure) EntityKeys() []string {
	return s.entityKeys.Get(func() []string {
		var keys []string
		seen := make(map[string]struct{})
		for _, u := range s.units {
			m := u.Model
			for seg := range intset.Segments(u.Elements, m.ChainOffsets) {
				key := m.EntityOf(seg.Group)
				if _, ok := seen[key]; !ok {
					seen[key] = struct{}{}
					keys = append(keys, key)
				}
			}
		}
		return keys
	})
}

// ResidueIndicesByModel returns, per model, the set of residue indices
// covered by the structure's elements.
func (s *Structure) ResidueIndicesByModel() map[uuid.UUID]intset.Sorted {
	return s.residuesByModel.Get(func() map[uuid.UUID]intset.Sorted {
		builders := make(map[uuid.UUID]*intset.Builder)
		for _, u := range s.units {
			m := u.Model
			b, ok := builders[m.ID]
			if !ok {
				b = intset.NewBuilder()
				builders[m.ID] = b
			}
			for seg := range intset.Segments(u.Elements, m.ResidueOffsets) {
				b.Add(int32(seg.Group))
			}
		}
		out := make(map[uuid.UUID]intset.Sorted, len(builders))
		for id, b := range builders {
			set, err := b.Finalize()
			if err != nil {
				continue // unreachable: builders are local
			}
			out[id] = set
		}
		return out
	})
}

func putUint64(buf *[8]byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}
