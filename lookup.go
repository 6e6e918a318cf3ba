package molstruct

import (
	"github.com/hupe1980/molstruct/graph"
	"github.com/hupe1980/molstruct/grid"
)

// Lookup answers neighborhood queries over a structure's transformed
// element positions, addressed by serial index.
type Lookup interface {
	// Within returns the serial indices of all elements within radius of
	// the query point.
	Within(x, y, z, radius float64) []int
}

// LookupBuilder constructs a spatial lookup from a finished structure. The
// engine calls it once and caches the result.
type LookupBuilder func(s *Structure) Lookup

// BondComputer computes the bond graph of a finished structure over its
// serial element space. The engine calls it once and caches the result.
type BondComputer func(s *Structure) (*graph.Graph, error)

// Restraint is one cross-link restraint pair, in serial indices.
type Restraint struct {
	A, B int
}

// RestraintComputer computes cross-link restraints of a finished structure.
// The engine calls it once and caches the result.
type RestraintComputer func(s *Structure) ([]Restraint, error)

type bondsResult struct {
	graph *graph.Graph
	err   error
}

type restraintsResult struct {
	restraints []Restraint
	err        error
}

// Lookup3D returns the cached spatial index, building it on first use with
// the configured LookupBuilder (grid-backed by default).
func (s *Structure) Lookup3D() Lookup {
	return s.lookup.Get(func() Lookup {
		builder := s.opts.LookupBuilder
		if builder == nil {
			builder = buildGridLookup
		}
		return builder(s)
	})
}

// Bonds returns the cached bond graph, computing it on first use with the
// configured BondComputer. Without one, the graph is empty.
func (s *Structure) Bonds() (*graph.Graph, error) {
	r := s.bonds.Get(func() bondsResult {
		if s.opts.BondComputer == nil {
			eb := graph.NewEdgeBuilder(s.elementCount, nil, nil)
			g, err := eb.Graph(nil)
			return bondsResult{graph: g, err: err}
		}
		g, err := s.opts.BondComputer(s)
		return bondsResult{graph: g, err: err}
	})
	return r.graph, r.err
}

// CrossLinkRestraints returns the cached restraint pairs, computing them on
// first use with the configured RestraintComputer.
func (s *Structure) CrossLinkRestraints() ([]Restraint, error) {
	r := s.restraints.Get(func() restraintsResult {
		if s.opts.RestraintComputer == nil {
			return restraintsResult{}
		}
		pairs, err := s.opts.RestraintComputer(s)
		return restraintsResult{restraints: pairs, err: err}
	})
	return r.restraints, r.err
}

// Compile-time check that the default lookup satisfies the interface.
var _ Lookup = (*gridLookup)(nil)

// gridLookup is the default Lookup: elements bucketed by the grid
// partitioner, each bucket with its bounding box, queries scanning only the
// buckets whose box intersects the query sphere.
type gridLookup struct {
	xs, ys, zs []float64 // transformed positions per serial index
	buckets    grid.Result
	boxMin     [][3]float64
	boxMax     [][3]float64
}

func buildGridLookup(s *Structure) Lookup {
	sm := s.SerialMapping()
	n := sm.Count()
	l := &gridLookup{
		xs: make([]float64, n),
		ys: make([]float64, n),
		zs: make([]float64, n),
	}
	xs32 := make([]float32, n)
	ys32 := make([]float32, n)
	zs32 := make([]float32, n)
	serials := make([]int32, n)
	for serial := 0; serial < n; serial++ {
		ui, local := sm.Locate(serial)
		x, y, z := s.units[ui].Position(local)
		l.xs[serial], l.ys[serial], l.zs[serial] = x, y, z
		xs32[serial], ys32[serial], zs32[serial] = float32(x), float32(y), float32(z)
		serials[serial] = int32(serial)
	}

	l.buckets = grid.Partition(xs32, ys32, zs32, serials)
	nb := l.buckets.BucketCount()
	l.boxMin = make([][3]float64, nb)
	l.boxMax = make([][3]float64, nb)
	for b := 0; b < nb; b++ {
		lo := [3]float64{}
		hi := [3]float64{}
		for i, serial := range l.buckets.Bucket(b) {
			p := [3]float64{l.xs[serial], l.ys[serial], l.zs[serial]}
			if i == 0 {
				lo, hi = p, p
				continue
			}
			for d := 0; d < 3; d++ {
				lo[d] = min(lo[d], p[d])
				hi[d] = max(hi[d], p[d])
			}
		}
		l.boxMin[b], l.boxMax[b] = lo, hi
	}
	return l
}

func (l *gridLookup) Within(x, y, z, radius float64) []int {
	var out []int
	r2 := radius * radius
	q := [3]float64{x, y, z}
	for b := 0; b < l.buckets.BucketCount(); b++ {
		if !sphereIntersectsBox(q, radius, l.boxMin[b], l.boxMax[b]) {
			continue
		}
		for _, serial := range l.buckets.Bucket(b) {
			dx := l.xs[serial] - x
			dy := l.ys[serial] - y
			dz := l.zs[serial] - z
			if dx*dx+dy*dy+dz*dz <= r2 {
				out = append(out, int(serial))
			}
		}
	}
	return out
}

func sphereIntersectsBox(c [3]float64, r float64, lo, hi [3]float64) bool {
	d2 := 0.0
	for i := 0; i < 3; i++ {
		if c[i] < lo[i] {
			d := lo[i] - c[i]
			d2 += d * d
		} else if c[i] > hi[i] {
			d := c[i] - hi[i]
			d2 += d * d
		}
	}
	return d2 <= r*r
}
