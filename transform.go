package molstruct

import (
	"fmt"
	"math"

	"github.com/hupe1980/molstruct/symop"
	"gonum.org/v1/gonum/mat"
)

// Transform applies a rigid 4x4 transform to the structure, producing a new
// structure whose units carry the composed symmetry operator and whose
// parent is this structure's root. The transform must be expressible as
// rotation plus translation; anything else fails with ErrInvalidTransform
// and leaves the structure untouched.
//
// Applying the identity returns the receiver unchanged, without allocation.
func (s *Structure) Transform(m *mat.Dense) (*Structure, error) {
	if isIdentityMat4(m) {
		return s, nil
	}

	op, err := symop.FromMat4("transform", m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTransform, err)
	}

	units := make([]*Unit, len(s.units))
	for i, u := range s.units {
		units[i] = u.withOperator(op)
	}

	parent := s.Root()
	return New(units, func(o *Options) {
		*o = s.opts
		o.Parent = parent
		o.CoordinateSystem = symop.Compose(op, s.opts.CoordinateSystem)
	})
}

func isIdentityMat4(m *mat.Dense) bool {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(m.At(i, j)-want) > 1e-12 {
				return false
			}
		}
	}
	return true
}
