// Package symop provides rigid-transform symmetry operators with
// crystallographic metadata.
package symop

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

const rigidEps = 1e-7

// NotRigidError indicates a transform that is not expressible as
// rotation plus translation.
type NotRigidError struct {
	Reason string
}

func (e *NotRigidError) Error() string {
	return fmt.Sprintf("transform is not rotation+translation: %s", e.Reason)
}

// Operator is a rigid transform (rotation then translation) plus symmetry
// metadata. Operators are value types and never mutated.
type Operator struct {
	// Name identifies the operator, e.g. "1_555" for the identity.
	Name string

	// AssemblyID names the assembly this operator belongs to, if any.
	AssemblyID string

	// NCSID is the non-crystallographic symmetry id, or 0.
	NCSID int32

	// SpGrOp is the space-group operator index, or -1.
	SpGrOp int32

	// HKL is the crystallographic translation in fractional cell units.
	HKL [3]int32

	// Rotation is the 3x3 rotation matrix. Never nil.
	Rotation *mat.Dense

	// Translation is applied after rotation.
	Translation [3]float64
}

// Identity returns the identity operator.
func Identity() Operator {
	return Operator{
		Name:     "1_555",
		SpGrOp:   -1,
		Rotation: eye3(),
	}
}

// IsIdentity reports whether the operator leaves coordinates unchanged.
func (o Operator) IsIdentity() bool {
	if o.Translation != [3]float64{} {
		return false
	}
	return nearEqual(o.Rotation, eye3())
}

// Apply transforms a single point.
func (o Operator) Apply(x, y, z float64) (float64, float64, float64) {
	r := o.Rotation
	tx := r.At(0, 0)*x + r.At(0, 1)*y + r.At(0, 2)*z + o.Translation[0]
	ty := r.At(1, 0)*x + r.At(1, 1)*y + r.At(1, 2)*z + o.Translation[1]
	tz := r.At(2, 0)*x + r.At(2, 1)*y + r.At(2, 2)*z + o.Translation[2]
	return tx, ty, tz
}

// Compose returns the operator applying b first, then a. The result carries
// b's symmetry metadata under a combined name.
func Compose(a, b Operator) Operator {
	var rot mat.Dense
	rot.Mul(a.Rotation, b.Rotation)
	tx, ty, tz := a.Apply(b.Translation[0], b.Translation[1], b.Translation[2])
	return Operator{
		Name:        a.Name + "*" + b.Name,
		AssemblyID:  b.AssemblyID,
		NCSID:       b.NCSID,
		SpGrOp:      b.SpGrOp,
		HKL:         b.HKL,
		Rotation:    &rot,
		Translation: [3]float64{tx, ty, tz},
	}
}

// FromMat4 builds an operator from a 4x4 homogeneous transform. It fails
// with a NotRigidError when the matrix is not rotation+translation (scaling,
// shearing, reflection or a projective bottom row).
func FromMat4(name string, m *mat.Dense) (Operator, error) {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return Operator{}, &NotRigidError{Reason: fmt.Sprintf("expected 4x4 matrix, got %dx%d", r, c)}
	}
	if math.Abs(m.At(3, 0)) > rigidEps || math.Abs(m.At(3, 1)) > rigidEps ||
		math.Abs(m.At(3, 2)) > rigidEps || math.Abs(m.At(3, 3)-1) > rigidEps {
		return Operator{}, &NotRigidError{Reason: "projective bottom row"}
	}

	rot := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			rot.Set(i, j, m.At(i, j))
		}
	}

	// R must be orthonormal with determinant +1.
	var rtr mat.Dense
	rtr.Mul(rot.T(), rot)
	if !nearEqual(&rtr, eye3()) {
		return Operator{}, &NotRigidError{Reason: "rotation block is not orthonormal"}
	}
	if det := mat.Det(rot); math.Abs(det-1) > 1e-6 {
		return Operator{}, &NotRigidError{Reason: fmt.Sprintf("determinant %g", det)}
	}

	return Operator{
		Name:        name,
		SpGrOp:      -1,
		Rotation:    rot,
		Translation: [3]float64{m.At(0, 3), m.At(1, 3), m.At(2, 3)},
	}, nil
}

func eye3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

func nearEqual(a, b *mat.Dense) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > 1e-6 {
				return false
			}
		}
	}
	return true
}
