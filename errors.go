package molstruct

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousModel is returned when the single model of a multi-model
	// structure is requested and no master or representative model was
	// designated at construction.
	ErrAmbiguousModel = errors.New("ambiguous multi-model structure")

	// ErrBuilderFinalized is returned when a write-once builder is used
	// after Finalize.
	ErrBuilderFinalized = errors.New("builder already finalized")

	// ErrInvalidTransform is returned when a requested coordinate transform
	// is not expressible as rotation plus translation.
	ErrInvalidTransform = errors.New("invalid transform")
)

// ErrDuplicateUnitID indicates two units with the same id in one structure.
//
// The underlying cause (if any) can be accessed via errors.Unwrap.
type ErrDuplicateUnitID struct {
	ID    UnitID
	cause error
}

func (e *ErrDuplicateUnitID) Error() string {
	return fmt.Sprintf("duplicate unit id: %d", e.ID)
}

func (e *ErrDuplicateUnitID) Unwrap() error { return e.cause }
