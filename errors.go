package petgrid

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration flags configuration errors the caller must fix
// before retrying: an unrecognized method name, missing temperature bounds,
// or a minimum temperature exceeding the maximum.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrDimensionMismatch flags a distributed input whose element count does not
// match the grid cell count.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// DimensionError reports the offending field and the actual and expected
// element counts.
type DimensionError struct {
	Field      string
	Size, Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s field dimensions must match grid dimensions: %s size was %d while grid cell count was %d", e.Field, e.Field, e.Size, e.Want)
}

func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }
