package solid

import (
	"errors"
	"fmt"
)

// ErrInvalidDimension matches every *InvalidDimensionError under errors.Is.
var ErrInvalidDimension = errors.New("invalid dimension")

// InvalidDimensionError reports a dimension that is not strictly positive.
// It is the only error the solids in this package return.
type InvalidDimensionError struct {
	Dimension string  // e.g. "radius", "height"
	Value     float64 // the rejected value
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("%s must be positive and greater than zero (got %g)", e.Dimension, e.Value)
}

// Is reports whether target is ErrInvalidDimension.
func (e *InvalidDimensionError) Is(target error) bool {
	return target == ErrInvalidDimension
}

// checkPositive rejects zero, negative and NaN values.
func checkPositive(dimension string, v float64) error {
	if v > 0 {
		return nil
	}
	return &InvalidDimensionError{Dimension: dimension, Value: v}
}
