package membership

import (
	"errors"
	"fmt"
)

var (
	// ErrBadDomain indicates min/max/step do not describe an axis with at
	// least two samples (step > 0, max > min).
	ErrBadDomain = errors.New("membership: invalid domain")

	// ErrUnsorted indicates explicit domain samples are not strictly increasing.
	ErrUnsorted = errors.New("membership: domain samples must be strictly increasing")

	// ErrUnsupportedShape indicates an unknown membership function shape.
	// Returned errors are *UnsupportedShapeError; match with errors.Is.
	ErrUnsupportedShape = errors.New("membership: unsupported shape")

	// ErrBreakpointCount indicates the breakpoint count does not match the shape.
	ErrBreakpointCount = errors.New("membership: wrong number of breakpoints")

	// ErrBreakpointOrder indicates breakpoints are not non-decreasing.
	ErrBreakpointOrder = errors.New("membership: breakpoints must be non-decreasing")

	// ErrInterp indicates a curve that cannot be interpolated over its axis.
	ErrInterp = errors.New("membership: cannot interpolate curve")

	// ErrNaNInf indicates a NaN or ±Inf bound or breakpoint.
	ErrNaNInf = errors.New("membership: NaN or Inf encountered")
)

// UnsupportedShapeError names the shape that could not be resolved.
type UnsupportedShapeError struct {
	Shape string
}

func (e *UnsupportedShapeError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnsupportedShape, e.Shape)
}

// Is reports whether target is ErrUnsupportedShape.
func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}
