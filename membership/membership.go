package membership

import (
	"fmt"
	"strings"
)

// Shape names a membership function family.
type Shape string

const (
	// ShapeTriangular rises 0→1 over [a,b] and falls 1→0 over [b,c].
	ShapeTriangular Shape = "triangular"

	// ShapeTrapezoidal rises over [a,b], holds 1 over [b,c], falls over [c,d].
	ShapeTrapezoidal Shape = "trapezoidal"
)

// ParseShape resolves a shape name (case-insensitive, surrounding spaces ignored).
// Unknown names yield *UnsupportedShapeError.
func ParseShape(name string) (Shape, error) {
	switch s := Shape(strings.ToLower(strings.TrimSpace(name))); s {
	case ShapeTriangular, ShapeTrapezoidal:
		return s, nil
	default:
		return "", &UnsupportedShapeError{Shape: name}
	}
}

// Arity returns the number of breakpoints the shape takes, or 0 if unknown.
func (s Shape) Arity() int {
	switch s {
	case ShapeTriangular:
		return 3
	case ShapeTrapezoidal:
		return 4
	default:
		return 0
	}
}

// String implements fmt.Stringer.
func (s Shape) String() string { return string(s) }

// Curve evaluates shape over every sample of d.
//
// Breakpoints must match the shape's arity, be finite and non-decreasing.
// Breakpoints may lie outside the domain; they only move where the curve
// rises and falls.
//
// Errors:
//   - *UnsupportedShapeError for an unknown shape.
//   - ErrBreakpointCount, ErrBreakpointOrder, ErrNaNInf for bad breakpoints.
//   - ErrBadDomain for an empty domain.
//
// Complexity: O(n).
func Curve(d Domain, shape Shape, breakpoints ...float64) ([]float64, error) {
	arity := shape.Arity()
	if arity == 0 {
		return nil, &UnsupportedShapeError{Shape: string(shape)}
	}
	if d.Len() < minSamples {
		return nil, fmt.Errorf("Curve %s: %w", shape, ErrBadDomain)
	}
	if len(breakpoints) != arity {
		return nil, fmt.Errorf("Curve %s: got %d, want %d: %w", shape, len(breakpoints), arity, ErrBreakpointCount)
	}
	for i, p := range breakpoints {
		if !finite(p) {
			return nil, fmt.Errorf("Curve %s: breakpoint %d: %w", shape, i, ErrNaNInf)
		}
		if i > 0 && p < breakpoints[i-1] {
			return nil, fmt.Errorf("Curve %s %v: %w", shape, breakpoints, ErrBreakpointOrder)
		}
	}

	// A triangle is a trapezoid whose plateau collapsed onto its apex.
	a, b, c, e := breakpoints[0], breakpoints[1], breakpoints[1], breakpoints[2]
	if shape == ShapeTrapezoidal {
		c, e = breakpoints[2], breakpoints[3]
	}

	xs := d.samples()
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = trapezoid(x, a, b, c, e)
	}

	return out, nil
}

// Triangular is Curve(d, ShapeTriangular, a, b, c).
func Triangular(d Domain, a, b, c float64) ([]float64, error) {
	return Curve(d, ShapeTriangular, a, b, c)
}

// Trapezoidal is Curve(d, ShapeTrapezoidal, a, b, c, e).
func Trapezoidal(d Domain, a, b, c, e float64) ([]float64, error) {
	return Curve(d, ShapeTrapezoidal, a, b, c, e)
}

// trapezoid evaluates one point. Assumes a <= b <= c <= d.
// Edges are open on the outside: μ(a) = 0 unless a == b, μ(d) = 0 unless c == d.
func trapezoid(x, a, b, c, d float64) float64 {
	switch {
	case x < a || x > d:
		return 0
	case x < b:
		if x <= a {
			return 0
		}
		return (x - a) / (b - a)
	case x <= c:
		return 1
	default:
		if x >= d {
			return 0
		}
		return (d - x) / (d - c)
	}
}
