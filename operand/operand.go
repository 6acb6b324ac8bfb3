// Package operand implements the fuzzy AND (minimum) and OR (maximum)
// operators over values that are either a scalar degree or a sampled curve.
//
// Rules mix both kinds: input subsets contribute a scalar degree, output
// subsets contribute their whole curve. Mixing a scalar with a curve
// broadcasts the scalar over every sample.
package operand

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInsufficientOperands indicates a fold over fewer than two values.
	ErrInsufficientOperands = errors.New("operand: at least two operands required")

	// ErrLengthMismatch indicates two curves of different lengths.
	ErrLengthMismatch = errors.New("operand: curve length mismatch")
)

// Value is a scalar membership degree or a membership curve.
// The zero value is the scalar 0.
type Value struct {
	scalar  float64
	curve   []float64
	isCurve bool
}

// Scalar wraps a single degree.
func Scalar(v float64) Value { return Value{scalar: v} }

// Curve wraps a sampled curve. The slice is copied.
func Curve(c []float64) Value {
	cp := make([]float64, len(c))
	copy(cp, c)

	return Value{curve: cp, isCurve: true}
}

// IsCurve reports whether v holds a curve.
func (v Value) IsCurve() bool { return v.isCurve }

// Float returns the scalar degree; for curves it returns the curve maximum
// (the height of the fuzzy set).
func (v Value) Float() float64 {
	if !v.isCurve {
		return v.scalar
	}
	h := 0.0
	for _, y := range v.curve {
		h = fmax(h, y)
	}

	return h
}

// Len returns the curve length, 0 for scalars.
func (v Value) Len() int { return len(v.curve) }

// Values returns v as a curve of length n: a copy of the curve, or the scalar
// repeated n times. A curve whose length differs from n is an error.
func (v Value) Values(n int) ([]float64, error) {
	out := make([]float64, n)
	if !v.isCurve {
		for i := range out {
			out[i] = v.scalar
		}
		return out, nil
	}
	if len(v.curve) != n {
		return nil, fmt.Errorf("Values: have %d, want %d: %w", len(v.curve), n, ErrLengthMismatch)
	}
	copy(out, v.curve)

	return out, nil
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.isCurve {
		return fmt.Sprintf("%g", v.scalar)
	}
	return fmt.Sprintf("curve[%d] height %g", len(v.curve), v.Float())
}

// Min is the element-wise fuzzy AND of a and b.
func Min(a, b Value) (Value, error) { return combine(a, b, fmin) }

// Max is the element-wise fuzzy OR of a and b.
func Max(a, b Value) (Value, error) { return combine(a, b, fmax) }

// FoldMin reduces vals left to right with Min.
// Fewer than two operands yields ErrInsufficientOperands.
func FoldMin(vals ...Value) (Value, error) { return fold(vals, fmin) }

// FoldMax reduces vals left to right with Max.
// Fewer than two operands yields ErrInsufficientOperands.
func FoldMax(vals ...Value) (Value, error) { return fold(vals, fmax) }

func fold(vals []Value, op func(x, y float64) float64) (Value, error) {
	if len(vals) < 2 {
		return Value{}, fmt.Errorf("fold over %d value(s): %w", len(vals), ErrInsufficientOperands)
	}
	acc := vals[0]
	for i := 1; i < len(vals); i++ {
		var err error
		if acc, err = combine(acc, vals[i], op); err != nil {
			return Value{}, fmt.Errorf("fold operand %d: %w", i, err)
		}
	}

	return acc, nil
}

func combine(a, b Value, op func(x, y float64) float64) (Value, error) {
	switch {
	case !a.isCurve && !b.isCurve:
		return Scalar(op(a.scalar, b.scalar)), nil
	case a.isCurve && b.isCurve:
		if len(a.curve) != len(b.curve) {
			return Value{}, fmt.Errorf("%d vs %d: %w", len(a.curve), len(b.curve), ErrLengthMismatch)
		}
		out := make([]float64, len(a.curve))
		for i := range out {
			out[i] = op(a.curve[i], b.curve[i])
		}
		return Value{curve: out, isCurve: true}, nil
	case a.isCurve:
		return broadcast(a.curve, b.scalar, op), nil
	default:
		return broadcast(b.curve, a.scalar, op), nil
	}
}

func broadcast(c []float64, s float64, op func(x, y float64) float64) Value {
	out := make([]float64, len(c))
	for i, y := range c {
		out[i] = op(y, s)
	}

	return Value{curve: out, isCurve: true}
}

// fmin and fmax ignore a NaN operand when the other one is a number.
func fmin(x, y float64) float64 {
	switch {
	case math.IsNaN(x):
		return y
	case math.IsNaN(y):
		return x
	}
	return math.Min(x, y)
}

func fmax(x, y float64) float64 {
	switch {
	case math.IsNaN(x):
		return y
	case math.IsNaN(y):
		return x
	}
	return math.Max(x, y)
}
