package defuzz

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Method selects a defuzzification strategy.
type Method string

const (
	// Centroid is the membership-weighted mean of the positions.
	Centroid Method = "centroid"
	// Bisector is the first sample at which the cumulative membership reaches
	// half the total. The result has sample resolution; the area split is
	// not interpolated between samples.
	Bisector Method = "bisector"
	// MOM is the mean of the positions of maximum membership.
	MOM Method = "mom"
	// SOM is the smallest position of maximum membership.
	SOM Method = "som"
	// LOM is the largest position of maximum membership.
	LOM Method = "lom"
)

// Methods lists every supported method in a stable order.
func Methods() []Method {
	return []Method{Centroid, Bisector, MOM, SOM, LOM}
}

// ParseMethod resolves a method name, case-insensitively.
func ParseMethod(name string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Methods() {
		if m == known {
			return m, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// String implements fmt.Stringer.
func (m Method) String() string { return string(m) }

// Defuzz applies method to the curve mu sampled at the increasing positions xs.
//
// Errors:
//   - ErrEmptyInput, ErrLengthMismatch for malformed input.
//   - ErrEmptyAggregate when Σμ = 0 (or max μ = 0 for the maximum methods).
//   - ErrUnknownMethod for an unsupported method.
func Defuzz(xs, mu []float64, method Method) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	if len(xs) != len(mu) {
		return 0, fmt.Errorf("%s: %d positions, %d memberships: %w", method, len(xs), len(mu), ErrLengthMismatch)
	}

	switch method {
	case Centroid:
		return centroid(xs, mu)
	case Bisector:
		return bisector(xs, mu)
	case MOM, SOM, LOM:
		return ofMaximum(xs, mu, method)
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, string(method))
	}
}

func centroid(xs, mu []float64) (float64, error) {
	area := floats.Sum(mu)
	if area == 0 {
		return 0, fmt.Errorf("centroid: %w", ErrEmptyAggregate)
	}

	return floats.Dot(xs, mu) / area, nil
}

func bisector(xs, mu []float64) (float64, error) {
	cum := floats.CumSum(make([]float64, len(mu)), mu)
	total := cum[len(cum)-1]
	if total == 0 {
		return 0, fmt.Errorf("bisector: %w", ErrEmptyAggregate)
	}
	half := total / 2
	for i, c := range cum {
		if c >= half {
			return xs[i], nil
		}
	}

	// Unreachable for non-negative memberships: cum ends at total >= half.
	return xs[len(xs)-1], nil
}

func ofMaximum(xs, mu []float64, method Method) (float64, error) {
	peak := floats.Max(mu)
	if peak <= 0 {
		return 0, fmt.Errorf("%s: %w", method, ErrEmptyAggregate)
	}

	var (
		sum         float64
		count       int
		first, last = -1, -1
	)
	for i, y := range mu {
		if y != peak {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
		sum += xs[i]
		count++
	}

	switch method {
	case SOM:
		return xs[first], nil
	case LOM:
		return xs[last], nil
	default:
		return sum / float64(count), nil
	}
}
