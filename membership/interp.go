package membership

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Interp linearly interpolates the curve ys (sampled at xs) at x.
//
// Behavior highlights:
//   - x exactly on a sample returns that sample's value.
//   - x left of xs[0] returns ys[0]; x right of the last sample returns the
//     last value (clamped, never an error).
//
// Returns ErrInterp when xs and ys differ in length, hold fewer than two
// samples, or xs is not strictly increasing.
// Complexity: O(n) to fit, O(log n) to predict.
func Interp(xs, ys []float64, x float64) (float64, error) {
	if len(xs) != len(ys) || len(xs) < minSamples {
		return 0, fmt.Errorf("Interp: %d samples, %d values: %w", len(xs), len(ys), ErrInterp)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return 0, fmt.Errorf("Interp: sample %d not increasing: %w", i, ErrInterp)
		}
	}

	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return 0, fmt.Errorf("Interp: %w: %w", ErrInterp, err)
	}

	return pl.Predict(x), nil
}

// Interp interpolates curve over d at x. See the package-level Interp.
func (d Domain) Interp(curve []float64, x float64) (float64, error) {
	return Interp(d.xs, curve, x)
}
