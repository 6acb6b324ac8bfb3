package membership

import (
	"fmt"
	"math"
)

// minSamples is the smallest axis a membership curve can be defined on.
const minSamples = 2

// Domain is an immutable, ordered sequence of sample positions.
//
// A Domain built by NewDomain covers [min, max) at resolution step, exactly
// like a half-open range: max itself is never a sample. The zero value is an
// empty domain and is rejected by every curve constructor.
type Domain struct {
	min, max, step float64
	xs             []float64
}

// NewDomain samples [min, max) every step.
//
// The sample count is ceil((max-min)/step) and the i-th sample is min+i·step.
// Returns ErrNaNInf for non-finite arguments and ErrBadDomain when step <= 0,
// max <= min, or fewer than two samples would result.
// Complexity: O(n).
func NewDomain(min, max, step float64) (Domain, error) {
	if !finite(min) || !finite(max) || !finite(step) {
		return Domain{}, fmt.Errorf("NewDomain: %w", ErrNaNInf)
	}
	if step <= 0 || max <= min {
		return Domain{}, fmt.Errorf("NewDomain [%g, %g) step %g: %w", min, max, step, ErrBadDomain)
	}
	n := int(math.Ceil((max - min) / step))
	if n < minSamples {
		return Domain{}, fmt.Errorf("NewDomain [%g, %g) step %g: %d sample(s): %w", min, max, step, n, ErrBadDomain)
	}

	xs := make([]float64, n)
	for i := range xs {
		xs[i] = min + float64(i)*step
	}

	return Domain{min: min, max: max, step: step, xs: xs}, nil
}

// NewDomainFromSamples builds a Domain from explicit, strictly increasing
// positions. Step reports 0 for such domains since spacing may be uneven.
func NewDomainFromSamples(samples []float64) (Domain, error) {
	if len(samples) < minSamples {
		return Domain{}, fmt.Errorf("NewDomainFromSamples: %d sample(s): %w", len(samples), ErrBadDomain)
	}
	xs := make([]float64, len(samples))
	for i, x := range samples {
		if !finite(x) {
			return Domain{}, fmt.Errorf("NewDomainFromSamples: sample %d: %w", i, ErrNaNInf)
		}
		if i > 0 && x <= xs[i-1] {
			return Domain{}, fmt.Errorf("NewDomainFromSamples: sample %d: %w", i, ErrUnsorted)
		}
		xs[i] = x
	}

	return Domain{min: xs[0], max: xs[len(xs)-1], xs: xs}, nil
}

// Len returns the number of samples.
func (d Domain) Len() int { return len(d.xs) }

// Min returns the first sample position.
func (d Domain) Min() float64 { return d.min }

// Max returns the (exclusive) upper bound for stepped domains, or the last
// sample for explicit ones.
func (d Domain) Max() float64 { return d.max }

// Step returns the sampling resolution, 0 for explicit domains.
func (d Domain) Step() float64 { return d.step }

// At returns the i-th sample. It panics if i is out of range, like slice indexing.
func (d Domain) At(i int) float64 { return d.xs[i] }

// Samples returns a copy of the sample positions.
func (d Domain) Samples() []float64 {
	out := make([]float64, len(d.xs))
	copy(out, d.xs)

	return out
}

// samples exposes the backing slice to package-internal kernels (read-only).
func (d Domain) samples() []float64 { return d.xs }

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
