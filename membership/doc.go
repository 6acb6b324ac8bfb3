// Package membership builds fuzzy membership curves over sampled domains.
//
// 🚀 What is a membership curve?
//
//	A linguistic subset such as "short pricing term" is described by a
//	membership function μ(x) ∈ [0,1]. Sampling μ over an evenly spaced
//	Domain gives a curve that the inference engine combines with min/max.
//
// ✨ Key features:
//   - Domain: immutable [min, max) axis sampled at a fixed step
//     (n = ceil((max-min)/step), x_i = min + i·step)
//   - Triangular and Trapezoidal shapes; degenerate or out-of-domain
//     breakpoints (e.g. [-30, -5, 2, 4] for an "at most" shoulder) are valid
//   - Interp: linear interpolation of a curve at any crisp x, clamped to the
//     boundary values outside the axis
//
// ⚙️ Usage:
//
//	d, _ := membership.NewDomain(0, 3, 0.01)
//	mid, _ := membership.Triangular(d, 0.4, 0.9, 1.4)
//	deg, _ := d.Interp(mid, 0.65) // 0.5
//
// Performance:
//
//   - Curve construction: O(n) time, O(n) memory
//   - Interp: O(n) to fit a piecewise-linear predictor, O(log n) to predict
package membership
