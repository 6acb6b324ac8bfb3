// Package defuzz reduces an aggregated membership curve to one crisp value.
//
// Methods:
//   - Centroid: Σ x·μ(x) / Σ μ(x) over the samples
//   - Bisector: smallest sample where the cumulative mass reaches half the total
//   - MOM / SOM / LOM: mean / smallest / largest sample attaining max μ
//
// All methods are O(n) over the sample count and fail with ErrEmptyAggregate
// when the curve carries no membership at all.
//
// ⚙️ Usage:
//
//	x, err := defuzz.Defuzz(domain.Samples(), aggregate, defuzz.Centroid)
package defuzz
