// Package inference is a Mamdani fuzzy inference engine.
//
// 🚀 Pipeline:
//
//	crisp inputs ─▶ fuzzification (subset degrees)
//	             ─▶ implication (min over each rule's antecedents)
//	             ─▶ aggregation (max per output subset, then max across subsets)
//	             ─▶ defuzzification (centroid, bisector, mom, som, lom)
//
// ✨ Model:
//   - LinguisticSet: a named variable with a sampled domain; inputs carry the
//     observed crisp value, the single output set does not
//   - Subset: triangular or trapezoidal membership curve over the set's domain
//   - Rule: conjunction of "set.subset" references concluding an output subset
//
// Default aggregation policies (configurable, see Option):
//   - the consequent's own curve is folded into each rule's firing strength
//     when the output subset is registered before the rule
//     (WithConsequentFolding)
//   - output subsets backed by a single rule do not contribute to
//     aggregation (WithSingleRuleConsequents)
//
// ⚙️ Usage:
//
//	eng := inference.NewEngine(inference.WithLogger(logger))
//	_ = eng.AddInputSet("pricing_term", 1, 12, 1, 10)
//	_ = eng.AddSubset("pricing_term", "long", membership.ShapeTrapezoidal, 6, 8, 17, 30)
//	_ = eng.AddOutputSet("output_margin", 0, 3, 0.01)
//	_ = eng.AddOutputSubset("slim", membership.ShapeTrapezoidal, -20, -20, 0.1, 0.25)
//	_ = eng.AddRuleRefs("Rule#3", "slim", "pricing_term.long")
//	margin, err := eng.Defuzzify(defuzz.Centroid)
//
// Errors are package sentinels matched with errors.Is; see errors.go.
package inference
