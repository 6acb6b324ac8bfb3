// Package lvfuzzy is a small Mamdani fuzzy inference toolkit that turns crisp
// business observations into a suggested profit margin.
//
// 🚀 What is lvfuzzy?
//
//	A thread-safe inference engine split into focused subpackages:
//		• Membership: sampled domains, triangular & trapezoidal curves, interpolation
//		• Operands: scalar-or-curve values with broadcasting min/max folds
//		• Defuzzification: centroid, bisector, mean/smallest/largest of maximum
//		• Inference: linguistic sets, rules, aggregation, crisp output
//		• Models: YAML rule bases and built-in pricing scenarios
//
// Under the hood, everything is organized under these subpackages:
//
//	membership/ — Domain, Curve, Interp
//	operand/    — Value, Min/Max, FoldMin/FoldMax
//	defuzz/     — Method, Defuzz
//	inference/  — Engine, Builder, Result
//	model/      — YAML Model, Builtins
//	cmd/lvfuzzy — command-line driver
//
// Quick ASCII example of two overlapping output subsets:
//
//	  1 ┤  /\      /\
//	    │ /  \    /  \
//	  0 ┼/────\──/────\──▶ margin
//	      little   mid
//
//	go get github.com/katalvlaran/lvfuzzy
package lvfuzzy
