package inference_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/lvfuzzy/defuzz"
	"github.com/katalvlaran/lvfuzzy/inference"
	"github.com/katalvlaran/lvfuzzy/membership"
)

const (
	setX   = "x"
	setOut = "out"
)

// newXEngine registers input "x" over [0,10) observed at value with a
// plateau subset "all" and a remote subset "far", plus output "out" over
// [0,11) step 1.
func newXEngine(t *testing.T, value float64, opts ...inference.Option) *inference.Engine {
	t.Helper()
	e := inference.NewEngine(opts...)
	require.NoError(t, e.AddInputSet(setX, 0, 10, 1, value))
	require.NoError(t, e.AddSubset(setX, "all", membership.ShapeTrapezoidal, -1, 0, 10, 11))
	require.NoError(t, e.AddSubset(setX, "far", membership.ShapeTriangular, 20, 25, 30))
	require.NoError(t, e.AddOutputSet(setOut, 0, 11, 1))

	return e
}

// TestEngine_SymmetricTriangleCentroid: one symmetric triangle fed by two
// identical rules defuzzifies to its apex.
func TestEngine_SymmetricTriangleCentroid(t *testing.T) {
	e := newXEngine(t, 5)
	require.NoError(t, e.AddOutputSubset("tri", membership.ShapeTriangular, 0, 5, 10))
	require.NoError(t, e.AddRuleRefs("r1", "tri", "x.all"))
	require.NoError(t, e.AddRuleRefs("r2", "tri", "x.all"))

	res, err := e.Evaluate(defuzz.Centroid)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.Crisp, 1e-9)
	assert.InDelta(t, 1.0, res.Membership, 1e-9, "apex membership")
	assert.Equal(t, []string{"tri"}, res.Contributing)
	assert.Len(t, res.Aggregate, 11)
	assert.Len(t, res.Domain, 11)
}

// TestEngine_Idempotent: repeated evaluation returns identical results.
func TestEngine_Idempotent(t *testing.T) {
	e := newXEngine(t, 3)
	require.NoError(t, e.AddOutputSubset("lo", membership.ShapeTriangular, 0, 2, 6))
	require.NoError(t, e.AddOutputSubset("hi", membership.ShapeTrapezoidal, 4, 7, 9, 10))
	require.NoError(t, e.AddRuleRefs("r1", "lo", "x.all"))
	require.NoError(t, e.AddRuleRefs("r2", "lo", "x.all"))
	require.NoError(t, e.AddRuleRefs("r3", "hi", "x.all"))
	require.NoError(t, e.AddRuleRefs("r4", "hi", "x.all"))

	for _, m := range defuzz.Methods() {
		first, err := e.Defuzzify(m)
		require.NoError(t, err)
		second, err := e.Defuzzify(m)
		require.NoError(t, err)
		assert.Equal(t, first, second, m.String())
	}
}

// TestEngine_NoRules fails evaluation of an empty rule base.
func TestEngine_NoRules(t *testing.T) {
	e := newXEngine(t, 5)
	require.NoError(t, e.AddOutputSubset("tri", membership.ShapeTriangular, 0, 5, 10))

	_, err := e.Defuzzify(defuzz.Centroid)
	assert.ErrorIs(t, err, inference.ErrNoRules)
}

// TestEngine_NoOutputSet fails evaluation without an output variable.
func TestEngine_NoOutputSet(t *testing.T) {
	e := inference.NewEngine()
	require.NoError(t, e.AddInputSet(setX, 0, 10, 1, 5))

	err := e.AddOutputSubset("tri", membership.ShapeTriangular, 0, 5, 10)
	assert.ErrorIs(t, err, inference.ErrNoOutputSet)

	_, err = e.Defuzzify(defuzz.Centroid)
	assert.ErrorIs(t, err, inference.ErrNoOutputSet)
}

// TestEngine_EmptyAggregate: an input outside every subset's support leaves
// nothing to defuzzify.
func TestEngine_EmptyAggregate(t *testing.T) {
	e := newXEngine(t, 5)
	require.NoError(t, e.AddOutputSubset("tri", membership.ShapeTriangular, 0, 5, 10))
	require.NoError(t, e.AddRuleRefs("r1", "tri", "x.far"))
	require.NoError(t, e.AddRuleRefs("r2", "tri", "x.far"))

	for _, m := range defuzz.Methods() {
		_, err := e.Defuzzify(m)
		assert.ErrorIs(t, err, inference.ErrEmptyAggregate, m.String())
	}
}

// TestEngine_NoContributingSubset: only single-rule consequents under the
// strict default is an empty aggregate too.
func TestEngine_NoContributingSubset(t *testing.T) {
	e := newXEngine(t, 5)
	require.NoError(t, e.AddOutputSubset("tri", membership.ShapeTriangular, 0, 5, 10))
	require.NoError(t, e.AddRuleRefs("r1", "tri", "x.all"))

	_, err := e.Defuzzify(defuzz.Centroid)
	assert.ErrorIs(t, err, inference.ErrEmptyAggregate)
}

// TestEngine_SingleRuleConsequents checks both aggregation policies.
func TestEngine_SingleRuleConsequents(t *testing.T) {
	build := func(opts ...inference.Option) *inference.Engine {
		e := newXEngine(t, 5, opts...)
		require.NoError(t, e.AddOutputSubset("a", membership.ShapeTriangular, 0, 2, 4))
		require.NoError(t, e.AddOutputSubset("b", membership.ShapeTriangular, 6, 8, 10))
		require.NoError(t, e.AddRuleRefs("r1", "a", "x.all"))
		require.NoError(t, e.AddRuleRefs("r2", "a", "x.all"))
		require.NoError(t, e.AddRuleRefs("r3", "b", "x.all"))

		return e
	}

	// Strict default: "b" has one rule and is dropped.
	res, err := build().Evaluate(defuzz.Centroid)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Crisp, 1e-9)
	assert.Equal(t, []string{"a"}, res.Contributing)

	// Corrected: "b" contributes; the aggregate is symmetric around 5.
	res, err = build(inference.WithSingleRuleConsequents(true)).Evaluate(defuzz.Centroid)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.Crisp, 1e-9)
	assert.Equal(t, []string{"a", "b"}, res.Contributing)
}

// TestEngine_ConsequentFolding checks both implication policies.
func TestEngine_ConsequentFolding(t *testing.T) {
	// Folding on: a single-antecedent rule registered before its consequent
	// has nothing to fold with.
	e := newXEngine(t, 5)
	err := e.AddRuleRefs("r1", "a", "x.all")
	assert.ErrorIs(t, err, inference.ErrInsufficientOperands)
	assert.Empty(t, e.Rules(), "failed AddRule commits nothing")

	// Folding on, consequent registered first: strength is the clipped curve.
	e = newXEngine(t, 5)
	require.NoError(t, e.AddOutputSubset("a", membership.ShapeTriangular, 0, 2, 4))
	require.NoError(t, e.AddRuleRefs("r1", "a", "x.all"))
	rules := e.Rules()
	require.Len(t, rules, 1)
	assert.True(t, rules[0].FoldedConsequent())
	assert.True(t, rules[0].Strength().IsCurve())

	// Folding off: strength is the antecedent degree, clipped at aggregation.
	e = newXEngine(t, 5, inference.WithConsequentFolding(false))
	require.NoError(t, e.AddRuleRefs("r1", "a", "x.all"))
	require.NoError(t, e.AddRuleRefs("r2", "a", "x.all"))
	require.NoError(t, e.AddOutputSubset("a", membership.ShapeTriangular, 0, 2, 4))
	rules = e.Rules()
	require.Len(t, rules, 2)
	assert.False(t, rules[0].FoldedConsequent())
	assert.False(t, rules[0].Strength().IsCurve())
	assert.Equal(t, 1.0, rules[0].Strength().Float())

	res, err := e.Evaluate(defuzz.Centroid)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, res.Crisp, 1e-9)
}

// TestEngine_FoldingModesAgree: with consequents registered first both
// policies produce the same aggregate.
func TestEngine_FoldingModesAgree(t *testing.T) {
	run := func(fold bool) *inference.Result {
		e := newXEngine(t, 4, inference.WithConsequentFolding(fold))
		require.NoError(t, e.AddSubset(setX, "mid", membership.ShapeTriangular, 2, 5, 8))
		require.NoError(t, e.AddOutputSubset("a", membership.ShapeTriangular, 0, 2, 4))
		require.NoError(t, e.AddOutputSubset("b", membership.ShapeTrapezoidal, 3, 6, 8, 10))
		require.NoError(t, e.AddRuleRefs("r1", "a", "x.all", "x.mid"))
		require.NoError(t, e.AddRuleRefs("r2", "a", "x.mid"))
		require.NoError(t, e.AddRuleRefs("r3", "b", "x.mid"))
		require.NoError(t, e.AddRuleRefs("r4", "b", "x.all", "x.mid"))
		res, err := e.Evaluate(defuzz.Centroid)
		require.NoError(t, err)
		return res
	}

	folded, clipped := run(true), run(false)
	assert.InDelta(t, folded.Crisp, clipped.Crisp, 1e-12)
	assert.InDeltaSlice(t, folded.Aggregate, clipped.Aggregate, 1e-12)
}

// TestEngine_UnknownReferences covers construction-time and
// evaluation-time resolution failures.
func TestEngine_UnknownReferences(t *testing.T) {
	e := newXEngine(t, 5)
	require.NoError(t, e.AddOutputSubset("tri", membership.ShapeTriangular, 0, 5, 10))

	err := e.AddRuleRefs("r1", "tri", "nope.all")
	require.ErrorIs(t, err, inference.ErrUnknownReference)
	var ure *inference.UnknownReferenceError
	require.ErrorAs(t, err, &ure)
	assert.Equal(t, "nope.all", ure.Ref)

	err = e.AddRuleRefs("r1", "tri", "x.nope")
	require.ErrorAs(t, err, &ure)
	assert.Equal(t, "x.nope", ure.Ref)

	err = e.AddSubset("nope", "s", membership.ShapeTriangular, 0, 1, 2)
	assert.ErrorIs(t, err, inference.ErrUnknownReference)

	// Consequents are checked when evaluating.
	require.NoError(t, e.AddRuleRefs("r1", "tri", "x.all"))
	require.NoError(t, e.AddRule("r2", "missing", inference.Ref{Set: setX, Subset: "all"}, inference.Ref{Set: setX, Subset: "all"}))
	_, err = e.Defuzzify(defuzz.Centroid)
	require.ErrorAs(t, err, &ure)
	assert.Equal(t, "out.missing", ure.Ref)
}

// TestEngine_MalformedRefs rejects tokens without exactly one separator.
func TestEngine_MalformedRefs(t *testing.T) {
	e := newXEngine(t, 5)
	for _, tok := range []string{"x", "x.all.more", ".all", "x."} {
		err := e.AddRuleRefs("r", "tri", tok)
		assert.ErrorIs(t, err, inference.ErrMalformedRef, tok)
	}

	ref, err := inference.ParseRef("pricing_term.short")
	require.NoError(t, err)
	assert.Equal(t, inference.Ref{Set: "pricing_term", Subset: "short"}, ref)
	assert.Equal(t, "pricing_term.short", ref.String())
}

// TestEngine_BuildErrors covers set/subset validation and atomicity.
func TestEngine_BuildErrors(t *testing.T) {
	e := newXEngine(t, 5)

	assert.ErrorIs(t, e.AddInputSet(setX, 0, 1, 0.1, 0), inference.ErrDuplicateSet)
	assert.ErrorIs(t, e.AddInputSet("", 0, 1, 0.1, 0), inference.ErrEmptyName)
	assert.ErrorIs(t, e.AddInputSet("y", 1, 0, 0.1, 0), membership.ErrBadDomain)
	assert.ErrorIs(t, e.AddOutputSet("out2", 0, 1, 0.1), inference.ErrOutputSetExists)

	err := e.AddSubset(setX, "bell", membership.Shape("gaussian"), 1, 2, 3)
	assert.ErrorIs(t, err, inference.ErrUnsupportedShape)
	err = e.AddSubset(setX, "bad", membership.ShapeTriangular, 3, 2, 1)
	assert.ErrorIs(t, err, membership.ErrBreakpointOrder)

	x, ok := e.Set(setX)
	require.True(t, ok)
	assert.Len(t, x.Subsets(), 2, "failed AddSubset commits nothing")
	assert.Len(t, e.Inputs(), 1)
}

// TestEngine_Sealed: evaluation ends the Build phase.
func TestEngine_Sealed(t *testing.T) {
	e := newXEngine(t, 5)
	require.NoError(t, e.AddOutputSubset("tri", membership.ShapeTriangular, 0, 5, 10))
	require.NoError(t, e.AddRuleRefs("r1", "tri", "x.all"))
	require.NoError(t, e.AddRuleRefs("r2", "tri", "x.all"))
	assert.False(t, e.Sealed())

	_, err := e.Defuzzify(defuzz.Centroid)
	require.NoError(t, err)
	assert.True(t, e.Sealed())

	assert.ErrorIs(t, e.AddRuleRefs("r3", "tri", "x.all"), inference.ErrSealed)
	assert.ErrorIs(t, e.AddSubset(setX, "s", membership.ShapeTriangular, 0, 1, 2), inference.ErrSealed)
	assert.ErrorIs(t, e.AddInputSet("y", 0, 10, 1, 1), inference.ErrSealed)
	assert.Len(t, e.Rules(), 2)
}

// TestEngine_UnknownMethod fails before touching the rule base.
func TestEngine_UnknownMethod(t *testing.T) {
	e := newXEngine(t, 5)
	_, err := e.Defuzzify(defuzz.Method("weighted"))
	assert.ErrorIs(t, err, defuzz.ErrUnknownMethod)
	assert.False(t, e.Sealed())
}

// TestEngine_Fuzzification checks degrees, including clamping outside the domain.
func TestEngine_Fuzzification(t *testing.T) {
	e := inference.NewEngine()
	require.NoError(t, e.AddInputSet("term", 1, 12, 1, 3.5))
	require.NoError(t, e.AddSubset("term", "mid", membership.ShapeTrapezoidal, 2, 4, 6, 8))
	require.NoError(t, e.AddInputSet("rating", 1, 5, 0.25, 5))
	require.NoError(t, e.AddSubset("rating", "mid", membership.ShapeTriangular, 2.75, 3.5, 4.25))
	require.NoError(t, e.AddSubset("rating", "high", membership.ShapeTrapezoidal, 3.75, 4.25, 20, 20))

	term, _ := e.Set("term")
	mid, ok := term.Subset("mid")
	require.True(t, ok)
	assert.InDelta(t, 0.75, mid.Degree(), 1e-12, "interpolated between x=3 (0.5) and x=4 (1)")

	// 5 is past the last sample (4.75): clamp to its membership.
	rating, _ := e.Set("rating")
	high, _ := rating.Subset("high")
	assert.Equal(t, 1.0, high.Degree())
	rmid, _ := rating.Subset("mid")
	assert.Equal(t, 0.0, rmid.Degree())

	v, ok := rating.Value()
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)
	assert.False(t, rating.IsOutput())
	assert.Equal(t, []float64{3.75, 4.25, 20, 20}, high.Breakpoints())
	assert.Len(t, high.Curve(), rating.Domain().Len())
}

// TestEngine_DuplicateSubsetWarns: the first subset wins and a warning is logged.
func TestEngine_DuplicateSubsetWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	id := uuid.MustParse("6f1c2b9e-3d4a-4c8e-9f00-112233445566")
	e := newXEngine(t, 5, inference.WithLogger(zap.New(core)), inference.WithSessionID(id))
	assert.Equal(t, id, e.ID())

	require.NoError(t, e.AddSubset(setX, "all", membership.ShapeTriangular, 20, 25, 30))
	x, _ := e.Set(setX)
	first, _ := x.Subset("all")
	assert.Equal(t, 1.0, first.Degree(), "resolution returns the first match")
	assert.Len(t, x.Subsets(), 3)

	entries := logs.FilterMessageSnippet("duplicate subset").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id.String(), entries[0].ContextMap()["session"])
}

// TestEngine_DuplicateOutputSubset: a repeated output subset name aggregates
// once, through the first curve, under both folding modes.
func TestEngine_DuplicateOutputSubset(t *testing.T) {
	for _, fold := range []bool{true, false} {
		e := newXEngine(t, 5, inference.WithConsequentFolding(fold))
		require.NoError(t, e.AddOutputSubset("a", membership.ShapeTriangular, 0, 2, 4))
		require.NoError(t, e.AddOutputSubset("a", membership.ShapeTriangular, 6, 8, 10))
		require.NoError(t, e.AddRuleRefs("r1", "a", "x.all"))
		require.NoError(t, e.AddRuleRefs("r2", "a", "x.all"))

		res, err := e.Evaluate(defuzz.Centroid)
		require.NoError(t, err, "fold=%v", fold)
		assert.InDelta(t, 2.0, res.Crisp, 1e-9, "fold=%v", fold)
		assert.Equal(t, []string{"a"}, res.Contributing, "fold=%v", fold)
	}
}
