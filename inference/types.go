package inference

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/lvfuzzy/defuzz"
	"github.com/katalvlaran/lvfuzzy/membership"
	"github.com/katalvlaran/lvfuzzy/operand"
)

// refSeparator splits "set.subset" tokens.
const refSeparator = "."

// Ref addresses one subset of one linguistic set.
type Ref struct {
	Set    string
	Subset string
}

// ParseRef parses a "set.subset" token. Exactly one separator is required,
// with non-empty names on both sides; names containing "." must use Ref directly.
func ParseRef(token string) (Ref, error) {
	parts := strings.Split(token, refSeparator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Ref{}, fmt.Errorf("%w: %q", ErrMalformedRef, token)
	}

	return Ref{Set: parts[0], Subset: parts[1]}, nil
}

// String renders the reference as "set.subset".
func (r Ref) String() string { return r.Set + refSeparator + r.Subset }

// LinguisticSet is a named variable over a sampled domain.
//
// Input sets carry the observed crisp value; the output set never does.
// Accessors return copies, so a *LinguisticSet obtained from the Engine is a
// read-only view.
type LinguisticSet struct {
	name     string
	domain   membership.Domain
	subsets  []*Subset
	value    float64
	hasValue bool
}

// Name returns the set name.
func (s *LinguisticSet) Name() string { return s.name }

// Domain returns the sampled axis.
func (s *LinguisticSet) Domain() membership.Domain { return s.domain }

// Value returns the crisp input value; ok is false for the output set.
func (s *LinguisticSet) Value() (v float64, ok bool) { return s.value, s.hasValue }

// IsOutput reports whether s is the output variable.
func (s *LinguisticSet) IsOutput() bool { return !s.hasValue }

// Subsets returns the subsets in registration order.
func (s *LinguisticSet) Subsets() []*Subset {
	out := make([]*Subset, len(s.subsets))
	copy(out, s.subsets)

	return out
}

// Subset returns the first subset called name.
func (s *LinguisticSet) Subset(name string) (*Subset, bool) {
	for _, sub := range s.subsets {
		if sub.name == name {
			return sub, true
		}
	}

	return nil, false
}

// Subset is a named fuzzy region of a LinguisticSet.
type Subset struct {
	name        string
	shape       membership.Shape
	breakpoints []float64
	curve       []float64
	degree      float64
	output      bool
}

// Name returns the subset name.
func (s *Subset) Name() string { return s.name }

// Shape returns the membership function family.
func (s *Subset) Shape() membership.Shape { return s.shape }

// Breakpoints returns a copy of the shape breakpoints.
func (s *Subset) Breakpoints() []float64 { return append([]float64(nil), s.breakpoints...) }

// Curve returns a copy of the membership curve, aligned with the set's domain.
func (s *Subset) Curve() []float64 { return append([]float64(nil), s.curve...) }

// Degree returns the membership of the owning set's crisp value.
// Output subsets report 0; their degree is the whole curve.
func (s *Subset) Degree() float64 { return s.degree }

// operand is the value this subset contributes to a rule: the scalar degree
// for input subsets, the curve for output subsets.
func (s *Subset) operand() operand.Value {
	if s.output {
		return operand.Curve(s.curve)
	}
	return operand.Scalar(s.degree)
}

// Rule maps a conjunction of antecedent subsets to a consequent output subset.
type Rule struct {
	name        string
	consequent  string
	antecedents []Ref
	strength    operand.Value
	folded      bool
}

// Name returns the rule name.
func (r *Rule) Name() string { return r.name }

// Consequent returns the output subset name the rule concludes.
func (r *Rule) Consequent() string { return r.consequent }

// Antecedents returns a copy of the antecedent references.
func (r *Rule) Antecedents() []Ref { return append([]Ref(nil), r.antecedents...) }

// Strength returns the firing strength computed at AddRule time.
func (r *Rule) Strength() operand.Value { return r.strength }

// FoldedConsequent reports whether the consequent curve is part of Strength.
func (r *Rule) FoldedConsequent() bool { return r.folded }

// Result is the outcome of one evaluation.
type Result struct {
	// Method is the defuzzification method used.
	Method defuzz.Method

	// Crisp is the defuzzified output value x*.
	Crisp float64

	// Membership is the aggregated curve interpolated at Crisp (diagnostic).
	Membership float64

	// Domain holds the output sample positions.
	Domain []float64

	// Aggregate is the aggregated output curve, aligned with Domain.
	Aggregate []float64

	// Contributing lists the output subsets that took part in aggregation,
	// in registration order.
	Contributing []string
}
