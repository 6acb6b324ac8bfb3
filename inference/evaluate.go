package inference

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvfuzzy/defuzz"
	"github.com/katalvlaran/lvfuzzy/operand"
)

// Defuzzify evaluates the rule base and returns the crisp output x*.
// See Evaluate for the algorithm and errors.
func (e *Engine) Defuzzify(method defuzz.Method) (float64, error) {
	res, err := e.Evaluate(method)
	if err != nil {
		return 0, err
	}

	return res.Crisp, nil
}

// Evaluate seals the engine, aggregates the rule base and defuzzifies it.
//
// Algorithm:
//  1. For each distinctly named output subset, in registration order (a
//     repeated name counts once, as the first subset), collect the firing
//     strengths of the rules concluding it. Without consequent folding each
//     strength is first clipped by the subset curve (minimum).
//  2. A subset with no rules is skipped. A subset with one rule is skipped
//     too unless WithSingleRuleConsequents(true) was given.
//  3. The maximum over a subset's strengths is its contribution; the maximum
//     over all contributions is the aggregated curve.
//  4. The curve is defuzzified with method and interpolated at x*.
//
// Errors: defuzz.ErrUnknownMethod, ErrNoOutputSet, ErrNoRules,
// *UnknownReferenceError (consequent naming no output subset),
// ErrEmptyAggregate (no contribution, or zero total membership).
// Complexity: O(R·n) for R rules and n output samples.
func (e *Engine) Evaluate(method defuzz.Method) (*Result, error) {
	if _, err := defuzz.ParseMethod(string(method)); err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.sealed {
		e.sealed = true
		e.log.Debug("engine sealed", zap.Int("rules", len(e.rules)))
	}
	if e.output == nil {
		return nil, fmt.Errorf("Evaluate: %w", ErrNoOutputSet)
	}
	if len(e.rules) == 0 {
		return nil, fmt.Errorf("Evaluate: %w", ErrNoRules)
	}
	for _, r := range e.rules {
		if _, ok := e.output.Subset(r.consequent); !ok {
			return nil, fmt.Errorf("Evaluate: rule %q: %w", r.name,
				&UnknownReferenceError{Ref: e.output.name + refSeparator + r.consequent})
		}
	}

	contributions, names, err := e.contributionsLocked()
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}

	agg := contributions[0]
	if len(contributions) > 1 {
		if agg, err = operand.FoldMax(contributions...); err != nil {
			return nil, fmt.Errorf("Evaluate: aggregate: %w", err)
		}
	}

	n := e.output.domain.Len()
	curve, err := agg.Values(n)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: aggregate: %w", err)
	}
	xs := e.output.domain.Samples()
	crisp, err := defuzz.Defuzz(xs, curve, method)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}

	mu, err := e.output.domain.Interp(curve, crisp)
	if err != nil {
		return nil, fmt.Errorf("Evaluate: %w", err)
	}

	res := &Result{
		Method:       method,
		Crisp:        crisp,
		Membership:   mu,
		Domain:       xs,
		Aggregate:    curve,
		Contributing: names,
	}
	e.log.Debug("evaluated",
		zap.Stringer("method", method),
		zap.Float64("crisp", res.Crisp),
		zap.Float64("membership", res.Membership),
		zap.Strings("contributing", names))

	return res, nil
}

// contributionsLocked returns one aggregated value per contributing output
// subset, and the subset names in the same order.
func (e *Engine) contributionsLocked() ([]operand.Value, []string, error) {
	var (
		contributions []operand.Value
		names         []string
		seen          = make(map[string]struct{}, len(e.output.subsets))
	)
	for _, sub := range e.output.subsets {
		// Duplicate names resolve to the first subset, as references do.
		if _, dup := seen[sub.name]; dup {
			continue
		}
		seen[sub.name] = struct{}{}

		var strengths []operand.Value
		for _, r := range e.rules {
			if r.consequent != sub.name {
				continue
			}
			s := r.strength
			if !r.folded && !e.opts.foldConsequent {
				clipped, err := operand.Min(s, sub.operand())
				if err != nil {
					return nil, nil, fmt.Errorf("rule %q: %w", r.name, err)
				}
				s = clipped
			}
			strengths = append(strengths, s)
		}

		switch {
		case len(strengths) == 0:
			e.log.Debug("output subset has no rules", zap.String("subset", sub.name))
			continue
		case len(strengths) == 1 && !e.opts.singleRuleOutput:
			e.log.Warn("output subset backed by a single rule is excluded from aggregation",
				zap.String("subset", sub.name))
			continue
		case len(strengths) == 1:
			contributions = append(contributions, strengths[0])
		default:
			agg, err := operand.FoldMax(strengths...)
			if err != nil {
				return nil, nil, fmt.Errorf("subset %q: %w", sub.name, err)
			}
			contributions = append(contributions, agg)
		}
		names = append(names, sub.name)
	}
	if len(contributions) == 0 {
		return nil, nil, fmt.Errorf("no contributing output subset: %w", ErrEmptyAggregate)
	}

	return contributions, names, nil
}
