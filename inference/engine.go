package inference

import (
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvfuzzy/membership"
	"github.com/katalvlaran/lvfuzzy/operand"
)

// Engine owns the linguistic sets, subsets and rules of one inference session.
//
// Lifecycle:
//   - Build: AddInputSet / AddOutputSet / AddSubset / AddRule in any order
//     the references allow.
//   - Evaluate: the first Evaluate or Defuzzify call seals the engine. Further
//     build calls return ErrSealed; evaluation may be repeated and is
//     idempotent.
//
// A failed build call commits nothing. Engine methods are safe for concurrent
// use, but set/subset/rule views returned by accessors are only stable once
// the engine is sealed. Independent sessions need separate engines.
type Engine struct {
	mu sync.Mutex

	opts options
	log  *zap.Logger

	sets   map[string]*LinguisticSet // every set by name, output included
	inputs []*LinguisticSet          // registration order
	output *LinguisticSet
	rules  []*Rule
	sealed bool
}

// NewEngine creates an empty engine in the Build phase.
// Defaults: consequent folding on, single-rule consequents dropped, no-op logger.
func NewEngine(opts ...Option) *Engine {
	o := gatherOptions(opts)

	return &Engine{
		opts: o,
		log:  o.logger.With(zap.String("session", o.sessionID.String())),
		sets: make(map[string]*LinguisticSet),
	}
}

// ID returns the session id attached to every log line.
func (e *Engine) ID() uuid.UUID { return e.opts.sessionID }

// Sealed reports whether the engine left the Build phase.
func (e *Engine) Sealed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.sealed
}

// AddInputSet registers an input variable over [min, max) sampled every step,
// observed at value.
//
// Errors: ErrEmptyName, ErrDuplicateSet, ErrBadValue, membership.ErrBadDomain,
// ErrSealed.
func (e *Engine) AddInputSet(name string, min, max, step, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("AddInputSet %q: %w", name, ErrBadValue)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	set, err := e.newSetLocked(name, min, max, step)
	if err != nil {
		return fmt.Errorf("AddInputSet: %w", err)
	}
	set.value, set.hasValue = value, true
	e.sets[name] = set
	e.inputs = append(e.inputs, set)
	e.log.Debug("input set added",
		zap.String("set", name),
		zap.Int("samples", set.domain.Len()),
		zap.Float64("value", value))

	return nil
}

// AddOutputSet registers the single output variable over [min, max).
//
// Errors: ErrEmptyName, ErrDuplicateSet, ErrOutputSetExists,
// membership.ErrBadDomain, ErrSealed.
func (e *Engine) AddOutputSet(name string, min, max, step float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.output != nil {
		return fmt.Errorf("AddOutputSet %q (have %q): %w", name, e.output.name, ErrOutputSetExists)
	}
	set, err := e.newSetLocked(name, min, max, step)
	if err != nil {
		return fmt.Errorf("AddOutputSet: %w", err)
	}
	e.sets[name] = set
	e.output = set
	e.log.Debug("output set added", zap.String("set", name), zap.Int("samples", set.domain.Len()))

	return nil
}

func (e *Engine) newSetLocked(name string, min, max, step float64) (*LinguisticSet, error) {
	if e.sealed {
		return nil, ErrSealed
	}
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, dup := e.sets[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSet, name)
	}
	d, err := membership.NewDomain(min, max, step)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", name, err)
	}

	return &LinguisticSet{name: name, domain: d}, nil
}

// AddSubset adds a subset to the set called set, input or output.
//
// The membership curve is sampled over the set's domain. For input sets the
// degree of the crisp value is interpolated from that curve, clamped to the
// boundary membership when the value lies outside the domain.
//
// Duplicate subset names are accepted but references resolve to the first
// one; a warning is logged.
//
// Errors: ErrEmptyName, *UnknownReferenceError (unknown set), membership shape
// and breakpoint errors, ErrSealed.
func (e *Engine) AddSubset(set, name string, shape membership.Shape, breakpoints ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.addSubsetLocked(set, name, shape, breakpoints); err != nil {
		return fmt.Errorf("AddSubset %s%s%s: %w", set, refSeparator, name, err)
	}

	return nil
}

// AddOutputSubset adds a subset to the output set.
// Errors: ErrNoOutputSet plus those of AddSubset.
func (e *Engine) AddOutputSubset(name string, shape membership.Shape, breakpoints ...float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.output == nil {
		return fmt.Errorf("AddOutputSubset %q: %w", name, ErrNoOutputSet)
	}
	if err := e.addSubsetLocked(e.output.name, name, shape, breakpoints); err != nil {
		return fmt.Errorf("AddOutputSubset %q: %w", name, err)
	}

	return nil
}

func (e *Engine) addSubsetLocked(setName, name string, shape membership.Shape, breakpoints []float64) error {
	if e.sealed {
		return ErrSealed
	}
	if name == "" {
		return ErrEmptyName
	}
	set, ok := e.sets[setName]
	if !ok {
		return &UnknownReferenceError{Ref: setName}
	}
	curve, err := membership.Curve(set.domain, shape, breakpoints...)
	if err != nil {
		return err
	}

	sub := &Subset{
		name:        name,
		shape:       shape,
		breakpoints: append([]float64(nil), breakpoints...),
		curve:       curve,
		output:      set.IsOutput(),
	}
	if set.hasValue {
		if sub.degree, err = set.domain.Interp(curve, set.value); err != nil {
			return err
		}
	}
	if _, dup := set.Subset(name); dup {
		e.log.Warn("duplicate subset name; references resolve to the first",
			zap.String("set", setName), zap.String("subset", name))
	}
	set.subsets = append(set.subsets, sub)
	e.log.Debug("subset added",
		zap.String("set", setName),
		zap.String("subset", name),
		zap.Stringer("shape", shape),
		zap.Float64s("breakpoints", breakpoints),
		zap.Float64("degree", sub.degree))

	return nil
}

// AddRuleRefs is AddRule with "set.subset" tokens.
// Errors: ErrMalformedRef plus those of AddRule.
func (e *Engine) AddRuleRefs(name, consequent string, refs ...string) error {
	parsed := make([]Ref, len(refs))
	for i, tok := range refs {
		r, err := ParseRef(tok)
		if err != nil {
			return fmt.Errorf("AddRule %q: %w", name, err)
		}
		parsed[i] = r
	}

	return e.AddRule(name, consequent, parsed...)
}

// AddRule appends a rule concluding the output subset consequent when all
// antecedents hold.
//
// Antecedents are resolved immediately. The firing strength is the fuzzy AND
// (minimum) of the antecedent degrees; with consequent folding enabled the
// curve of an already registered output subset named consequent joins the
// minimum, turning the strength into a curve. The consequent name itself is
// validated at evaluation time.
//
// Errors: ErrEmptyName, *UnknownReferenceError, ErrInsufficientOperands
// (nothing to fold), ErrSealed.
func (e *Engine) AddRule(name, consequent string, antecedents ...Ref) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	rule, err := e.newRuleLocked(name, consequent, antecedents)
	if err != nil {
		return fmt.Errorf("AddRule %q: %w", name, err)
	}
	e.rules = append(e.rules, rule)
	e.log.Debug("rule added",
		zap.String("rule", name),
		zap.String("consequent", consequent),
		zap.Stringers("antecedents", antecedents),
		zap.Stringer("strength", rule.strength))

	return nil
}

func (e *Engine) newRuleLocked(name, consequent string, antecedents []Ref) (*Rule, error) {
	if e.sealed {
		return nil, ErrSealed
	}
	if name == "" || consequent == "" {
		return nil, ErrEmptyName
	}
	if len(antecedents) == 0 {
		return nil, fmt.Errorf("no antecedents: %w", ErrInsufficientOperands)
	}

	vals := make([]operand.Value, 0, len(antecedents)+1)
	for _, ref := range antecedents {
		sub, err := e.resolveLocked(ref)
		if err != nil {
			return nil, err
		}
		vals = append(vals, sub.operand())
	}

	folded := false
	if e.opts.foldConsequent && e.output != nil {
		if sub, ok := e.output.Subset(consequent); ok {
			vals = append(vals, sub.operand())
			folded = true
		}
	}

	var strength operand.Value
	if len(vals) == 1 && !e.opts.foldConsequent {
		// Clipped by the consequent curve during aggregation.
		strength = vals[0]
	} else {
		var err error
		if strength, err = operand.FoldMin(vals...); err != nil {
			return nil, err
		}
	}

	return &Rule{
		name:        name,
		consequent:  consequent,
		antecedents: append([]Ref(nil), antecedents...),
		strength:    strength,
		folded:      folded,
	}, nil
}

func (e *Engine) resolveLocked(ref Ref) (*Subset, error) {
	set, ok := e.sets[ref.Set]
	if !ok {
		return nil, &UnknownReferenceError{Ref: ref.String()}
	}
	sub, ok := set.Subset(ref.Subset)
	if !ok {
		return nil, &UnknownReferenceError{Ref: ref.String()}
	}

	return sub, nil
}

// Inputs returns the input sets in registration order.
func (e *Engine) Inputs() []*LinguisticSet {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*LinguisticSet, len(e.inputs))
	copy(out, e.inputs)

	return out
}

// Output returns the output set, if registered.
func (e *Engine) Output() (*LinguisticSet, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.output, e.output != nil
}

// Set returns the set called name, input or output.
func (e *Engine) Set(name string) (*LinguisticSet, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, ok := e.sets[name]

	return s, ok
}

// Rules returns the rule base in insertion order.
func (e *Engine) Rules() []*Rule {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*Rule, len(e.rules))
	copy(out, e.rules)

	return out
}
