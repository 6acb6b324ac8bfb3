// Package model loads fuzzy models from YAML and turns them into engines.
//
// A model file lists the input variables with their observed values, the
// output variable and the rule base:
//
//	name: pricing-rating
//	method: centroid
//	inputs:
//	  - name: pricing_term
//	    min: 1
//	    max: 12
//	    step: 1
//	    value: 10
//	    subsets:
//	      - {name: long, shape: trapezoidal, points: [6, 8, 17, 30]}
//	output:
//	  name: output_margin
//	  min: 0
//	  max: 3
//	  step: 0.01
//	  subsets:
//	    - {name: slim, shape: trapezoidal, points: [-20, -20, 0.1, 0.25]}
//	rules:
//	  - {name: "Rule#3", then: slim, if: [pricing_term.long]}
package model

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvfuzzy/defuzz"
	"github.com/katalvlaran/lvfuzzy/inference"
	"github.com/katalvlaran/lvfuzzy/membership"
)

var (
	// ErrInvalidModel indicates a structurally invalid model definition.
	ErrInvalidModel = errors.New("model: invalid model")

	// ErrUnknownInput indicates an override for an input the model lacks.
	ErrUnknownInput = errors.New("model: unknown input")
)

// Model is a complete fuzzy model definition.
type Model struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Method      string     `yaml:"method,omitempty"`
	BasePrice   float64    `yaml:"base_price,omitempty"`
	Options     Options    `yaml:"options,omitempty"`
	Inputs      []Variable `yaml:"inputs"`
	Output      Variable   `yaml:"output"`
	Rules       []Rule     `yaml:"rules"`
}

// Options mirrors the engine policies; nil keeps the engine default.
type Options struct {
	ConsequentFolding     *bool `yaml:"consequent_folding,omitempty"`
	SingleRuleConsequents *bool `yaml:"single_rule_consequents,omitempty"`
}

// Variable is a linguistic set definition. Value is required for inputs and
// forbidden for the output.
type Variable struct {
	Name    string   `yaml:"name"`
	Min     float64  `yaml:"min"`
	Max     float64  `yaml:"max"`
	Step    float64  `yaml:"step"`
	Value   *float64 `yaml:"value,omitempty"`
	Subsets []Subset `yaml:"subsets"`
}

// Subset is a membership function definition.
type Subset struct {
	Name   string    `yaml:"name"`
	Shape  string    `yaml:"shape"`
	Points []float64 `yaml:"points"`
}

// shape normalises the shape name; unknown names pass through so the engine
// reports them.
func (s Subset) shape() membership.Shape {
	if sh, err := membership.ParseShape(s.Shape); err == nil {
		return sh
	}
	return membership.Shape(s.Shape)
}

// Rule is a rule definition: If holds "set.subset" antecedents.
type Rule struct {
	Name string   `yaml:"name"`
	Then string   `yaml:"then"`
	If   []string `yaml:"if"`
}

// Load reads and validates a model file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Parse decodes and validates a YAML model.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the parts of the model the engine cannot: required
// fields, shape and method names, and which variables carry values.
// Numeric and reference checks are left to the engine.
func (m *Model) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidModel)
	}
	if _, err := m.DefuzzMethod(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidModel, m.Name, err)
	}
	if len(m.Inputs) == 0 {
		return fmt.Errorf("%w: %s: no inputs", ErrInvalidModel, m.Name)
	}
	for _, in := range m.Inputs {
		if in.Value == nil {
			return fmt.Errorf("%w: %s: input %q has no value", ErrInvalidModel, m.Name, in.Name)
		}
		if err := validateSubsets(in); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidModel, m.Name, err)
		}
	}
	if m.Output.Name == "" {
		return fmt.Errorf("%w: %s: missing output", ErrInvalidModel, m.Name)
	}
	if m.Output.Value != nil {
		return fmt.Errorf("%w: %s: output %q must not have a value", ErrInvalidModel, m.Name, m.Output.Name)
	}
	if err := validateSubsets(m.Output); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidModel, m.Name, err)
	}
	for _, r := range m.Rules {
		if r.Name == "" || r.Then == "" || len(r.If) == 0 {
			return fmt.Errorf("%w: %s: rule %q needs name, then and if", ErrInvalidModel, m.Name, r.Name)
		}
	}

	return nil
}

func validateSubsets(v Variable) error {
	if len(v.Subsets) == 0 {
		return fmt.Errorf("variable %q has no subsets", v.Name)
	}
	for _, s := range v.Subsets {
		if _, err := membership.ParseShape(s.Shape); err != nil {
			return fmt.Errorf("%s.%s: %w", v.Name, s.Name, err)
		}
	}

	return nil
}

// DefuzzMethod returns the model's method, centroid when unset.
func (m *Model) DefuzzMethod() (defuzz.Method, error) {
	if m.Method == "" {
		return defuzz.Centroid, nil
	}

	return defuzz.ParseMethod(m.Method)
}

// WithInput returns a copy of m observing value for input name.
func (m *Model) WithInput(name string, value float64) (*Model, error) {
	cp := *m
	cp.Inputs = make([]Variable, len(m.Inputs))
	copy(cp.Inputs, m.Inputs)
	for i := range cp.Inputs {
		if cp.Inputs[i].Name == name {
			v := value
			cp.Inputs[i].Value = &v
			return &cp, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownInput, name)
}

// EngineOptions translates the model options; opts are appended so callers
// can override them.
func (m *Model) EngineOptions(opts ...inference.Option) []inference.Option {
	var out []inference.Option
	if m.Options.ConsequentFolding != nil {
		out = append(out, inference.WithConsequentFolding(*m.Options.ConsequentFolding))
	}
	if m.Options.SingleRuleConsequents != nil {
		out = append(out, inference.WithSingleRuleConsequents(*m.Options.SingleRuleConsequents))
	}

	return append(out, opts...)
}

// Engine builds an engine from the model: inputs with their subsets, then
// the output set, then rules, so consequent curves exist when rules fold them.
func (m *Model) Engine(opts ...inference.Option) (*inference.Engine, error) {
	b := inference.NewBuilder(m.EngineOptions(opts...)...)
	for _, in := range m.Inputs {
		value := 0.0
		if in.Value != nil {
			value = *in.Value
		}
		b.InputSet(in.Name, in.Min, in.Max, in.Step, value)
		for _, s := range in.Subsets {
			b.Subset(in.Name, s.Name, s.shape(), s.Points...)
		}
	}
	b.OutputSet(m.Output.Name, m.Output.Min, m.Output.Max, m.Output.Step)
	for _, s := range m.Output.Subsets {
		b.OutputSubset(s.Name, s.shape(), s.Points...)
	}
	for _, r := range m.Rules {
		b.Rule(r.Name, r.Then, r.If...)
	}

	e, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}

	return e, nil
}

// Run builds an engine and evaluates it with the model's method.
func (m *Model) Run(opts ...inference.Option) (*inference.Result, error) {
	method, err := m.DefuzzMethod()
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}
	e, err := m.Engine(opts...)
	if err != nil {
		return nil, err
	}
	res, err := e.Evaluate(method)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", m.Name, err)
	}

	return res, nil
}
