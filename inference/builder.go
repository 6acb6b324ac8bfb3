package inference

import "github.com/katalvlaran/lvfuzzy/membership"

// Builder chains engine construction calls. The first failure sticks: later
// calls become no-ops and Build reports it.
//
//	eng, err := inference.NewBuilder().
//		InputSet("pricing_term", 1, 12, 1, 10).
//		Subset("pricing_term", "short", membership.ShapeTrapezoidal, -30, -5, 2, 4).
//		OutputSet("margin", 0, 3, 0.01).
//		OutputSubset("mid", membership.ShapeTriangular, 0.4, 0.9, 1.4).
//		Rule("r1", "mid", "pricing_term.short").
//		Build()
type Builder struct {
	e   *Engine
	err error
}

// NewBuilder starts a new engine with opts.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{e: NewEngine(opts...)}
}

func (b *Builder) do(f func() error) *Builder {
	if b.err == nil {
		b.err = f()
	}

	return b
}

// InputSet calls Engine.AddInputSet.
func (b *Builder) InputSet(name string, min, max, step, value float64) *Builder {
	return b.do(func() error { return b.e.AddInputSet(name, min, max, step, value) })
}

// OutputSet calls Engine.AddOutputSet.
func (b *Builder) OutputSet(name string, min, max, step float64) *Builder {
	return b.do(func() error { return b.e.AddOutputSet(name, min, max, step) })
}

// Subset calls Engine.AddSubset.
func (b *Builder) Subset(set, name string, shape membership.Shape, breakpoints ...float64) *Builder {
	return b.do(func() error { return b.e.AddSubset(set, name, shape, breakpoints...) })
}

// OutputSubset calls Engine.AddOutputSubset.
func (b *Builder) OutputSubset(name string, shape membership.Shape, breakpoints ...float64) *Builder {
	return b.do(func() error { return b.e.AddOutputSubset(name, shape, breakpoints...) })
}

// Rule calls Engine.AddRuleRefs.
func (b *Builder) Rule(name, consequent string, refs ...string) *Builder {
	return b.do(func() error { return b.e.AddRuleRefs(name, consequent, refs...) })
}

// Err returns the first error recorded so far.
func (b *Builder) Err() error { return b.err }

// Build returns the engine, or the first error. An engine whose build failed
// is never returned.
func (b *Builder) Build() (*Engine, error) {
	if b.err != nil {
		return nil, b.err
	}

	return b.e, nil
}
