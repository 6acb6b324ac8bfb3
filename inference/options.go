package inference

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultConsequentFolding folds an already registered output subset's
	// curve into the firing strength of every rule that targets it.
	DefaultConsequentFolding = true

	// DefaultSingleRuleConsequents controls whether an output subset backed by
	// exactly one rule contributes to aggregation. false drops it.
	DefaultSingleRuleConsequents = false
)

// Option configures an Engine at construction.
type Option func(*options)

type options struct {
	logger           *zap.Logger
	sessionID        uuid.UUID
	foldConsequent   bool
	singleRuleOutput bool
}

func defaultOptions() options {
	return options{
		logger:           zap.NewNop(),
		foldConsequent:   DefaultConsequentFolding,
		singleRuleOutput: DefaultSingleRuleConsequents,
	}
}

func gatherOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.sessionID == uuid.Nil {
		o.sessionID = uuid.New()
	}

	return o
}

// WithLogger sets the logger. A nil logger keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSessionID fixes the engine id attached to log lines (random by default).
func WithSessionID(id uuid.UUID) Option {
	return func(o *options) { o.sessionID = id }
}

// WithConsequentFolding toggles folding of the consequent's own curve into a
// rule's firing strength at AddRule time.
//
// When disabled a rule's strength depends on its antecedents only, and the
// consequent curve clips that strength during aggregation instead, which is
// the textbook Mamdani implication. Single-antecedent rules are then valid
// regardless of registration order.
func WithConsequentFolding(enabled bool) Option {
	return func(o *options) { o.foldConsequent = enabled }
}

// WithSingleRuleConsequents lets output subsets backed by exactly one rule
// contribute to aggregation. By default they are dropped.
func WithSingleRuleConsequents(enabled bool) Option {
	return func(o *options) { o.singleRuleOutput = enabled }
}
