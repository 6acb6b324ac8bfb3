package inference

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvfuzzy/defuzz"
	"github.com/katalvlaran/lvfuzzy/membership"
	"github.com/katalvlaran/lvfuzzy/operand"
)

// Sentinel errors for engine operations. Match with errors.Is.
var (
	// ErrUnknownReference indicates a rule or subset names a set or subset
	// that is not registered. Returned errors are *UnknownReferenceError.
	ErrUnknownReference = errors.New("inference: unknown reference")

	// ErrMalformedRef indicates a "set.subset" token without exactly one separator.
	ErrMalformedRef = errors.New("inference: malformed reference")

	// ErrNoRules indicates evaluation of an empty rule base.
	ErrNoRules = errors.New("inference: no rules")

	// ErrNoOutputSet indicates an operation that needs the output set before it exists.
	ErrNoOutputSet = errors.New("inference: no output set")

	// ErrOutputSetExists indicates a second output set registration.
	ErrOutputSetExists = errors.New("inference: output set already registered")

	// ErrDuplicateSet indicates a set name that is already registered.
	ErrDuplicateSet = errors.New("inference: duplicate set name")

	// ErrEmptyName indicates an empty set, subset, rule or consequent name.
	ErrEmptyName = errors.New("inference: empty name")

	// ErrBadValue indicates a NaN or ±Inf crisp input value.
	ErrBadValue = errors.New("inference: crisp value must be finite")

	// ErrSealed indicates a build operation after evaluation started.
	ErrSealed = errors.New("inference: engine is sealed for evaluation")
)

// Errors surfaced unchanged from the leaf packages.
var (
	// ErrUnsupportedShape is membership.ErrUnsupportedShape.
	ErrUnsupportedShape = membership.ErrUnsupportedShape

	// ErrInsufficientOperands is operand.ErrInsufficientOperands.
	ErrInsufficientOperands = operand.ErrInsufficientOperands

	// ErrEmptyAggregate is defuzz.ErrEmptyAggregate.
	ErrEmptyAggregate = defuzz.ErrEmptyAggregate
)

// UnknownReferenceError names the unresolved "set.subset" token.
type UnknownReferenceError struct {
	Ref string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownReference, e.Ref)
}

// Is reports whether target is ErrUnknownReference.
func (e *UnknownReferenceError) Is(target error) bool {
	return target == ErrUnknownReference
}
