package defuzz

import "errors"

var (
	// ErrEmptyAggregate indicates the curve has zero total membership, so no
	// crisp value is defined.
	ErrEmptyAggregate = errors.New("defuzz: aggregated membership is empty")

	// ErrLengthMismatch indicates positions and memberships differ in length.
	ErrLengthMismatch = errors.New("defuzz: positions and memberships differ in length")

	// ErrEmptyInput indicates no samples were given.
	ErrEmptyInput = errors.New("defuzz: no samples")

	// ErrUnknownMethod indicates an unsupported defuzzification method.
	ErrUnknownMethod = errors.New("defuzz: unknown method")
)
