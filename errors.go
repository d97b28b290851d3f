package payoff

import "errors"

// Error taxonomy. Every failure returned by this package wraps one of them, test with errors.Is.
var (
	// ErrInvalidParameter reports a non numeric or wrongly typed field, or a value out of its domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrMissingField reports a required field that is absent.
	ErrMissingField = errors.New("missing field")
	// ErrInvalidEngine reports an unknown engine tag or an invalid iteration count.
	ErrInvalidEngine = errors.New("invalid engine")
	// ErrInconsistentMaturity reports options of the same portfolio that disagree on maturity.
	ErrInconsistentMaturity = errors.New("inconsistent maturity")
)
