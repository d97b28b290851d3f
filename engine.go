package payoff

import (
	"errors"
	"fmt"
)

// Engine names as found in the PricingEngine field.
const (
	BlackScholesName = "Black-Scholes"
	MonteCarloName   = "Monte-Carlo"
)

// DefaultIterations is the number of simulated paths used when nothing else is configured.
const DefaultIterations = 1000000

// Engine selects the pricing method. It is a closed set: BlackScholes or MonteCarlo.
type Engine interface {
	// Name returns the engine tag.
	Name() string
	engine()
}

// BlackScholes prices with the closed form formulas.
type BlackScholes struct{}

func (BlackScholes) Name() string { return BlackScholesName }
func (BlackScholes) engine()      {}

// MonteCarlo prices by averaging discounted payoffs over simulated terminal spots.
type MonteCarlo struct {
	Iterations int
}

// NewMonteCarlo returns a MonteCarlo engine, iterations must be strictly positive.
func NewMonteCarlo(iterations int) (MonteCarlo, error) {
	mc := MonteCarlo{Iterations: iterations}
	return mc, mc.validate()
}

func (MonteCarlo) Name() string { return MonteCarloName }
func (MonteCarlo) engine()      {}

func (mc MonteCarlo) validate() error {
	if mc.Iterations <= 0 {
		return fmt.Errorf("%w: iteration not specified", ErrInvalidEngine)
	}
	return nil
}

// DefaultEngine returns the engine used when nothing else is configured.
func DefaultEngine() Engine { return BlackScholes{} }

// ParseEngine reads the PricingEngine and MCIteration fields of r.
func ParseEngine(r Record) (Engine, error) {
	name, err := r.Text(FieldEngine)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEngine, err)
	}
	switch name {
	case BlackScholesName:
		return BlackScholes{}, nil
	case MonteCarloName:
		n, err := r.Integer(FieldIterations)
		if errors.Is(err, ErrMissingField) {
			return nil, fmt.Errorf("%w: %w: %w", ErrInvalidEngine, ErrInvalidParameter, err)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEngine, err)
		}
		mc, err := NewMonteCarlo(n)
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		return nil, fmt.Errorf("%w: invalid evaluation engine given: %q", ErrInvalidEngine, name)
	}
}

// EngineRecord returns e as a record, using the same field names ParseEngine reads.
func EngineRecord(e Engine) Record {
	r := Record{FieldEngine: e.Name()}
	if mc, ok := e.(MonteCarlo); ok {
		r[FieldIterations] = float64(mc.Iterations)
	}
	return r
}
