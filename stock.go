package payoff

import (
	"context"
	"fmt"
	"math"
)

// Equity is a position in the underlying stock itself.
type Equity struct {
	position
}

// NewEquity returns a validated stock position.
func NewEquity(unit, cost float64) (*Equity, error) {
	if math.IsNaN(unit) || math.IsInf(unit, 0) || math.IsNaN(cost) || math.IsInf(cost, 0) {
		return nil, fmt.Errorf("%w: stock unit and cost must be finite, got %v and %v", ErrInvalidParameter, unit, cost)
	}
	return &Equity{position: position{unit: unit, cost: cost}}, nil
}

func (s *Equity) Type() InstrumentType { return Stock }
func (s *Equity) instrument()          {}

func (s *Equity) WithUnit(u float64) Instrument {
	c := *s
	c.unit = u
	return &c
}

func (s *Equity) String() string { return fmt.Sprintf("%g * %s", s.unit, Stock) }

func (s *Equity) Payoff(m Market) float64 { return m.Spot * s.unit }

// PV is the spot value of the position. Dividends are not discounted.
func (s *Equity) PV(_ context.Context, m Market, _ Engine) (float64, error) {
	return m.Spot * s.unit, nil
}

func (s *Equity) Delta(context.Context, Market, Engine) (float64, error) { return s.unit, nil }

func (s *Equity) Gamma(context.Context, Market, Engine) (float64, error) { return 0, nil }
