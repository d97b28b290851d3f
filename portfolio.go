package payoff

import (
	"fmt"
	"math"
	"slices"
)

// Portfolio is an ordered set of instruments valued together against one market and engine.
//
// Components are identified by their index in the list given to NewPortfolio.
// A Portfolio must not be modified while a curve is being generated.
type Portfolio struct {
	components []Instrument
	show       []int // indexes of the components plotted individually, ascending
	market     *Market
	engine     Engine
	center     float64
	maturity   float64
	hasStock   bool
}

// NewPortfolio returns a portfolio of components. Every option must share the same maturity.
func NewPortfolio(components []Instrument) (*Portfolio, error) {
	p := &Portfolio{
		components: slices.Clone(components),
		center:     DefaultMarket().Spot,
	}
	first := true
	for i, c := range p.components {
		if c == nil {
			return nil, fmt.Errorf("%w: component %d is nil", ErrInvalidParameter, i)
		}
		switch c := c.(type) {
		case *Equity:
			p.hasStock = true
		case *Option:
			if first {
				p.maturity, first = c.Maturity(), false
			} else if c.Maturity() != p.maturity {
				return nil, fmt.Errorf("%w: maturity of all components should be same, got %v and %v", ErrInconsistentMaturity, p.maturity, c.Maturity())
			}
		}
	}
	return p, nil
}

// Components returns the instruments in insertion order.
func (p *Portfolio) Components() []Instrument { return slices.Clone(p.components) }

// Maturity returns the maturity shared by the options, 0 without options.
func (p *Portfolio) Maturity() float64 { return p.maturity }

// HasStock reports whether at least one component is a stock.
func (p *Portfolio) HasStock() bool { return p.hasStock }

// Center returns the spot the curve sweep is centered on.
func (p *Portfolio) Center() float64 { return p.center }

// SetCenter changes the spot the curve sweep is centered on.
func (p *Portfolio) SetCenter(c float64) error {
	if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return fmt.Errorf("%w: non-negative value is required for center, not %v", ErrInvalidParameter, c)
	}
	p.center = c
	return nil
}

// Market returns the market set by SetMarket, false if none was set.
func (p *Portfolio) Market() (Market, bool) {
	if p.market == nil {
		return Market{}, false
	}
	return *p.market, true
}

// SetMarket sets the market used for every valuation.
func (p *Portfolio) SetMarket(m Market) error {
	if err := m.Validate(); err != nil {
		return err
	}
	p.market = &m
	return nil
}

// Engine returns the engine set by SetEngine, nil if none was set.
func (p *Portfolio) Engine() Engine { return p.engine }

// SetEngine sets the pricing engine used by the PnL, PV, Delta and Gamma curves.
func (p *Portfolio) SetEngine(e Engine) error {
	if mc, ok := e.(MonteCarlo); ok {
		if err := mc.validate(); err != nil {
			return err
		}
	}
	p.engine = e
	return nil
}

// SetShow selects the components whose individual curves are generated along the aggregate.
// Duplicates are ignored; curves always follow the insertion order.
func (p *Portfolio) SetShow(ids ...int) error {
	show := make([]int, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(p.components) {
			return fmt.Errorf("%w: no component %d in a portfolio of %d", ErrInvalidParameter, id, len(p.components))
		}
		show = append(show, id)
	}
	slices.Sort(show)
	p.show = slices.Compact(show)
	return nil
}

// Shown returns the indexes of the components selected by SetShow.
func (p *Portfolio) Shown() []int { return slices.Clone(p.show) }

// strikes returns the lowest and highest option strikes, ok is false without options.
func (p *Portfolio) strikes() (lo, hi float64, ok bool) {
	for _, c := range p.components {
		o, isOption := c.(*Option)
		if !isOption {
			continue
		}
		if !ok {
			lo, hi, ok = o.Strike(), o.Strike(), true
			continue
		}
		lo, hi = min(lo, o.Strike()), max(hi, o.Strike())
	}
	return lo, hi, ok
}
