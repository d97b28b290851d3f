package payoff

import (
	"context"
	"fmt"
	"math"
)

// InstrumentType is the kind of an instrument as found in the InstType field.
type InstrumentType string

const (
	Call  InstrumentType = "CALL"
	Put   InstrumentType = "PUT"
	Stock InstrumentType = "STOCK"
)

// ParseInstrumentType parses an instrument type tag.
func ParseInstrumentType(s string) (InstrumentType, error) {
	switch t := InstrumentType(s); t {
	case Call, Put, Stock:
		return t, nil
	default:
		return "", fmt.Errorf("%w: invalid instrument type given: %q", ErrInvalidParameter, s)
	}
}

// IsOption reports whether t is CALL or PUT.
func (t InstrumentType) IsOption() bool { return t == Call || t == Put }

// Instrument is a position in a financial instrument. It is a closed set: *Option or *Equity.
//
// Every valuation is already multiplied by Unit.
type Instrument interface {
	Type() InstrumentType
	// Unit is the signed quantity held, negative for a short position.
	Unit() float64
	// Cost is the premium paid per unit.
	Cost() float64
	// WithUnit returns a copy of the instrument holding u units.
	WithUnit(u float64) Instrument

	// Payoff at maturity when the underlying ends at m.Spot.
	Payoff(m Market) float64
	// PV is the present value under m.
	PV(ctx context.Context, m Market, e Engine) (float64, error)
	// Delta is the first derivative of PV with respect to the spot.
	Delta(ctx context.Context, m Market, e Engine) (float64, error)
	// Gamma is the second derivative of PV with respect to the spot.
	Gamma(ctx context.Context, m Market, e Engine) (float64, error)

	String() string
	instrument()
}

// position holds what every instrument shares.
type position struct {
	unit float64
	cost float64
}

func (p position) Unit() float64 { return p.unit }
func (p position) Cost() float64 { return p.cost }

// NewInstrument builds a validated instrument from a record.
//
// InstType, InstUnit and InstCost are required; options also require OptionStrike and
// OptionMaturity.
func NewInstrument(r Record) (Instrument, error) {
	tag, err := r.Text(FieldType)
	if err != nil {
		return nil, err
	}
	typ, err := ParseInstrumentType(tag)
	if err != nil {
		return nil, err
	}
	var p position
	if p.unit, err = r.Number(FieldUnit); err != nil {
		return nil, err
	}
	if p.cost, err = r.Number(FieldCost); err != nil {
		return nil, err
	}
	if typ == Stock {
		return &Equity{position: p}, nil
	}
	strike, err := r.Number(FieldStrike)
	if err != nil {
		return nil, err
	}
	maturity, err := r.Number(FieldMaturity)
	if err != nil {
		return nil, err
	}
	return NewOption(typ, strike, maturity, p.unit, p.cost)
}

// InstrumentRecord returns i as a record, using the same field names NewInstrument reads.
func InstrumentRecord(i Instrument) Record {
	r := Record{
		FieldType: string(i.Type()),
		FieldUnit: i.Unit(),
		FieldCost: i.Cost(),
	}
	if o, ok := i.(*Option); ok {
		r[FieldStrike] = o.Strike()
		r[FieldMaturity] = o.Maturity()
	}
	return r
}

// DefaultRecord returns the record of a new instrument of type t: one unit, options struck at
// the market spot for free and maturing with the portfolio, stocks bought at the market spot.
func DefaultRecord(t InstrumentType, m Market) Record {
	r := Record{
		FieldType: string(t),
		FieldUnit: 1.0,
	}
	if t.IsOption() {
		r[FieldCost] = 0.0
		r[FieldStrike] = m.Spot
		r[FieldMaturity] = m.Maturity
	} else {
		r[FieldCost] = m.Spot
	}
	return r
}

// NetPayoff is the payoff minus what was paid for the position.
func NetPayoff(i Instrument, m Market) float64 {
	return i.Payoff(m) - i.Unit()*i.Cost()
}

// PnL is the mark to market profit: the PV of one unit minus its cost, times the units held.
func PnL(ctx context.Context, i Instrument, m Market, e Engine) (float64, error) {
	pv, err := i.WithUnit(1).PV(ctx, m, e)
	if err != nil {
		return 0, err
	}
	return (pv - i.Cost()) * i.Unit(), nil
}

// ProfitDiscount is the payoff discounted over t years at the market rate, minus the cost of
// the position.
func ProfitDiscount(i Instrument, m Market, t float64) (float64, error) {
	rates, err := m.Rates()
	if err != nil {
		return 0, err
	}
	return i.Payoff(m)*math.Exp(-rates.Rate*t) - i.Unit()*i.Cost(), nil
}
