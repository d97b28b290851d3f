package payoff

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Price returns the PV of one unit of i, the premium proposed when a new instrument is added.
func Price(ctx context.Context, i Instrument, m Market, e Engine) (float64, error) {
	return i.WithUnit(1).PV(ctx, m, e)
}

// Premium returns the price of one unit of i rounded to the market cost rounding.
func Premium(ctx context.Context, i Instrument, m Market, e Engine) (float64, error) {
	pv, err := Price(ctx, i, m, e)
	if err != nil {
		return 0, err
	}
	return RoundCost(pv, m.CostRounding), nil
}

// RoundCost rounds v to digits decimals, half away from zero. Non finite values are returned
// unchanged.
func RoundCost(v float64, digits int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(int32(digits)).InexactFloat64()
}

// Quote is the price of one component of a portfolio.
type Quote struct {
	Instrument Instrument
	PV         float64 // PV of one unit
	Premium    float64 // PV of one unit rounded to the market cost rounding
}

// Quotes prices every component of p with its market and engine, in insertion order.
func Quotes(ctx context.Context, p *Portfolio) ([]Quote, error) {
	m, ok := p.Market()
	if !ok {
		return nil, fmt.Errorf("%w: market data not specified", ErrMissingField)
	}
	if p.Engine() == nil {
		return nil, fmt.Errorf("%w: pricing engine not specified", ErrMissingField)
	}
	quotes := make([]Quote, 0, len(p.components))
	for i, c := range p.components {
		pv, err := Price(ctx, c, m, p.Engine())
		if err != nil {
			return nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		quotes = append(quotes, Quote{Instrument: c, PV: pv, Premium: RoundCost(pv, m.CostRounding)})
	}
	return quotes, nil
}
