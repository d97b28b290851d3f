package payoff

import (
	"context"
	"fmt"
	"math"

	"github.com/etnz/payoff/montecarlo"
	"gonum.org/v1/gonum/stat/distuv"
)

// bump is the spot shift used by Monte Carlo finite differences.
const bump = 0.01

// Option is a European vanilla call or put.
type Option struct {
	position
	typ      InstrumentType
	strike   float64
	maturity float64
}

// NewOption returns a validated option. Strike and maturity (in years) must be non negative.
func NewOption(t InstrumentType, strike, maturity, unit, cost float64) (*Option, error) {
	if !t.IsOption() {
		return nil, fmt.Errorf("%w: invalid option type given: %q", ErrInvalidParameter, t)
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{FieldStrike, strike}, {FieldMaturity, maturity}, {FieldUnit, unit}, {FieldCost, cost},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return nil, fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	if strike < 0 {
		return nil, fmt.Errorf("%w: non-negative value is required for %s, not %v", ErrInvalidParameter, FieldStrike, strike)
	}
	if maturity < 0 {
		return nil, fmt.Errorf("%w: non-negative value is required for %s, not %v", ErrInvalidParameter, FieldMaturity, maturity)
	}
	return &Option{position: position{unit: unit, cost: cost}, typ: t, strike: strike, maturity: maturity}, nil
}

func (o *Option) Type() InstrumentType { return o.typ }
func (o *Option) Strike() float64      { return o.strike }
func (o *Option) Maturity() float64    { return o.maturity }
func (o *Option) instrument()          {}

func (o *Option) WithUnit(u float64) Instrument {
	c := *o
	c.unit = u
	return &c
}

func (o *Option) String() string {
	return fmt.Sprintf("%g * %g %s, Maturity %g", o.unit, o.strike, o.typ, o.maturity)
}

// sign is +1 for a call and -1 for a put.
func (o *Option) sign() float64 {
	if o.typ == Put {
		return -1
	}
	return 1
}

// intrinsic is the exercise value of one unit when the underlying is at s.
func (o *Option) intrinsic(s float64) float64 {
	return math.Max(o.sign()*(s-o.strike), 0)
}

func (o *Option) Payoff(m Market) float64 { return o.intrinsic(m.Spot) * o.unit }

func (o *Option) PV(ctx context.Context, m Market, e Engine) (float64, error) {
	return o.value(ctx, m, e, o.bsPV, func(s float64) float64 { return o.intrinsic(s) })
}

func (o *Option) Delta(ctx context.Context, m Market, e Engine) (float64, error) {
	return o.value(ctx, m, e, o.bsDelta, func(s float64) float64 {
		return (o.intrinsic(s+bump) - o.intrinsic(s-bump)) / (2 * bump)
	})
}

func (o *Option) Gamma(ctx context.Context, m Market, e Engine) (float64, error) {
	return o.value(ctx, m, e, o.bsGamma, func(s float64) float64 {
		at := o.intrinsic(s)
		return ((o.intrinsic(s+2*bump) - at) - (at - o.intrinsic(s-2*bump))) / (4 * bump * bump)
	})
}

// value dispatches on the engine. closed is the Black-Scholes formula for one unit, sample is
// the per path quantity averaged and discounted by Monte Carlo.
func (o *Option) value(ctx context.Context, m Market, e Engine, closed func(Rates) float64, sample func(float64) float64) (float64, error) {
	rates, err := m.Rates()
	if err != nil {
		return 0, err
	}
	switch e := e.(type) {
	case BlackScholes:
		return closed(rates) * o.unit, nil
	case MonteCarlo:
		if err := e.validate(); err != nil {
			return 0, err
		}
		spots, err := montecarlo.TerminalSpots(ctx, e.Iterations, montecarlo.Params{
			Spot:       rates.Spot,
			Rate:       rates.Rate,
			Dividend:   rates.Dividend,
			Volatility: rates.Volatility,
			Maturity:   o.maturity,
		})
		if err != nil {
			return 0, err
		}
		return montecarlo.Mean(spots, sample) * math.Exp(-rates.Rate*o.maturity) * o.unit, nil
	case nil:
		return 0, fmt.Errorf("%w: engine not specified", ErrMissingField)
	default:
		return 0, fmt.Errorf("%w: invalid evaluation engine given: %q", ErrInvalidEngine, e.Name())
	}
}

// degenerate reports inputs where d1 is undefined: no diffusion left, null spot or null strike.
// There the option is worth its discounted forward intrinsic value.
func (o *Option) degenerate(r Rates) bool {
	return r.Volatility*math.Sqrt(o.maturity) == 0 || r.Spot == 0 || o.strike == 0
}

// forwards returns the discounted spot and strike.
func (o *Option) forwards(r Rates) (spot, strike float64) {
	return r.Spot * math.Exp(-r.Dividend*o.maturity), o.strike * math.Exp(-r.Rate*o.maturity)
}

func (o *Option) d1(r Rates) float64 {
	sd := r.Volatility * math.Sqrt(o.maturity)
	return (math.Log(r.Spot/o.strike) + (r.Rate-r.Dividend+r.Volatility*r.Volatility/2)*o.maturity) / sd
}

func (o *Option) bsPV(r Rates) float64 {
	fs, fk := o.forwards(r)
	w := o.sign()
	if o.degenerate(r) {
		return math.Max(w*(fs-fk), 0)
	}
	d1 := o.d1(r)
	d2 := d1 - r.Volatility*math.Sqrt(o.maturity)
	return w * (fs*distuv.UnitNormal.CDF(w*d1) - fk*distuv.UnitNormal.CDF(w*d2))
}

func (o *Option) bsDelta(r Rates) float64 {
	w := o.sign()
	carry := math.Exp(-r.Dividend * o.maturity)
	if o.degenerate(r) {
		fs, fk := o.forwards(r)
		switch diff := w * (fs - fk); {
		case diff > 0:
			return w * carry
		case diff == 0 && fs > 0:
			return w * carry / 2
		default:
			return 0
		}
	}
	return w * carry * distuv.UnitNormal.CDF(w*o.d1(r))
}

func (o *Option) bsGamma(r Rates) float64 {
	if o.degenerate(r) {
		return 0
	}
	sd := r.Volatility * math.Sqrt(o.maturity)
	return distuv.UnitNormal.Prob(o.d1(r)) * math.Exp(-r.Dividend*o.maturity) / (r.Spot * sd)
}
