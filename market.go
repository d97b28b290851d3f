package payoff

import (
	"fmt"
	"math"
)

// RateFormat tells how the risk free rate and the dividend yield are quoted.
type RateFormat string

const (
	// Single rates are simple annual rates, converted with ln(1+r) before pricing.
	Single RateFormat = "Single"
	// Compound rates are already continuously compounded.
	Compound RateFormat = "Compound"
)

// ParseRateFormat parses a rate format name.
func ParseRateFormat(s string) (RateFormat, error) {
	switch f := RateFormat(s); f {
	case Single, Compound:
		return f, nil
	default:
		return "", fmt.Errorf("%w: invalid rate type given: %q", ErrInvalidParameter, s)
	}
}

// ContinuousRate converts a simple annual rate (as a fraction) into its continuously compounded equivalent.
func ContinuousRate(r float64) float64 { return math.Log1p(r) }

// Market is the market environment used to value instruments.
//
// Rates, volatility and dividend yield are kept as raw percentages; they are only converted
// by Rates, when consumed.
type Market struct {
	RiskFreeRate  Percent
	Volatility    Percent
	DividendYield Percent
	Spot          float64 // spot used for pricing
	Maturity      float64 // portfolio maturity in years
	CostRounding  int     // digits kept when a price is displayed as a premium
	RateFormat    RateFormat
}

// DefaultMarket returns the environment used when nothing else is specified.
func DefaultMarket() Market {
	return Market{
		RiskFreeRate:  3,
		Volatility:    30,
		DividendYield: 0,
		Spot:          100,
		Maturity:      1,
		CostRounding:  2,
		RateFormat:    Single,
	}
}

// NewMarket builds a validated Market from a record.
//
// RiskFreeRate, UdVolatility, UdDivYieldRatio, UdSpotForPrice and RateFormat are required.
// PortMaturity defaults to 0 and CostRounding to 2.
func NewMarket(r Record) (m Market, err error) {
	rate, err := r.Number(FieldRiskFreeRate)
	if err != nil {
		return m, err
	}
	vol, err := r.Number(FieldVolatility)
	if err != nil {
		return m, err
	}
	div, err := r.Number(FieldDividendYield)
	if err != nil {
		return m, err
	}
	spot, err := r.Number(FieldSpot)
	if err != nil {
		return m, err
	}
	format, err := r.Text(FieldRateFormat)
	if err != nil {
		return m, err
	}
	m = Market{
		RiskFreeRate:  Percent(rate),
		Volatility:    Percent(vol),
		DividendYield: Percent(div),
		Spot:          spot,
		CostRounding:  2,
	}
	if m.RateFormat, err = ParseRateFormat(format); err != nil {
		return Market{}, err
	}
	if r.Has(FieldPortMaturity) {
		if m.Maturity, err = r.Number(FieldPortMaturity); err != nil {
			return Market{}, err
		}
	}
	if r.Has(FieldCostRounding) {
		if m.CostRounding, err = r.Integer(FieldCostRounding); err != nil {
			return Market{}, err
		}
	}
	if err := m.Validate(); err != nil {
		return Market{}, err
	}
	return m, nil
}

// Validate checks the domain of every field.
func (m Market) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{FieldRiskFreeRate, float64(m.RiskFreeRate)},
		{FieldVolatility, float64(m.Volatility)},
		{FieldDividendYield, float64(m.DividendYield)},
		{FieldSpot, m.Spot},
		{FieldPortMaturity, m.Maturity},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, f.name, f.value)
		}
	}
	if m.Volatility < 0 {
		return fmt.Errorf("%w: non-negative value is required for %s, not %v", ErrInvalidParameter, FieldVolatility, float64(m.Volatility))
	}
	if m.Spot < 0 {
		return fmt.Errorf("%w: non-negative value is required for %s, not %v", ErrInvalidParameter, FieldSpot, m.Spot)
	}
	if m.Maturity < 0 {
		return fmt.Errorf("%w: non-negative value is required for %s, not %v", ErrInvalidParameter, FieldPortMaturity, m.Maturity)
	}
	if m.CostRounding < 0 {
		return fmt.Errorf("%w: non-negative value is required for %s, not %d", ErrInvalidParameter, FieldCostRounding, m.CostRounding)
	}
	_, err := ParseRateFormat(string(m.RateFormat))
	return err
}

// WithSpot returns a copy of m priced at spot.
func (m Market) WithSpot(spot float64) Market {
	m.Spot = spot
	return m
}

// Record returns m as a record, using the same field names NewMarket reads.
func (m Market) Record() Record {
	return Record{
		FieldRiskFreeRate:  float64(m.RiskFreeRate),
		FieldVolatility:    float64(m.Volatility),
		FieldDividendYield: float64(m.DividendYield),
		FieldSpot:          m.Spot,
		FieldPortMaturity:  m.Maturity,
		FieldCostRounding:  float64(m.CostRounding),
		FieldRateFormat:    string(m.RateFormat),
	}
}

// Rates are the engine ready inputs derived from a Market.
type Rates struct {
	Rate       float64 // continuously compounded risk free rate
	Volatility float64 // annual volatility as a fraction
	Dividend   float64 // continuously compounded dividend yield
	Spot       float64
}

// Rates normalizes m: percentages become fractions, and for Single rate format the rate and
// the dividend yield are converted to continuous rates.
func (m Market) Rates() (Rates, error) {
	format, err := ParseRateFormat(string(m.RateFormat))
	if err != nil {
		return Rates{}, err
	}
	r := Rates{
		Rate:       m.RiskFreeRate.Fraction(),
		Volatility: m.Volatility.Fraction(),
		Dividend:   m.DividendYield.Fraction(),
		Spot:       m.Spot,
	}
	if format == Single {
		r.Rate = ContinuousRate(r.Rate)
		r.Dividend = ContinuousRate(r.Dividend)
	}
	for _, v := range []float64{r.Rate, r.Volatility, r.Dividend, r.Spot} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Rates{}, fmt.Errorf("%w: market cannot be normalized: %+v", ErrInvalidParameter, m)
		}
	}
	return r, nil
}
