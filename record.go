package payoff

import (
	"encoding/json"
	"fmt"
	"math"
)

// Field names of instrument records.
const (
	FieldType     = "InstType"
	FieldUnit     = "InstUnit"
	FieldCost     = "InstCost"
	FieldStrike   = "OptionStrike"
	FieldMaturity = "OptionMaturity"
	FieldShow     = "Show"
)

// Field names of the market and engine record.
const (
	FieldRiskFreeRate  = "RiskFreeRate"
	FieldVolatility    = "UdVolatility"
	FieldDividendYield = "UdDivYieldRatio"
	FieldSpot          = "UdSpotForPrice"
	FieldPortMaturity  = "PortMaturity"
	FieldCostRounding  = "CostRounding"
	FieldRateFormat    = "RateFormat"
	FieldEngine        = "PricingEngine"
	FieldIterations    = "MCIteration"
)

// Record is a plain key/value mapping, the shape exchanged with the presentation layer.
// Values are those produced by encoding/json: float64, string, bool or json.Number.
type Record map[string]any

// Clone returns a shallow copy of r.
func (r Record) Clone() Record {
	c := make(Record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// Has reports whether key is set to a non nil value.
func (r Record) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// Number reads a finite numeric field.
func (r Record) Number(key string) (float64, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s not specified", ErrMissingField, key)
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, fmt.Errorf("%w: %s is not a number: %q", ErrInvalidParameter, key, n.String())
		}
	default:
		return 0, fmt.Errorf("%w: type <int> or <float> is required for %s, not %T", ErrInvalidParameter, key, v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, key, f)
	}
	return f, nil
}

// Integer reads a numeric field that must hold an integral value.
func (r Record) Integer(key string) (int, error) {
	f, err := r.Number(key)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: type <int> is required for %s, not %v", ErrInvalidParameter, key, f)
	}
	return int(f), nil
}

// Text reads a string field.
func (r Record) Text(key string) (string, error) {
	v, ok := r[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: %s not specified", ErrMissingField, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: type <string> is required for %s, not %T", ErrInvalidParameter, key, v)
	}
	return s, nil
}

// Flag reads an optional boolean field, false when absent or not a boolean.
func (r Record) Flag(key string) bool {
	b, _ := r[key].(bool)
	return b
}
