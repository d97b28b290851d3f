package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/etnz/payoff"
)

// jsonObjectWriter helps construct a JSON object with a specific field order.
// Its zero value is ready to use.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Append adds a new key-value pair to the JSON object. The value is marshaled
// to JSON using `json.Marshal`.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	valBytes, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("failed to marshal value for key %q: %w", key, err)
		return w
	}
	w.WriteString(fmt.Sprintf("%q:", key))
	w.Write(valBytes)
	w.WriteString(",")
	return w
}

// Optional appends a key-value pair only if the value is not its type's zero value.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	v := reflect.ValueOf(value)
	if !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON finalizes the JSON object construction, wraps the content in
// braces, and returns the complete JSON byte slice.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	content := bytes.TrimSuffix(w.Bytes(), []byte(","))
	final := make([]byte, 0, len(content)+2)
	final = append(final, '{')
	final = append(final, content...)
	final = append(final, '}')
	return final, nil
}

// finite replaces values JSON cannot carry by nulls.
func finite(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := range values {
		if !math.IsNaN(values[i]) && !math.IsInf(values[i], 0) {
			out[i] = &values[i]
		}
	}
	return out
}

// CurveJSON encodes c as
//
//	{"type":"PV","x":[...],"series":[{"label":"Portfolio","y":[...]},...],"referenceX":0,"referenceY":100}
func CurveJSON(c *payoff.Curve) ([]byte, error) {
	series := make([]json.Marshaler, len(c.Y))
	for i, y := range c.Y {
		s := new(jsonObjectWriter)
		s.Append("label", c.Labels[i]).Append("y", finite(y))
		series[i] = s
	}
	var w jsonObjectWriter
	w.Append("type", c.Type.String()).
		Append("x", c.X).
		Append("series", series).
		Append("referenceX", c.ReferenceX).
		Append("referenceY", c.ReferenceY)
	return w.MarshalJSON()
}

// PricesJSON encodes the quotes as a list of objects, the currency is added when set.
func PricesJSON(quotes []payoff.Quote, currency string) ([]byte, error) {
	out := make([]json.Marshaler, len(quotes))
	for i, q := range quotes {
		w := new(jsonObjectWriter)
		w.Append("instrument", q.Instrument.String()).
			Append("type", string(q.Instrument.Type())).
			Append("unit", q.Instrument.Unit()).
			Append("cost", q.Instrument.Cost()).
			Append("pv", q.PV).
			Append("premium", q.Premium).
			Optional("currency", currency)
		out[i] = w
	}
	return json.Marshal(out)
}
