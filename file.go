package payoff

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
)

// File is a saved portfolio: one record per instrument row and the environment record holding
// the market and the engine.
//
//	{"data": [{"InstType": "CALL", ...}], "env": {"RiskFreeRate": 3, ...}}
type File struct {
	Data []Record `json:"data"`
	Env  Record   `json:"env"`
}

// Setup is everything needed to generate curves from a File.
type Setup struct {
	Portfolio *Portfolio
	Market    Market
	Engine    Engine
}

// DefaultFile returns a file holding a single default call option and the default environment.
func DefaultFile() File {
	m := DefaultMarket()
	env := m.Record()
	for k, v := range EngineRecord(DefaultEngine()) {
		env[k] = v
	}
	env[FieldIterations] = float64(DefaultIterations)
	row := DefaultRecord(Call, m)
	row[FieldShow] = false
	return File{Data: []Record{row}, Env: env}
}

// DecodeFile reads a portfolio file. Both the data and the env keys are required.
func DecodeFile(r io.Reader) (File, error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return File{}, fmt.Errorf("cannot decode portfolio file: %w", err)
	}
	var f File

	jdata, err := jsonpath.Get("$.data", doc)
	if err != nil {
		return File{}, fmt.Errorf("%w: data not specified: %v", ErrMissingField, err)
	}
	rows, ok := jdata.([]any)
	if !ok {
		return File{}, fmt.Errorf("%w: data must be a list of instruments, not %T", ErrInvalidParameter, jdata)
	}
	for i, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return File{}, fmt.Errorf("%w: data[%d] must be an object, not %T", ErrInvalidParameter, i, row)
		}
		f.Data = append(f.Data, Record(obj))
	}

	jenv, err := jsonpath.Get("$.env", doc)
	if err != nil {
		return File{}, fmt.Errorf("%w: env not specified: %v", ErrMissingField, err)
	}
	// jsonpath may wrap a single answer in a list
	if jlist, ok := jenv.([]any); ok && len(jlist) == 1 {
		jenv = jlist[0]
	}
	env, ok := jenv.(map[string]any)
	if !ok {
		return File{}, fmt.Errorf("%w: env must be an object, not %T", ErrInvalidParameter, jenv)
	}
	f.Env = Record(env)
	return f, nil
}

// LoadFile decodes the portfolio file at path.
func LoadFile(path string) (File, error) {
	r, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("cannot open portfolio file %q: %w", path, err)
	}
	defer r.Close()
	f, err := DecodeFile(r)
	if err != nil {
		return File{}, fmt.Errorf("in %q: %w", path, err)
	}
	return f, nil
}

// EncodeFile writes f as indented JSON, keys in lexical order.
func EncodeFile(w io.Writer, f File) error {
	if f.Data == nil {
		f.Data = []Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// SaveFile writes f to path.
func SaveFile(path string, f File) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create portfolio file %q: %w", path, err)
	}
	if err := EncodeFile(w, f); err != nil {
		w.Close()
		return fmt.Errorf("cannot write portfolio file %q: %w", path, err)
	}
	return w.Close()
}

// Market reads the market part of the environment.
func (f File) Market() (Market, error) { return NewMarket(f.Env) }

// Engine reads the engine part of the environment.
func (f File) Engine() (Engine, error) { return ParseEngine(f.Env) }

// Instruments builds one instrument per row. Options without a maturity mature with the
// portfolio (PortMaturity of the env). shown holds the indexes of rows flagged Show.
func (f File) Instruments(m Market) (instruments []Instrument, shown []int, err error) {
	for i, row := range f.Data {
		if typ, _ := row.Text(FieldType); InstrumentType(typ).IsOption() && !row.Has(FieldMaturity) {
			row = row.Clone()
			row[FieldMaturity] = m.Maturity
		}
		inst, err := NewInstrument(row)
		if err != nil {
			return nil, nil, fmt.Errorf("data[%d]: %w", i, err)
		}
		instruments = append(instruments, inst)
		if row.Flag(FieldShow) {
			shown = append(shown, i)
		}
	}
	return instruments, shown, nil
}

// Build turns f into a portfolio ready to generate curves.
func (f File) Build() (*Setup, error) {
	m, err := f.Market()
	if err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	e, err := f.Engine()
	if err != nil {
		return nil, fmt.Errorf("env: %w", err)
	}
	instruments, shown, err := f.Instruments(m)
	if err != nil {
		return nil, err
	}
	p, err := NewPortfolio(instruments)
	if err != nil {
		return nil, err
	}
	if err := p.SetMarket(m); err != nil {
		return nil, err
	}
	if err := p.SetEngine(e); err != nil {
		return nil, err
	}
	if err := p.SetShow(shown...); err != nil {
		return nil, err
	}
	return &Setup{Portfolio: p, Market: m, Engine: e}, nil
}
