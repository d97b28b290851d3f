package payoff

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const sampleFile = `{
  "data": [
    {"InstType": "CALL", "InstUnit": 1, "InstCost": 5.5, "OptionStrike": 95, "OptionMaturity": 1, "Show": true},
    {"InstType": "PUT", "InstUnit": -1, "InstCost": 3, "OptionStrike": 105, "Show": false},
    {"InstType": "STOCK", "InstUnit": 2, "InstCost": 100, "Show": true}
  ],
  "env": {
    "RiskFreeRate": 3, "UdVolatility": 30, "UdDivYieldRatio": 0, "UdSpotForPrice": 100,
    "PortMaturity": 1, "CostRounding": 2, "RateFormat": "Single",
    "PricingEngine": "Black-Scholes", "MCIteration": 1000000
  }
}`

func TestDecodeFile(t *testing.T) {
	f, err := DecodeFile(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatalf("DecodeFile() error: %v", err)
	}
	if len(f.Data) != 3 {
		t.Fatalf("len(Data) = %d, want 3", len(f.Data))
	}
	if f.Env[FieldEngine] != "Black-Scholes" {
		t.Errorf("Env[PricingEngine] = %v", f.Env[FieldEngine])
	}

	s, err := f.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if s.Market != DefaultMarket() {
		t.Errorf("Build().Market = %+v, want %+v", s.Market, DefaultMarket())
	}
	if s.Engine != (BlackScholes{}) {
		t.Errorf("Build().Engine = %#v", s.Engine)
	}
	components := s.Portfolio.Components()
	if got := components[1].(*Option).Maturity(); got != 1 {
		t.Errorf("put maturity = %v, want the portfolio maturity 1", got)
	}
	if got := s.Portfolio.Shown(); len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("Shown() = %v, want [0 2]", got)
	}
	if !s.Portfolio.HasStock() {
		t.Error("HasStock() = false, want true")
	}
}

func TestDecodeFile_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{"no data", `{"env": {}}`, ErrMissingField},
		{"no env", `{"data": []}`, ErrMissingField},
		{"data not a list", `{"data": {}, "env": {}}`, ErrInvalidParameter},
		{"row not an object", `{"data": [1], "env": {}}`, ErrInvalidParameter},
		{"env not an object", `{"data": [], "env": 3}`, ErrInvalidParameter},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeFile(strings.NewReader(tc.content)); !errors.Is(err, tc.wantErr) {
				t.Errorf("DecodeFile() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
	if _, err := DecodeFile(strings.NewReader("{")); err == nil {
		t.Error("DecodeFile(invalid json) succeeded")
	}
}

func TestFile_Build_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		edit    func(f *File)
		wantErr error
	}{
		{"bad engine", func(f *File) { f.Env[FieldEngine] = "Binomial" }, ErrInvalidEngine},
		{"monte carlo without iterations", func(f *File) {
			f.Env[FieldEngine] = MonteCarloName
			delete(f.Env, FieldIterations)
		}, ErrInvalidEngine},
		{"bad market", func(f *File) { f.Env[FieldVolatility] = "high" }, ErrInvalidParameter},
		{"bad row", func(f *File) { delete(f.Data[0], FieldStrike) }, ErrMissingField},
		{"inconsistent maturity", func(f *File) { f.Data[0][FieldMaturity] = 2.0 }, ErrInconsistentMaturity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := DecodeFile(strings.NewReader(sampleFile))
			if err != nil {
				t.Fatal(err)
			}
			tc.edit(&f)
			if _, err := f.Build(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Build() error = %v, want %v", err, tc.wantErr)
			}
			if err := Validate(f); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_JoinsFailures(t *testing.T) {
	f, err := DecodeFile(strings.NewReader(sampleFile))
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(f); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	f.Env[FieldEngine] = "Binomial"
	delete(f.Data[0], FieldCost)
	f.Data[2][FieldType] = "FUTURE"
	err = Validate(f)
	for _, want := range []error{ErrInvalidEngine, ErrMissingField, ErrInvalidParameter} {
		if !errors.Is(err, want) {
			t.Errorf("Validate() error = %v, want %v", err, want)
		}
	}
	if !strings.Contains(err.Error(), "data[2]") {
		t.Errorf("Validate() error = %q, want the failing row index", err)
	}
}

func TestEncodeFile(t *testing.T) {
	f := DefaultFile()
	var buf bytes.Buffer
	if err := EncodeFile(&buf, f); err != nil {
		t.Fatal(err)
	}
	back, err := DecodeFile(&buf)
	if err != nil {
		t.Fatalf("DecodeFile(EncodeFile()) error: %v", err)
	}
	s, err := back.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if s.Market != DefaultMarket() || s.Engine != DefaultEngine() || len(s.Portfolio.Components()) != 1 {
		t.Errorf("Build() = %+v", s)
	}

	path := filepath.Join(t.TempDir(), "portfolio.json")
	if err := SaveFile(path, f); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err != nil {
		t.Errorf("LoadFile() error: %v", err)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("LoadFile(missing) succeeded")
	}
}
