package payoff

import (
	"errors"
	"testing"
)

func TestParseEngine(t *testing.T) {
	testCases := []struct {
		name     string
		record   Record
		want     Engine
		wantErrs []error
	}{
		{"black scholes", Record{FieldEngine: "Black-Scholes"}, BlackScholes{}, nil},
		{"black scholes ignores iterations", Record{FieldEngine: "Black-Scholes", FieldIterations: "x"}, BlackScholes{}, nil},
		{"monte carlo", Record{FieldEngine: "Monte-Carlo", FieldIterations: 1000.0}, MonteCarlo{Iterations: 1000}, nil},
		{"monte carlo without iterations", Record{FieldEngine: "Monte-Carlo"}, nil, []error{ErrInvalidEngine, ErrInvalidParameter, ErrMissingField}},
		{"monte carlo with zero iterations", Record{FieldEngine: "Monte-Carlo", FieldIterations: 0.0}, nil, []error{ErrInvalidEngine}},
		{"monte carlo with fractional iterations", Record{FieldEngine: "Monte-Carlo", FieldIterations: 10.5}, nil, []error{ErrInvalidEngine, ErrInvalidParameter}},
		{"monte carlo with text iterations", Record{FieldEngine: "Monte-Carlo", FieldIterations: "1000"}, nil, []error{ErrInvalidEngine, ErrInvalidParameter}},
		{"unknown engine", Record{FieldEngine: "Binomial"}, nil, []error{ErrInvalidEngine}},
		{"no engine", Record{}, nil, []error{ErrInvalidEngine, ErrMissingField}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseEngine(tc.record)
			for _, want := range tc.wantErrs {
				if !errors.Is(err, want) {
					t.Errorf("ParseEngine() error = %v, want %v", err, want)
				}
			}
			if tc.wantErrs == nil && err != nil {
				t.Fatalf("ParseEngine() unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("ParseEngine() = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestEngineRecord(t *testing.T) {
	for _, e := range []Engine{BlackScholes{}, MonteCarlo{Iterations: 5000}} {
		t.Run(e.Name(), func(t *testing.T) {
			got, err := ParseEngine(EngineRecord(e))
			if err != nil {
				t.Fatalf("ParseEngine(EngineRecord()) error: %v", err)
			}
			if got != e {
				t.Errorf("ParseEngine(EngineRecord()) = %#v, want %#v", got, e)
			}
		})
	}
}

func TestNewMonteCarlo(t *testing.T) {
	if _, err := NewMonteCarlo(-1); !errors.Is(err, ErrInvalidEngine) {
		t.Errorf("NewMonteCarlo(-1) error = %v, want %v", err, ErrInvalidEngine)
	}
	if mc, err := NewMonteCarlo(DefaultIterations); err != nil || mc.Iterations != 1000000 {
		t.Errorf("NewMonteCarlo(DefaultIterations) = %v, %v", mc, err)
	}
}
