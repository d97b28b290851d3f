package payoff

import (
	"context"
	"errors"
	"testing"
)

func callRecord() Record {
	return Record{FieldType: "CALL", FieldUnit: 1.0, FieldCost: 5.0, FieldStrike: 100.0, FieldMaturity: 1.0}
}

func TestNewInstrument(t *testing.T) {
	testCases := []struct {
		name    string
		record  Record
		want    string
		wantErr error
	}{
		{"call", callRecord(), "1 * 100 CALL, Maturity 1", nil},
		{"put", with(callRecord(), FieldType, "PUT", FieldUnit, -2.0), "-2 * 100 PUT, Maturity 1", nil},
		{"stock", Record{FieldType: "STOCK", FieldUnit: 3.0, FieldCost: 100.0}, "3 * STOCK", nil},
		{"stock ignores option fields", Record{FieldType: "STOCK", FieldUnit: 1, FieldCost: 100, FieldStrike: "x"}, "1 * STOCK", nil},
		{"missing type", with(callRecord(), FieldType, nil), "", ErrMissingField},
		{"unknown type", with(callRecord(), FieldType, "FUTURE"), "", ErrInvalidParameter},
		{"missing unit", with(callRecord(), FieldUnit, nil), "", ErrMissingField},
		{"missing cost", with(callRecord(), FieldCost, nil), "", ErrMissingField},
		{"missing strike", with(callRecord(), FieldStrike, nil), "", ErrMissingField},
		{"missing maturity", with(callRecord(), FieldMaturity, nil), "", ErrMissingField},
		{"text strike", with(callRecord(), FieldStrike, "100"), "", ErrInvalidParameter},
		{"boolean unit", with(callRecord(), FieldUnit, true), "", ErrInvalidParameter},
		{"negative strike", with(callRecord(), FieldStrike, -1.0), "", ErrInvalidParameter},
		{"negative maturity", with(callRecord(), FieldMaturity, -1.0), "", ErrInvalidParameter},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewInstrument(tc.record)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("NewInstrument() error = %v, want %v", err, tc.wantErr)
			}
			if err != nil {
				return
			}
			if got.String() != tc.want {
				t.Errorf("NewInstrument() = %q, want %q", got.String(), tc.want)
			}
		})
	}
}

func TestInstrumentRecord(t *testing.T) {
	for _, r := range []Record{callRecord(), {FieldType: "STOCK", FieldUnit: 2.0, FieldCost: 95.0}} {
		inst, err := NewInstrument(r)
		if err != nil {
			t.Fatal(err)
		}
		back, err := NewInstrument(InstrumentRecord(inst))
		if err != nil {
			t.Fatalf("NewInstrument(InstrumentRecord()) error: %v", err)
		}
		if back.String() != inst.String() || back.Cost() != inst.Cost() {
			t.Errorf("NewInstrument(InstrumentRecord()) = %v, want %v", back, inst)
		}
	}
}

func TestDefaultRecord(t *testing.T) {
	m := DefaultMarket().WithSpot(90)
	testCases := []struct {
		typ        InstrumentType
		wantCost   float64
		wantStrike any
	}{
		{Call, 0, 90.0},
		{Put, 0, 90.0},
		{Stock, 90, nil},
	}
	for _, tc := range testCases {
		t.Run(string(tc.typ), func(t *testing.T) {
			r := DefaultRecord(tc.typ, m)
			if r[FieldUnit] != 1.0 || r[FieldCost] != tc.wantCost || r[FieldStrike] != tc.wantStrike {
				t.Errorf("DefaultRecord(%s) = %v", tc.typ, r)
			}
			if _, err := NewInstrument(r); err != nil {
				t.Errorf("NewInstrument(DefaultRecord(%s)) error: %v", tc.typ, err)
			}
		})
	}
}

func TestNetPayoff(t *testing.T) {
	ctx := context.Background()
	m := DefaultMarket().WithSpot(120)
	testCases := []struct {
		name   string
		record Record
		want   float64
	}{
		{"long call in the money", with(callRecord(), FieldUnit, 2.0), 2*20 - 2*5},
		{"short put out of the money", with(callRecord(), FieldType, "PUT", FieldUnit, -1.0), 5},
		{"stock", Record{FieldType: "STOCK", FieldUnit: 3.0, FieldCost: 100.0}, 3*120 - 3*100},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			inst, err := NewInstrument(tc.record)
			if err != nil {
				t.Fatal(err)
			}
			if got := NetPayoff(inst, m); got != tc.want {
				t.Errorf("NetPayoff() = %v, want %v", got, tc.want)
			}
			if got, want := NetPayoff(inst, m), inst.Payoff(m)-inst.Unit()*inst.Cost(); got != want {
				t.Errorf("NetPayoff() = %v, want Payoff - unit*cost = %v", got, want)
			}
			pnl, err := PnL(ctx, inst, m, BlackScholes{})
			if err != nil {
				t.Fatal(err)
			}
			pv, _ := inst.WithUnit(1).PV(ctx, m, BlackScholes{})
			if want := (pv - inst.Cost()) * inst.Unit(); !closeTo(pnl, want, 1e-12) {
				t.Errorf("PnL() = %v, want %v", pnl, want)
			}
		})
	}
}

func TestProfitDiscount(t *testing.T) {
	inst, err := NewInstrument(with(callRecord(), FieldCost, 1.0))
	if err != nil {
		t.Fatal(err)
	}
	m := Market{RiskFreeRate: 5, Volatility: 30, Spot: 110, RateFormat: Compound}
	got, err := ProfitDiscount(inst, m, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := 10*0.9048374180359595 - 1
	if !closeTo(got, want, 1e-9) {
		t.Errorf("ProfitDiscount() = %v, want %v", got, want)
	}
}

func TestWithUnit(t *testing.T) {
	inst, err := NewInstrument(with(callRecord(), FieldUnit, 4.0))
	if err != nil {
		t.Fatal(err)
	}
	one := inst.WithUnit(1)
	if one.Unit() != 1 || inst.Unit() != 4 {
		t.Errorf("WithUnit(1) = %v, original %v; want 1 and 4", one.Unit(), inst.Unit())
	}
}
