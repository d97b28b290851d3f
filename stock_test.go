package payoff

import (
	"context"
	"testing"
)

func TestEquity(t *testing.T) {
	ctx := context.Background()
	s, err := NewEquity(3, 95)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range []Engine{BlackScholes{}, MonteCarlo{Iterations: 10}} {
		for _, m := range []Market{
			DefaultMarket(),
			{RiskFreeRate: 5, Volatility: 10, DividendYield: 4, Spot: 60, Maturity: 2, RateFormat: Compound},
		} {
			pv, _ := s.PV(ctx, m, e)
			delta, _ := s.Delta(ctx, m, e)
			gamma, _ := s.Gamma(ctx, m, e)
			if payoff := s.Payoff(m); payoff != 3*m.Spot {
				t.Errorf("Payoff() = %v, want %v", payoff, 3*m.Spot)
			}
			if pv != 3*m.Spot || delta != 3 || gamma != 0 {
				t.Errorf("%s at %v: PV, Delta, Gamma = %v, %v, %v; want %v, 3, 0", e.Name(), m.Spot, pv, delta, gamma, 3*m.Spot)
			}
		}
	}
	if got := NetPayoff(s, DefaultMarket()); got != 3*100-3*95 {
		t.Errorf("NetPayoff() = %v, want 15", got)
	}
}
