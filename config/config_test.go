package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/payoff"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pcc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	m, err := cfg.PricingMarket()
	if err != nil {
		t.Fatal(err)
	}
	if m != payoff.DefaultMarket() {
		t.Errorf("PricingMarket() = %+v, want %+v", m, payoff.DefaultMarket())
	}
	e, err := cfg.PricingEngine()
	if err != nil || e != (payoff.BlackScholes{}) {
		t.Errorf("PricingEngine() = %v, %v", e, err)
	}
	if opts := cfg.CurveOptions(); opts != payoff.DefaultCurveOptions() {
		t.Errorf("CurveOptions() = %+v", opts)
	}
	if cfg.Currency != "EUR" || cfg.Server.Addr != ":8080" || cfg.Verbose() {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
market:
  spot: 80
  rate_format: Compound
engine:
  name: Monte-Carlo
  iterations: 5000
curve:
  step: 0.5
currency: USD
logging:
  log_level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	m, _ := cfg.PricingMarket()
	if m.Spot != 80 || m.RateFormat != payoff.Compound || m.Volatility != 30 {
		t.Errorf("PricingMarket() = %+v", m)
	}
	if e, _ := cfg.PricingEngine(); e != (payoff.MonteCarlo{Iterations: 5000}) {
		t.Errorf("PricingEngine() = %#v", e)
	}
	if cfg.Curve.Step != 0.5 || cfg.Curve.Margin != 20 || cfg.Currency != "USD" || !cfg.Verbose() {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "market:\n  spot: 80\n")
	t.Setenv("PCC_SPOT", "120")
	t.Setenv("PCC_CURRENCY", "usd")
	t.Setenv("PCC_MC_ITERATIONS", "not a number")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Market.Spot != 120 || cfg.Currency != "USD" || cfg.Engine.Iterations != payoff.DefaultIterations {
		t.Errorf("Load() = %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad rate format", "market:\n  rate_format: Annual\n", payoff.ErrInvalidParameter},
		{"bad engine", "engine:\n  name: Binomial\n", payoff.ErrInvalidEngine},
		{"no iterations", "engine:\n  name: Monte-Carlo\n  iterations: 0\n", payoff.ErrInvalidEngine},
		{"bad step", "curve:\n  step: 0\n", payoff.ErrInvalidParameter},
		{"bad currency", "currency: XYZ1\n", nil},
		{"bad log level", "logging:\n  log_level: trace\n", nil},
		{"bad yaml", "market: [\n", nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if err == nil {
				t.Fatal("Load() succeeded")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) succeeded")
	}
}
