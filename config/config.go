// Package config holds the settings of pcc: the default pricing environment, the curve sweep,
// the display currency and the server address.
//
// Settings come from the defaults, overridden by a YAML file, overridden by PCC_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/payoff"
	"gopkg.in/yaml.v2"
)

// MarketConfig is the pricing environment used when a portfolio file does not carry one.
type MarketConfig struct {
	RiskFreeRate  float64 `yaml:"risk_free_rate"` // percent
	Volatility    float64 `yaml:"volatility"`     // percent
	DividendYield float64 `yaml:"dividend_yield"` // percent
	Spot          float64 `yaml:"spot"`
	Maturity      float64 `yaml:"maturity"` // years
	CostRounding  int     `yaml:"cost_rounding"`
	RateFormat    string  `yaml:"rate_format"`
}

// EngineConfig selects the default pricing engine.
type EngineConfig struct {
	Name       string `yaml:"name"`       // Black-Scholes or Monte-Carlo
	Iterations int    `yaml:"iterations"` // Monte Carlo paths
}

// CurveConfig controls the spot sweep of curves.
type CurveConfig struct {
	Margin float64 `yaml:"margin"`
	Step   float64 `yaml:"step"`
}

// ServerConfig represents the HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"` // debug, info or warn
}

type Config struct {
	Market   MarketConfig  `yaml:"market"`
	Engine   EngineConfig  `yaml:"engine"`
	Curve    CurveConfig   `yaml:"curve"`
	Currency string        `yaml:"currency"`
	Server   ServerConfig  `yaml:"server"`
	Logging  LoggingConfig `yaml:"logging"`
}

// Default returns the built-in settings.
func Default() *Config {
	m := payoff.DefaultMarket()
	opts := payoff.DefaultCurveOptions()
	return &Config{
		Market: MarketConfig{
			RiskFreeRate:  float64(m.RiskFreeRate),
			Volatility:    float64(m.Volatility),
			DividendYield: float64(m.DividendYield),
			Spot:          m.Spot,
			Maturity:      m.Maturity,
			CostRounding:  m.CostRounding,
			RateFormat:    string(m.RateFormat),
		},
		Engine:   EngineConfig{Name: payoff.DefaultEngine().Name(), Iterations: payoff.DefaultIterations},
		Curve:    CurveConfig{Margin: opts.Margin, Step: opts.Step},
		Currency: "EUR",
		Server:   ServerConfig{Addr: ":8080"},
		Logging:  LoggingConfig{LogLevel: "info"},
	}
}

// Load returns the default settings overridden by the YAML file at path, if path is not
// empty, then by the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("cannot parse config %q: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Market.RiskFreeRate = getEnvFloat("PCC_RISK_FREE_RATE", c.Market.RiskFreeRate)
	c.Market.Volatility = getEnvFloat("PCC_VOLATILITY", c.Market.Volatility)
	c.Market.DividendYield = getEnvFloat("PCC_DIVIDEND_YIELD", c.Market.DividendYield)
	c.Market.Spot = getEnvFloat("PCC_SPOT", c.Market.Spot)
	c.Market.Maturity = getEnvFloat("PCC_MATURITY", c.Market.Maturity)
	c.Market.CostRounding = getEnvInt("PCC_COST_ROUNDING", c.Market.CostRounding)
	c.Market.RateFormat = getEnv("PCC_RATE_FORMAT", c.Market.RateFormat)
	c.Engine.Name = getEnv("PCC_ENGINE", c.Engine.Name)
	c.Engine.Iterations = getEnvInt("PCC_MC_ITERATIONS", c.Engine.Iterations)
	c.Curve.Margin = getEnvFloat("PCC_CURVE_MARGIN", c.Curve.Margin)
	c.Curve.Step = getEnvFloat("PCC_CURVE_STEP", c.Curve.Step)
	c.Currency = strings.ToUpper(getEnv("PCC_CURRENCY", c.Currency))
	c.Server.Addr = getEnv("PCC_ADDR", c.Server.Addr)
	c.Logging.LogLevel = strings.ToLower(getEnv("PCC_LOG_LEVEL", c.Logging.LogLevel))
}

// Validate checks that the settings can be used to build a market, an engine and curves.
func (c *Config) Validate() error {
	if _, err := c.PricingMarket(); err != nil {
		return fmt.Errorf("config market: %w", err)
	}
	if _, err := c.PricingEngine(); err != nil {
		return fmt.Errorf("config engine: %w", err)
	}
	if c.Curve.Step <= 0 || c.Curve.Margin < 0 {
		return fmt.Errorf("config curve: %w: margin %v and step %v", payoff.ErrInvalidParameter, c.Curve.Margin, c.Curve.Step)
	}
	if !payoff.KnownCurrency(c.Currency) {
		return fmt.Errorf("config: unknown currency %q", c.Currency)
	}
	switch c.Logging.LogLevel {
	case "debug", "info", "warn":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Logging.LogLevel)
	}
	return nil
}

// Env returns the environment record of a portfolio file built from the settings.
func (c *Config) Env() payoff.Record {
	return payoff.Record{
		payoff.FieldRiskFreeRate:  c.Market.RiskFreeRate,
		payoff.FieldVolatility:    c.Market.Volatility,
		payoff.FieldDividendYield: c.Market.DividendYield,
		payoff.FieldSpot:          c.Market.Spot,
		payoff.FieldPortMaturity:  c.Market.Maturity,
		payoff.FieldCostRounding:  float64(c.Market.CostRounding),
		payoff.FieldRateFormat:    c.Market.RateFormat,
		payoff.FieldEngine:        c.Engine.Name,
		payoff.FieldIterations:    float64(c.Engine.Iterations),
	}
}

// PricingMarket returns the configured market.
func (c *Config) PricingMarket() (payoff.Market, error) { return payoff.NewMarket(c.Env()) }

// PricingEngine returns the configured engine.
func (c *Config) PricingEngine() (payoff.Engine, error) { return payoff.ParseEngine(c.Env()) }

// CurveOptions returns the configured sweep, with the shown components.
func (c *Config) CurveOptions() payoff.CurveOptions {
	return payoff.CurveOptions{Margin: c.Curve.Margin, Step: c.Curve.Step, Components: true}
}

// Verbose reports whether debug logs are enabled.
func (c *Config) Verbose() bool { return c.Logging.LogLevel == "debug" }

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
