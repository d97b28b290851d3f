// Package cmd implements the CLI application to draw the curves of an option portfolio.
package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"log"

	"github.com/etnz/payoff"
	"github.com/etnz/payoff/config"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&curveCmd{}, "curves")
	c.Register(&priceCmd{}, "curves")

	c.Register(&initCmd{}, "portfolio")
	c.Register(&checkCmd{}, "portfolio")

	c.Register(&serveCmd{}, "server")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio.json", "Path to the portfolio file (JSON format)")
var configFile = flag.String("config", "", "Path to the YAML configuration file")
var defaultCurrency = flag.String("currency", "", "Currency used to display money, overrides the configuration")
var Verbose = flag.Bool("verbose", false, "log computation details")

// LoadConfig loads the configuration file, if any, and applies the global flags over it.
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *defaultCurrency != "" {
		cfg.Currency = *defaultCurrency
	}
	if *Verbose {
		cfg.Logging.LogLevel = "debug"
	}
	return cfg, nil
}

// ConfigFile returns the portfolio file made of a single default call priced in the
// configuration environment.
func ConfigFile(cfg *config.Config) (payoff.File, error) {
	m, err := cfg.PricingMarket()
	if err != nil {
		return payoff.File{}, err
	}
	row := payoff.DefaultRecord(payoff.Call, m)
	row[payoff.FieldShow] = false
	return payoff.File{Data: []payoff.Record{row}, Env: cfg.Env()}, nil
}

// DecodePortfolio decodes the app portfolio file.
func DecodePortfolio(cfg *config.Config) (payoff.File, error) {
	f, err := payoff.LoadFile(*portfolioFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, portfolio file does not exist, using a default call option instead")
		return ConfigFile(cfg)
	}
	return f, err
}
