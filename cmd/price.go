package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payoff"
	"github.com/etnz/payoff/renderer"
	"github.com/google/subcommands"
)

type priceCmd struct {
	json   bool
	update bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "price every instrument of the portfolio" }
func (*priceCmd) Usage() string {
	return `pcc price [-json] [-u]

  Prices one unit of every instrument with the pricing engine of the portfolio
  file, and rounds it to the cost rounding of the market.

  With -u the rounded premium is written back as the cost of every row.
`
}

func (c *priceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "print the prices as JSON")
	f.BoolVar(&c.update, "u", false, "update the cost of every row with its premium")
}

func (c *priceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	file, err := DecodePortfolio(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	setup, err := file.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	quotes, err := payoff.Quotes(ctx, setup.Portfolio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error pricing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.update {
		for i, q := range quotes {
			file.Data[i][payoff.FieldCost] = q.Premium
		}
		if err := payoff.SaveFile(*portfolioFile, file); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		// the PV does not depend on the cost, only the instruments change
		if setup, err = file.Build(); err != nil {
			fmt.Fprintf(os.Stderr, "Error building portfolio: %v\n", err)
			return subcommands.ExitFailure
		}
		for i, inst := range setup.Portfolio.Components() {
			quotes[i].Instrument = inst
		}
	}

	if c.json {
		data, err := renderer.PricesJSON(quotes, cfg.Currency)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding prices: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.PriceMarkdown(quotes, setup.Market, setup.Engine, cfg.Currency) +
		"\n" + renderer.MarketMarkdown(setup.Market, setup.Engine))
	return subcommands.ExitSuccess
}
