package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/etnz/payoff"
	"github.com/etnz/payoff/renderer"
	"github.com/google/subcommands"
)

// curveCmd holds the flags for the 'curve' subcommand.
type curveCmd struct {
	typ        string
	margin     float64
	step       float64
	components bool
	json       bool
	digits     int
}

func (*curveCmd) Name() string     { return "curve" }
func (*curveCmd) Synopsis() string { return "generate a curve of the portfolio against the underlying spot" }
func (*curveCmd) Usage() string {
	return `pcc curve [-type <curve>] [-margin <spot>] [-step <spot>] [-components=false] [-json]

  Sweeps the underlying spot around the portfolio strikes and evaluates the
  curve for the whole portfolio and for every shown component.

  Curve types are "Payoff", "Net Payoff", "PnL", "PV", "Delta" and "Gamma".
  Margin and step default to the configuration.

Usage Examples:
# Net payoff on a fine grid.
$ pcc curve -type "Net Payoff" -step 0.5

`
}

func (c *curveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", payoff.PayoffCurve.String(), "Curve type")
	f.Float64Var(&c.margin, "margin", -1, "Spot margin around the strikes, defaults to the configuration")
	f.Float64Var(&c.step, "step", 0, "Spot step of the sweep, defaults to the configuration")
	f.BoolVar(&c.components, "components", true, "include the shown components")
	f.BoolVar(&c.json, "json", false, "print the curve as JSON")
	f.IntVar(&c.digits, "digits", 4, "number of decimals in the table")
}

func (c *curveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := payoff.ParseCurveType(c.typ)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing curve type: %v\n", err)
		return subcommands.ExitUsageError
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	opts := cfg.CurveOptions()
	if c.margin >= 0 {
		opts.Margin = c.margin
	}
	if c.step > 0 {
		opts.Step = c.step
	}
	opts.Components = c.components

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

	if _, ok := setup.Engine.(payoff.MonteCarlo); ok && typ.NeedsEngine() {
		fmt.Fprintln(os.Stderr, "Using Monte-Carlo to generate Evaluation Curve might be extremely time consuming.")
	}

	start := time.Now()
	curve, err := setup.Portfolio.GenCurve(ctx, typ, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating %s curve: %v\n", typ, err)
		return subcommands.ExitFailure
	}
	if cfg.Verbose() {
		log.Printf("%s curve of %d spots with %s in %v", typ, len(curve.X), setup.Engine.Name(), time.Since(start))
	}

	if c.json {
		data, err := renderer.CurveJSON(curve)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding curve: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(data))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.CurveMarkdown(curve, c.digits))
	return subcommands.ExitSuccess
}
