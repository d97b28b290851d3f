package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payoff"
	"github.com/google/subcommands"
)

type checkCmd struct{}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the portfolio file" }
func (*checkCmd) Usage() string {
	return `pcc check

  Validates the market, the engine and every instrument row of the portfolio
  file, and reports all the problems at once.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	file, err := payoff.LoadFile(*portfolioFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := payoff.Validate(file); err != nil {
		fmt.Fprintf(os.Stderr, "Error in %q:\n%v\n", *portfolioFile, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %d instruments, ok\n", *portfolioFile, len(file.Data))
	return subcommands.ExitSuccess
}
