package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ncampa/cartera"
	"github.com/ncampa/cartera/renderer"
)

// projectCmd holds the flags for the 'project' subcommand.
type projectCmd struct {
	days int
}

func (*projectCmd) Name() string { return "project" }
func (*projectCmd) Synopsis() string {
	return "project yield accrual per rubro over a horizon"
}
func (*projectCmd) Usage() string {
	return `valo project [-days <n>]

  Computes the expected gain per rubro over the horizon, with market
  prices frozen: only TNA accrual of yield wallets and fixed terms
  contributes. A 365-day horizon uses the compounded effective rate
  (TEA); shorter horizons use the linear preview.

Usage Examples:
# What the fixed terms earn over the next 30 days.
$ valo project -days 30

# Full-year compounded projection.
$ valo project -days 365

`
}

func (c *projectCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Projection horizon in days")
}

func (c *projectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.days <= 0 {
		fmt.Fprintln(os.Stderr, "Error: the horizon must be positive")
		return subcommands.ExitUsageError
	}
	p, err := LoadPortfolio(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cats := cartera.ProjectedEarnings(p, c.days)
	printMarkdown(renderer.ProjectionMarkdown(cats, c.days))
	return subcommands.ExitSuccess
}
