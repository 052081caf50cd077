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

// riskCmd holds the flags for the 'risk' subcommand.
type riskCmd struct {
	currency string
}

func (*riskCmd) Name() string { return "risk" }
func (*riskCmd) Synopsis() string {
	return "display volatility, drawdown and Sharpe over the snapshot history"
}
func (*riskCmd) Usage() string {
	return `valo risk [-c <currency>]

  Derives annualized volatility, maximum drawdown and Sharpe ratio from
  the saved snapshot series, over the totals in the chosen reference
  currency. Metrics the history is too short to support are reported as
  n/a rather than zero.

`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "c", "", "Reference currency for the value series (defaults to the local currency)")
}

func (c *riskCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := SnapshotStore().Snapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshots: %v\n", err)
		return subcommands.ExitFailure
	}
	cur := c.currency
	if cur == "" {
		cur = currencies().Local
	}
	r := cartera.RiskMetrics(series, cur, currencies())
	printMarkdown(renderer.RiskMarkdown(r, cur))
	return subcommands.ExitSuccess
}
