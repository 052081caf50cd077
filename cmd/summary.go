package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ncampa/cartera/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	mergeCash bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the valued portfolio by rubro and provider" }
func (*summaryCmd) Usage() string {
	return `valo summary [-merge-cash]

  Values every holding with the current quote table and displays the
  rollup: assets grouped by rubro and provider, dual-currency totals,
  unrealized P/L and the hard-dollar and dollar-linked shares.

Usage Examples:
# Summary with each sub-ledger listed separately.
$ valo summary

# Fold "X cash" sub-ledgers into their underlying account.
$ valo summary -merge-cash

`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.mergeCash, "merge-cash", false, "Union cash sub-ledgers into their underlying account")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := LoadPortfolio(c.mergeCash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(p))
	return subcommands.ExitSuccess
}
