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

// driversCmd holds the flags for the 'drivers' subcommand.
type driversCmd struct {
	window    string
	date      string
	mergeCash bool
}

func (*driversCmd) Name() string { return "drivers" }
func (*driversCmd) Synopsis() string {
	return "decompose the portfolio's change over a window into its drivers"
}
func (*driversCmd) Usage() string {
	return `valo drivers [-w <window>] [-d <date>]

  Diffs the current valuation against the snapshot baseline of the
  window (24h, 7d, 30d, 90d, 1y, mtd, ytd, all) and splits the net
  change into interest, fees and market variation, ranking the rubros
  and assets that drove it.

  When no snapshot covers the window's start the report falls back to
  cost-basis deltas and is labelled missing_history.

Usage Examples:
# What moved the portfolio this month.
$ valo drivers -w 30d

`
}

func (c *driversCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "w", "30d", "Analysis window (24h, 7d, 30d, 90d, 1y, mtd, ytd, all)")
	f.StringVar(&c.date, "d", cartera.Today().String(), "Reference date for the window")
	f.BoolVar(&c.mergeCash, "merge-cash", false, "Union cash sub-ledgers into their underlying account")
}

func (c *driversCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	w, err := cartera.ParseWindow(c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on, err := cartera.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	p, err := LoadPortfolio(c.mergeCash)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	series, err := SnapshotStore().Snapshots()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshots: %v\n", err)
		return subcommands.ExitFailure
	}
	movements, err := DecodeMovements()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading movements: %v\n", err)
		return subcommands.ExitFailure
	}

	r := cartera.ComputeDrivers(p, series, movements, w, on)
	printMarkdown(renderer.DriversMarkdown(r))
	return subcommands.ExitSuccess
}
