package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/ncampa/cartera"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "list the raw holdings feed without valuing it" }
func (*holdingsCmd) Usage() string {
	return `valo holdings

  Lists the holdings feed as read from disk: account, symbol, kind and
  the native quantity or balance. No rates are applied; this is the
  input inspection view. The net-buy column shows the native value a
  same-size purchase would net after the provider's buy commission.

`
}

func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	holdings, err := DecodeHoldings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	commissions, err := DecodeCommissions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings feed (%d entries)\n\n", len(holdings))
	fmt.Fprintln(&b, "| Account | Symbol | Kind | Quantity | Native value | Net buy | Price quality |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")
	for _, h := range holdings {
		native, netBuy := "n/a", "n/a"
		if v, ok := h.NativeValue(); ok {
			native = v.String()
			netBuy = cartera.NetAcquisition(v, commissions[h.Account]).String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			h.Account, h.Symbol, h.Kind, h.Quantity, native, netBuy, h.PriceInfo.Quality)
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
