package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/subcommands"
	"github.com/ncampa/cartera"
)

// overrideCmd holds the flags for the 'override' subcommand.
type overrideCmd struct {
	account string
	kind    string
	family  string
	side    string
	clear   bool
	list    bool
}

func (*overrideCmd) Name() string { return "override" }
func (*overrideCmd) Synopsis() string {
	return "set, clear or list manual exchange-rate preferences"
}
func (*overrideCmd) Usage() string {
	return `valo override -account <name> -kind <kind> [-family <official|mep|crypto>] [-side <buy|sell>] [-clear]
valo override -list

  Pins the rate family and side used to value one (account, kind) pair,
  replacing the kind's automatic policy. Clearing restores the
  automatic choice. Preferences persist across runs.

Usage Examples:
# Value iol cedears at the official rate instead of MEP.
$ valo override -account iol -kind cedear -family official

# Back to the automatic policy.
$ valo override -account iol -kind cedear -clear

`
}

func (c *overrideCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account the preference applies to")
	f.StringVar(&c.kind, "kind", "", "Asset kind the preference applies to")
	f.StringVar(&c.family, "family", "", "Rate family (official, mep, crypto)")
	f.StringVar(&c.side, "side", "sell", "Rate side (buy, sell)")
	f.BoolVar(&c.clear, "clear", false, "Remove the preference for the (account, kind) pair")
	f.BoolVar(&c.list, "list", false, "List the persisted preferences")
}

func (c *overrideCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := OverrideStore()
	overrides, err := store.Overrides()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.list {
		return listOverrides(overrides)
	}

	if c.account == "" || c.kind == "" {
		fmt.Fprintln(os.Stderr, "Error: -account and -kind are required")
		return subcommands.ExitUsageError
	}
	kind, err := cartera.ParseAssetKind(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.clear {
		overrides.Clear(c.account, kind)
		if err := store.Save(overrides); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Cleared preference for %s/%s; the automatic policy applies.\n", c.account, kind)
		return subcommands.ExitSuccess
	}

	if c.family == "" {
		fmt.Fprintln(os.Stderr, "Error: -family is required to set a preference")
		return subcommands.ExitUsageError
	}
	family, err := cartera.ParseRateFamily(c.family)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	side, err := cartera.ParseRateSide(c.side)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	policy := cartera.RatePolicy{Family: family, Side: side}
	overrides.Set(c.account, kind, policy)
	if err := store.Save(overrides); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Set %s/%s to %s.\n", c.account, kind, policy)
	return subcommands.ExitSuccess
}

func listOverrides(overrides cartera.Overrides) subcommands.ExitStatus {
	if len(overrides) == 0 {
		fmt.Println("No preferences set; every kind uses its automatic policy.")
		return subcommands.ExitSuccess
	}
	keys := make([]cartera.OverrideKey, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Account != keys[j].Account {
			return keys[i].Account < keys[j].Account
		}
		return keys[i].Kind < keys[j].Kind
	})

	var b strings.Builder
	fmt.Fprintln(&b, "# Exchange-rate preferences")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "| Account | Kind | Policy |")
	fmt.Fprintln(&b, "|:---|:---|:---|")
	for _, k := range keys {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", k.Account, k.Kind, overrides[k])
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
