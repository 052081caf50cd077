// Package cmd implements the CLI application to value and analyze a
// multi-currency personal portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/ncampa/cartera"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and
// Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&driversCmd{}, "reports")
	c.Register(&projectCmd{}, "reports")
	c.Register(&riskCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")

	c.Register(&snapshotCmd{}, "history")
	c.Register(&overrideCmd{}, "preferences")
}

// As a CLI application, it has a very short lived lifecycle, so it is
// ok to use global variables. Every data file can also be pointed at
// through the environment, so extensions and cron jobs inherit the
// paths without repeating flags.
const (
	EnvHoldingsFile    = "CARTERA_HOLDINGS_FILE"
	EnvRatesFile       = "CARTERA_RATES_FILE"
	EnvMovementsFile   = "CARTERA_MOVEMENTS_FILE"
	EnvSnapshotsFile   = "CARTERA_SNAPSHOTS_FILE"
	EnvOverridesFile   = "CARTERA_OVERRIDES_FILE"
	EnvCommissionsFile = "CARTERA_COMMISSIONS_FILE"
)

var (
	holdingsFile    = flag.String("holdings-file", envOr(EnvHoldingsFile, "holdings.jsonl"), "Path to the holdings feed (JSONL format)")
	ratesFile       = flag.String("rates-file", envOr(EnvRatesFile, "rates.json"), "Path to the exchange-rate quote table")
	movementsFile   = flag.String("movements-file", envOr(EnvMovementsFile, "movements.jsonl"), "Path to the movements feed (JSONL format)")
	snapshotsFile   = flag.String("snapshots-file", envOr(EnvSnapshotsFile, "snapshots.jsonl"), "Path to the snapshot history (JSONL format)")
	overridesFile   = flag.String("overrides-file", envOr(EnvOverridesFile, "overrides.jsonl"), "Path to the fx preference file (JSONL format)")
	commissionsFile = flag.String("commissions-file", envOr(EnvCommissionsFile, "commissions.json"), "Path to the per-provider commission settings")
	localCurrency   = flag.String("local-currency", envOr("CARTERA_LOCAL_CURRENCY", cartera.DefaultCurrencies.Local), "Local reference currency")
	counterCurrency = flag.String("counter-currency", envOr("CARTERA_COUNTER_CURRENCY", cartera.DefaultCurrencies.Counter), "Counter reference currency")
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func currencies() cartera.Currencies {
	return cartera.Currencies{Local: *localCurrency, Counter: *counterCurrency}
}

// DecodeHoldings reads the app holdings feed.
func DecodeHoldings() ([]cartera.Holding, error) {
	f, err := os.Open(*holdingsFile)
	if err != nil {
		return nil, fmt.Errorf("opening holdings %q: %w", *holdingsFile, err)
	}
	defer f.Close()
	return cartera.DecodeHoldings(f, currencies())
}

// DecodeRates reads the app quote table.
func DecodeRates() (cartera.RateTable, error) {
	f, err := os.Open(*ratesFile)
	if err != nil {
		return nil, fmt.Errorf("opening rates %q: %w", *ratesFile, err)
	}
	defer f.Close()
	return cartera.DecodeRates(f, currencies())
}

// DecodeMovements reads the app movements feed. A missing file is an
// empty feed: movements only refine the drivers decomposition.
func DecodeMovements() ([]cartera.Movement, error) {
	f, err := os.Open(*movementsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening movements %q: %w", *movementsFile, err)
	}
	defer f.Close()
	return cartera.DecodeMovements(f, currencies())
}

// DecodeCommissions reads the app commission settings. A missing file
// means free trading.
func DecodeCommissions() (cartera.Commissions, error) {
	f, err := os.Open(*commissionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening commissions %q: %w", *commissionsFile, err)
	}
	defer f.Close()
	return cartera.DecodeCommissions(f, currencies())
}

// SnapshotStore returns the app snapshot store.
func SnapshotStore() *cartera.FileSnapshotStore {
	return &cartera.FileSnapshotStore{Path: *snapshotsFile}
}

// OverrideStore returns the app fx preference store.
func OverrideStore() *cartera.FileOverrideStore {
	return &cartera.FileOverrideStore{Path: *overridesFile}
}

// LoadPortfolio assembles a valued portfolio from all the app feeds.
func LoadPortfolio(mergeCash bool) (*cartera.Portfolio, error) {
	holdings, err := DecodeHoldings()
	if err != nil {
		return nil, err
	}
	rates, err := DecodeRates()
	if err != nil {
		return nil, err
	}
	overrides, err := OverrideStore().Overrides()
	if err != nil {
		return nil, err
	}
	commissions, err := DecodeCommissions()
	if err != nil {
		return nil, err
	}
	return cartera.Aggregate(holdings, cartera.AggregateOptions{
		Rates:           rates,
		Overrides:       overrides,
		Commissions:     commissions,
		Currencies:      currencies(),
		MergeSubLedgers: mergeCash,
	}), nil
}

// printMarkdown renders markdown to the terminal, falling back to the
// raw text when the renderer cannot run.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
