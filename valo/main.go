package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/ncampa/cartera/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Shell completion runs before flag parsing and exits on its own
	// when invoked by the shell.
	completion().Complete("valo")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	windows := predict.Set{"24h", "7d", "30d", "90d", "1y", "mtd", "ytd", "all"}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"summary": {Flags: map[string]complete.Predictor{"merge-cash": predict.Nothing}},
			"drivers": {Flags: map[string]complete.Predictor{
				"w": windows,
				"d": predict.Nothing,
			}},
			"project": {Flags: map[string]complete.Predictor{"days": predict.Nothing}},
			"risk":    {Flags: map[string]complete.Predictor{"c": predict.Set{"ARS", "USD"}}},
			"snapshot": {Flags: map[string]complete.Predictor{
				"list":   predict.Nothing,
				"purge":  predict.Nothing,
				"daemon": predict.Nothing,
			}},
			"override": {Flags: map[string]complete.Predictor{
				"account": predict.Nothing,
				"kind": predict.Set{"cash-local", "cash-foreign", "yield-wallet",
					"fixed-term", "cedear", "crypto", "stablecoin", "fund"},
				"family": predict.Set{"official", "mep", "crypto"},
				"side":   predict.Set{"buy", "sell"},
				"clear":  predict.Nothing,
				"list":   predict.Nothing,
			}},
			"holdings": {},
		},
	}
}
