// Command shisan tracks a personal investment portfolio: purchase lots,
// sales and dividends are consolidated into holdings, valued in JPY with
// live or stored market prices, and compared against daily snapshots.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/ymgch/shisan/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion handles shell completion requests and exits when invoked as a
// completer. Install with COMP_INSTALL=1 shisan.
func completion() {
	sub := make(map[string]*complete.Command, len(cmd.CommandNames()))
	for _, name := range cmd.CommandNames() {
		sub[name] = &complete.Command{}
	}
	c := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"d":   predict.Dirs("*"),
			"key": predict.Set{"name", "instrument"},
		},
	}
	c.Complete(path.Base(os.Args[0]))
}
