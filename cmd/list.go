package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
	"github.com/ymgch/shisan/renderer"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list active holdings, or the detail of one" }
func (*listCmd) Usage() string {
	return `shisan list [<holding>]

  Without argument, prints the consolidated table of all active holdings.
  With a holding key, prints its detail with the constituent purchase lots
  and their ids.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := store.LoadLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rates := currentRates(store)

	if f.NArg() == 0 {
		holdings := ledger.Consolidate(keyPolicy())
		printMarkdown(renderer.HoldingsMarkdown(holdings, rates, shisan.Today()))
		return subcommands.ExitSuccess
	}

	key := f.Arg(0)
	h, ok := ledger.HoldingByKey(key, keyPolicy())
	if !ok {
		fmt.Fprintf(os.Stderr, "no active holding %q\n", key)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingMarkdown(h, ledger, rates))
	return subcommands.ExitSuccess
}
