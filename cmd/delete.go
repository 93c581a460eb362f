package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteCmd struct {
	lot   bool
	force bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a holding or a single lot" }
func (*deleteCmd) Usage() string {
	return `shisan delete [-lot] [-f] <holding | lot-id>

  Deletes every lot of a holding, or with -lot one single lot. Sales
  recorded against the deleted lots are kept, so realized gains survive
  the deletion.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.lot, "lot", false, "the argument is a lot id, not a holding key")
	f.BoolVar(&c.force, "f", false, "do not ask for confirmation")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one argument")
		return subcommands.ExitUsageError
	}
	arg := f.Arg(0)

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

	if c.lot {
		if !confirm(c.force, "delete lot %s?", arg) {
			return subcommands.ExitSuccess
		}
		err = ledger.DeleteLot(arg)
	} else {
		if !confirm(c.force, "delete holding %q and all its lots?", arg) {
			return subcommands.ExitSuccess
		}
		err = ledger.DeleteHolding(arg, keyPolicy())
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %s\n", arg)
	return subcommands.ExitSuccess
}
