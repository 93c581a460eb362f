package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type deleteSaleCmd struct {
	force bool
}

func (*deleteSaleCmd) Name() string     { return "delete-sale" }
func (*deleteSaleCmd) Synopsis() string { return "delete a recorded sale" }
func (*deleteSaleCmd) Usage() string {
	return `shisan delete-sale [-f] <sale-id>

  Deletes one sale record. The sold quantity returns to the lot's
  active quantity and the realized profit disappears from gains.
`
}

func (c *deleteSaleCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "do not ask for confirmation")
}

func (c *deleteSaleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one argument: the sale id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

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

	if !confirm(c.force, "delete sale %s?", id) {
		return subcommands.ExitSuccess
	}
	if err := ledger.DeleteSale(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted sale %s\n", id)
	return subcommands.ExitSuccess
}
