package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
)

type editLotCmd struct {
	quantity float64
	price    float64
	currency string
	date     string
}

func (*editLotCmd) Name() string     { return "edit-lot" }
func (*editLotCmd) Synopsis() string { return "fix the quantity, price or date of one lot" }
func (*editLotCmd) Usage() string {
	return `shisan edit-lot [options] <lot-id>

  Corrects one purchase lot (lot ids are shown by "list <holding>").
  Unset options keep the current values; the edited lot is validated
  like a new one.
`
}

func (c *editLotCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.quantity, "q", 0, "corrected quantity")
	f.Float64Var(&c.price, "p", 0, "corrected purchase price per unit")
	f.StringVar(&c.currency, "c", "", "currency of -p (default: the lot currency)")
	f.StringVar(&c.date, "on", "", "corrected purchase date")
}

func (c *editLotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one argument: the lot id")
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

	var patch shisan.LotPatch
	if c.quantity != 0 {
		patch.Quantity = shisan.Q(c.quantity)
	}
	if c.price != 0 {
		currency := c.currency
		if currency == "" {
			if lot, ok := ledger.Lot(id); ok {
				currency = lot.Currency()
			}
		}
		patch.PurchasePrice = shisan.M(c.price, currency)
	}
	if c.date != "" {
		patch.PurchaseDate, err = shisan.ParseDate(c.date)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	if err := ledger.EditLot(id, patch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Edited lot %s\n", id)
	return subcommands.ExitSuccess
}
