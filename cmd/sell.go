package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
)

type sellCmd struct {
	quantity float64
	price    float64
	currency string
	date     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale against a lot" }
func (*sellCmd) Usage() string {
	return `shisan sell -p <price> [-q <quantity>] <lot-id>

  Records a sale against one specific lot (lot ids are shown by
  "list <holding>"). Without -q the whole active quantity of the lot is
  sold. The realized profit is computed against the lot's cost at sale
  time and shown by the gains command.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.quantity, "q", 0, "quantity to sell (default: the whole active quantity)")
	f.Float64Var(&c.price, "p", 0, "sell price per unit")
	f.StringVar(&c.currency, "c", "", "currency of the sell price (default: the lot currency)")
	f.StringVar(&c.date, "on", "", "sell date (default today)")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one argument: the lot id")
		return subcommands.ExitUsageError
	}
	on, err := shisan.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

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

	sale, err := ledger.RecordSale(f.Arg(0), shisan.Q(c.quantity), shisan.M(c.price, c.currency), on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Sold %s at %s on %s, realized %s\n", sale.Quantity, sale.SellPrice, sale.SellDate, sale.Profit().SignedString())
	return subcommands.ExitSuccess
}
