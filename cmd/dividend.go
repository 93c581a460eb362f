package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
)

type dividendCmd struct {
	amount float64
	date   string
}

func (*dividendCmd) Name() string     { return "dividend" }
func (*dividendCmd) Synopsis() string { return "record a dividend payment" }
func (*dividendCmd) Usage() string {
	return `shisan dividend -a <amount> <lot-id>

  Records a dividend, in JPY, against any lot of the instrument. Dividends
  only appear in reports; they never change valuation or cost basis.
`
}

func (c *dividendCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "a", 0, "dividend amount in JPY")
	f.StringVar(&c.date, "on", "", "payment date (default today)")
}

func (c *dividendCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	div, err := ledger.RecordDividend(f.Arg(0), shisan.M(c.amount, shisan.ReportingCurrency), on)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded dividend %s on %s\n", div.Amount, div.Date)
	return subcommands.ExitSuccess
}
