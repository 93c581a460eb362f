package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
)

type editCmd struct {
	name     string
	symbol   string
	isin     string
	fundCode string
	price    float64
	currency string
	tags     string
	clear    bool
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a holding, across all its lots" }
func (*editCmd) Usage() string {
	return `shisan edit [options] <holding>

  Applies an edit to every purchase lot of the holding, so the group
  stays coherent: name, identifiers, tags and the current market price.
  Unset options keep the current values. To fix the quantity, price or
  date of one specific lot, use edit-lot.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "new display name")
	f.StringVar(&c.symbol, "symbol", "", "new ticker symbol")
	f.StringVar(&c.isin, "isin", "", "new ISIN code")
	f.StringVar(&c.fundCode, "fund", "", "new association fund code")
	f.Float64Var(&c.price, "p", 0, "current market price per unit")
	f.StringVar(&c.currency, "c", "", "currency of -p (default: the holding currency)")
	f.StringVar(&c.tags, "tags", "", "comma separated tags, replacing the current ones")
	f.BoolVar(&c.clear, "clear-tags", false, "remove every tag from the holding")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one argument: the holding key")
		return subcommands.ExitUsageError
	}
	key := f.Arg(0)

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

	policy := keyPolicy()
	patch := shisan.HoldingPatch{
		Name:     c.name,
		Symbol:   c.symbol,
		ISIN:     c.isin,
		FundCode: c.fundCode,
	}
	if c.price != 0 {
		currency := c.currency
		if currency == "" {
			if h, ok := ledger.HoldingByKey(key, policy); ok {
				currency = h.Currency()
			}
		}
		patch.CurrentPrice = shisan.M(c.price, currency)
	}
	switch {
	case c.clear:
		patch.Tags = []string{}
	case c.tags != "":
		patch.Tags = strings.Split(c.tags, ",")
	}

	if err := ledger.EditHolding(key, policy, patch); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Edited %s\n", key)
	return subcommands.ExitSuccess
}
