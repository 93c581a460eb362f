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

type addCmd struct {
	typ      string
	symbol   string
	isin     string
	fundCode string
	quantity float64
	price    float64
	currency string
	date     string
	tags     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record the purchase of a new lot" }
func (*addCmd) Usage() string {
	return `shisan add -q <quantity> -p <price> [options] <name>

  Records one purchase lot. Lots of the same instrument are consolidated
  into a single holding in every report.

Usage Examples:
# 10 shares of Apple at 150 USD
$ shisan add -q 10 -p 150 -c USD -symbol AAPL "Apple Inc."

# an investment trust, identified for price lookup by ISIN and fund code
$ shisan add -type fund -q 21500 -p 10521 -isin JP90C000A1B2 -fund 0331418A "eMAXIS Slim 全世界株式"
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "stock", "asset type: stock, etf, fund, crypto or other")
	f.StringVar(&c.symbol, "symbol", "", "ticker symbol for quote lookup")
	f.StringVar(&c.isin, "isin", "", "ISIN code")
	f.StringVar(&c.fundCode, "fund", "", "association fund code, with -isin identifies a fund for price lookup")
	f.Float64Var(&c.quantity, "q", 0, "quantity bought")
	f.Float64Var(&c.price, "p", 0, "purchase price per unit, in the lot currency")
	f.StringVar(&c.currency, "c", "JPY", "currency of the purchase price")
	f.StringVar(&c.date, "on", "", "purchase date (default today)")
	f.StringVar(&c.tags, "tags", "", "comma separated tags")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one argument: the instrument name")
		return subcommands.ExitUsageError
	}
	name := f.Arg(0)

	typ, err := shisan.ParseAssetType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	on, err := shisan.ParseDate(c.date)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}

	var tags []string
	if c.tags != "" {
		tags = strings.Split(c.tags, ",")
	}

	lot := shisan.NewLot(name, typ, shisan.Q(c.quantity), shisan.M(c.price, c.currency), on, tags...)
	lot.Symbol = c.symbol
	lot.ISIN = c.isin
	lot.FundCode = c.fundCode

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
	if err := ledger.AddLot(lot); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// keep the registry aware of new labels
	if len(tags) > 0 {
		reg, err := store.LoadTags()
		if err == nil {
			for _, t := range lot.Tags {
				reg.Add(t)
			}
			err = store.SaveTags(reg)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot update tag registry: %v\n", err)
		}
	}

	fmt.Printf("Added lot %s: %s x %s at %s on %s\n", lot.ID, lot.Name, lot.Quantity, lot.PurchasePrice, lot.PurchaseDate)
	return subcommands.ExitSuccess
}
