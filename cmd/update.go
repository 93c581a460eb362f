package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan"
	"github.com/ymgch/shisan/fundcsv"
	"github.com/ymgch/shisan/quote"
)

type updateCmd struct{}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch market prices and record today's snapshot" }
func (*updateCmd) Usage() string {
	return `shisan update

  Fetches the current price of every holding that can be looked up (by
  ticker symbol, or by ISIN plus fund code), the USD/JPY exchange rate,
  records them in the price history and upserts today's valuation
  snapshot. Snapshots are what compare and summary measure performance
  against, so run update regularly.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {}

func (c *updateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	db, err := store.LoadPrices()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	snaps, err := store.LoadSnapshots()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	policy := keyPolicy()
	for _, h := range ledger.Consolidate(policy) {
		switch {
		case h.Symbol != "":
			q, err := quote.Get(h.Symbol)
			if err != nil {
				log.Printf("cannot update %s: %v", h.Key, err)
				continue
			}
			db.AddPrice(h.Key, q.AsOf, q.Price)
			if err := ledger.SetCurrentPrice(h.Key, policy, q.Price); err != nil {
				log.Printf("cannot update %s: %v", h.Key, err)
				continue
			}
			fmt.Printf("%-30s %s\n", h.Key, q.Price)
		case h.ISIN != "" && h.FundCode != "":
			p, err := fundcsv.Latest(h.ISIN, h.FundCode)
			if err != nil {
				log.Printf("cannot update %s: %v", h.Key, err)
				continue
			}
			db.AddPrice(h.Key, p.Date, p.Price)
			if err := ledger.SetCurrentPrice(h.Key, policy, p.Price); err != nil {
				log.Printf("cannot update %s: %v", h.Key, err)
				continue
			}
			fmt.Printf("%-30s %s (as of %s)\n", h.Key, p.Price, p.Date)
		default:
			log.Printf("no symbol or fund code for %s, keeping its stored price", h.Key)
		}
	}

	rates := shisan.Rates{}
	if rate, err := quote.Rate(); err == nil {
		db.AddRate(shisan.Today(), rate)
		rates["USD"] = rate
	} else {
		log.Printf("cannot fetch USD/JPY rate (%v), keeping the stored one", err)
		if rate, ok := db.RateOn(shisan.Today()); ok {
			rates["USD"] = rate
		}
	}

	snap := shisan.SnapshotOf(ledger, policy, rates, shisan.Today())
	snaps = snaps.Upsert(snap)

	if err := store.SaveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SavePrices(db); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveSnapshots(snaps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Snapshot %s: total %s\n", snap.Date, snap.TotalValue)
	return subcommands.ExitSuccess
}
