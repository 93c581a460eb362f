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
)

type rebuildCmd struct {
	force bool
}

func (*rebuildCmd) Name() string     { return "rebuild" }
func (*rebuildCmd) Synopsis() string { return "rebuild the snapshot history from stored prices" }
func (*rebuildCmd) Usage() string {
	return `shisan rebuild [-f]

  Recomputes every daily snapshot from the earliest purchase to today,
  replacing the stored history. For funds the full published price
  series is fetched first, so their history is complete; other holdings
  are valued with the closest recorded price. Use after editing past
  lots or sales.
`
}

func (c *rebuildCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "do not ask for confirmation")
}

func (c *rebuildCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if !confirm(c.force, "rebuild the whole snapshot history?") {
		return subcommands.ExitSuccess
	}

	// backfill fund price series, they are published in full
	policy := keyPolicy()
	for _, h := range ledger.Consolidate(policy) {
		if h.ISIN == "" || h.FundCode == "" {
			continue
		}
		points, err := fundcsv.Fetch(h.ISIN, h.FundCode)
		if err != nil {
			log.Printf("cannot backfill %s: %v", h.Key, err)
			continue
		}
		for _, p := range points {
			db.AddPrice(h.Key, p.Date, p.Price)
		}
	}

	snaps := shisan.RebuildSnapshots(ledger, db, policy, shisan.Today())

	if err := store.SavePrices(db); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveSnapshots(snaps); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Rebuilt %d snapshots\n", len(snaps))
	return subcommands.ExitSuccess
}
