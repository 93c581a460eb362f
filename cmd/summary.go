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

type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "print the portfolio summary with period performance" }
func (*summaryCmd) Usage() string {
	return `shisan summary [-offline]

  Prints the total portfolio value in JPY and USD, the unrealized profit
  and loss, and the performance over the day, week, month and year to
  date. Prices are refreshed from the market unless -offline is set.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "use stored prices only, do not query the market")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	snaps, err := store.LoadSnapshots()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	policy := keyPolicy()
	var open map[string]bool
	var rates shisan.Rates
	if c.offline {
		rates = currentRates(store)
	} else {
		open = refreshLive(ledger, policy)
		rates = liveRates(store)
	}

	holdings := ledger.Consolidate(policy)
	printMarkdown(renderer.SummaryMarkdown(ledger, holdings, snaps, rates, open, shisan.Today()))
	return subcommands.ExitSuccess
}
