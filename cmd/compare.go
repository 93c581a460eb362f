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

type compareCmd struct {
	period  string
	offline bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the portfolio against an earlier snapshot" }
func (*compareCmd) Usage() string {
	return `shisan compare [-period day|week|month|ytd] [-offline]

  Compares the current valuation against the snapshot recorded at the
  start of the period, holding by holding. When no snapshot covers the
  period the comparison is reported as unavailable rather than as a
  zero change.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "day", "comparison period: day, week, month or ytd")
	f.BoolVar(&c.offline, "offline", false, "use stored prices only, do not query the market")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := shisan.ParsePeriod(c.period)
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
	comparison, ok := shisan.Compare(holdings, snaps, period, rates, open)
	if !ok {
		printMarkdown(renderer.NoComparisonMarkdown(period))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ComparisonMarkdown(comparison, holdings))
	return subcommands.ExitSuccess
}
