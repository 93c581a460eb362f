package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ymgch/shisan/renderer"
)

type tagsCmd struct{}

func (*tagsCmd) Name() string     { return "tags" }
func (*tagsCmd) Synopsis() string { return "break the portfolio value down by tag" }
func (*tagsCmd) Usage() string {
	return `shisan tags

  Prints the portfolio value grouped by tag. A holding carrying several
  tags counts fully in each of its groups, so groups overlap and do not
  sum to the total. Untagged holdings form their own group.
`
}

func (c *tagsCmd) SetFlags(f *flag.FlagSet) {}

func (c *tagsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	reg, err := store.LoadTags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	holdings := ledger.Consolidate(keyPolicy())
	printMarkdown(renderer.TagsMarkdown(holdings, reg.UnionWith(holdings), currentRates(store)))
	return subcommands.ExitSuccess
}
