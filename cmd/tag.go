package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type tagCmd struct {
	rm     bool
	rename string
}

func (*tagCmd) Name() string     { return "tag" }
func (*tagCmd) Synopsis() string { return "manage the tag registry" }
func (*tagCmd) Usage() string {
	return `shisan tag [-rm | -rename <to>] [<name>]

  Without argument, lists the registered tags with their colors. With a
  name, registers it; a tag always gets the same color, derived from its
  name. -rm unregisters a tag, -rename moves it to a new name.
`
}

func (c *tagCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.rm, "rm", false, "unregister the tag")
	f.StringVar(&c.rename, "rename", "", "rename the tag to this name")
}

func (c *tagCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	reg, err := store.LoadTags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		for _, t := range reg.Tags() {
			fmt.Printf("%-20s %s\n", t.Name, t.Color)
		}
		return subcommands.ExitSuccess
	}
	name := f.Arg(0)

	switch {
	case c.rm:
		reg.Remove(name)
	case c.rename != "":
		if err := reg.Rename(name, c.rename); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	default:
		t := reg.Add(name)
		fmt.Printf("%s %s\n", t.Name, t.Color)
	}

	if err := store.SaveTags(reg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
