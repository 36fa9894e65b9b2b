package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type upgradeCmd struct{}

func (*upgradeCmd) Name() string { return "upgrade" }
func (*upgradeCmd) Synopsis() string {
	return "rewrites the store file into its canonical form"
}
func (*upgradeCmd) Usage() string {
	return `pt upgrade

  Reads the store and writes it back in the current 5-column layout. Rows in
  the legacy 4-column layout get an empty category, and unreadable prices are
  written as 0.00. Any other command that modifies the store does the same as
  a side effect.
`
}

func (*upgradeCmd) SetFlags(f *flag.FlagSet) {}

func (*upgradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store := OpenTracker().Store()
	n, err := store.Upgrade()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error upgrading store: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Rewrote %d records in %s.\n", n, store.Path())
	return subcommands.ExitSuccess
}
