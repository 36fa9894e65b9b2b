package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/prices/renderer"
	"github.com/google/subcommands"
)

type listCmd struct {
	category string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list recorded prices" }
func (*listCmd) Usage() string {
	return `pt list [-c <category>]

  Lists recorded prices in the order they were added. The number in the first
  column is the one expected by 'pt delete'.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Only list this category (case-insensitive). All by default.")
}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	category := strings.TrimSpace(c.category)
	records, err := OpenTracker().List(category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading store: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Records(records, category, opts))
	return subcommands.ExitSuccess
}
