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

type cheapestCmd struct {
	category string
}

func (*cheapestCmd) Name() string     { return "cheapest" }
func (*cheapestCmd) Synopsis() string { return "show the cheapest option" }
func (*cheapestCmd) Usage() string {
	return `pt cheapest [-c <category>]

  Shows the cheapest recorded price, across all categories or in a single one.
  When several records share the lowest price, the first recorded one wins.
`
}

func (c *cheapestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "", "Category to search (case-insensitive). All by default.")
}

func (c *cheapestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	category := strings.TrimSpace(c.category)
	r, ok, err := OpenTracker().CheapestInCategory(category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading store: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Cheapest(r, ok, category, opts))
	return subcommands.ExitSuccess
}
