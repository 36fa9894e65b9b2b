package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/prices"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "select recorded prices with a JSONPath expression" }
func (*queryCmd) Usage() string {
	return `pt query <jsonpath>

  Evaluates a JSONPath expression against the recorded prices and prints the
  result as JSON. Records are seen as an array of objects with the properties
  product, category, price, url and timestamp.

Usage Examples:
# Products cheaper than 2.
$ pt query '$[?(@.price < 2)].product'

# The last recorded price.
$ pt query '$[-1:]'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: a JSONPath expression is required.")
		return subcommands.ExitUsageError
	}
	records, err := OpenTracker().ListAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading store: %v\n", err)
		return subcommands.ExitFailure
	}
	val, err := prices.Select(records, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(val); err != nil {
		fmt.Fprintf(os.Stderr, "Error printing result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
