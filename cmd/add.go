package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/prices"
	"github.com/google/subcommands"
)

type addCmd struct {
	product  string
	category string
	price    string
	url      string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record the price of a product" }
func (*addCmd) Usage() string {
	return `pt add -product <name> -price <price> [-category <category>] [-url <link>]

  Records a product price, stamped with the current time.
  - product: the product name (required).
  - price: a non-negative number, ',' is accepted as decimal separator.
  - category: free text, empty means uncategorized.
  - url: the link where the price was seen.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.product, "product", "", "Product name (required)")
	f.StringVar(&c.category, "category", "", "Product category")
	f.StringVar(&c.price, "price", "", "Price, e.g. 12.50 or 12,50 (required)")
	f.StringVar(&c.url, "url", "", "Link to the product")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tracker := OpenTracker()
	r, err := tracker.AddRecord(
		strings.TrimSpace(c.product),
		strings.TrimSpace(c.category),
		strings.TrimSpace(c.price),
		strings.TrimSpace(c.url),
	)
	var verr *prices.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving record: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Saved %q at %s in %s.\n", r.Product, r.Price, tracker.Store().Path())
	return subcommands.ExitSuccess
}
