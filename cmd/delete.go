package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/prices"
	"github.com/google/subcommands"
)

type deleteCmd struct {
	number int
	yes    bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a recorded price" }
func (*deleteCmd) Usage() string {
	return `pt delete -n <number> [-y]

  Deletes the record at the given position, as numbered by 'pt list' (starting
  at 1). Asks for a confirmation unless -y is given.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.number, "n", 0, "Number of the record to delete, as shown by 'pt list' (required)")
	f.BoolVar(&c.yes, "y", false, "Do not ask for a confirmation")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.number <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -n must be a record number, starting at 1.")
		return subcommands.ExitUsageError
	}
	opts, err := RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	tracker := OpenTracker()
	records, err := tracker.ListAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading store: %v\n", err)
		return subcommands.ExitFailure
	}
	index := c.number - 1
	if index >= len(records) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", &prices.IndexError{Index: index, Len: len(records)})
		return subcommands.ExitUsageError
	}

	if !c.yes {
		sh := newShell(os.Stdin, os.Stdout, tracker, opts)
		ok, err := sh.confirm(deletePrompt(records[index], opts))
		if err != nil || !ok {
			fmt.Println("Canceled.")
			return subcommands.ExitSuccess
		}
	}

	err = tracker.DeleteAt(index)
	var ierr *prices.IndexError
	if errors.As(err, &ierr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting record: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println("Deleted.")
	return subcommands.ExitSuccess
}
