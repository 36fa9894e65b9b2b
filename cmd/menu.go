package cmd

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/prices"
	"github.com/etnz/prices/renderer"
	"github.com/google/subcommands"
)

type menuCmd struct{}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "track prices interactively" }
func (*menuCmd) Usage() string {
	return `pt menu

  Starts an interactive session to add, list, search, export and delete
  recorded prices. Invalid input is reported and the session goes on.
`
}

func (*menuCmd) SetFlags(f *flag.FlagSet) {}

func (*menuCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := RenderOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	sh := newShell(os.Stdin, os.Stdout, OpenTracker(), opts)
	sh.render = printMarkdown
	if err := sh.run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// shell is the interactive front-end of a tracker.
type shell struct {
	in      *bufio.Reader
	out     io.Writer
	tracker *prices.Tracker
	opts    renderer.Options
	render  func(md string) // prints markdown, raw by default
}

func newShell(in io.Reader, out io.Writer, tracker *prices.Tracker, opts renderer.Options) *shell {
	sh := &shell{
		in:      bufio.NewReader(in),
		out:     out,
		tracker: tracker,
		opts:    opts,
	}
	sh.render = func(md string) { fmt.Fprint(sh.out, md) }
	return sh
}

// prompt prints p and returns the next input line, trimmed.
// io.EOF is returned only when there is nothing left to read.
func (sh *shell) prompt(p string) (string, error) {
	fmt.Fprint(sh.out, p)
	line, err := sh.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question, defaulting to no.
func (sh *shell) confirm(p string) (bool, error) {
	answer, err := sh.prompt(p)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// run loops over the menu until the user exits or the input ends.
// Only store read and write failures end the loop with an error.
func (sh *shell) run(ctx context.Context) error {
	for {
		fmt.Fprint(sh.out, `
== Price Tracker ==
1) Add product price
2) List all prices
3) Show cheapest option
4) Export data to CSV
5) Delete a product
6) Exit
`)
		choice, err := sh.prompt("Select an option: ")
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.out, "\nGoodbye.")
			return nil
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = sh.add()
		case "2":
			err = sh.list()
		case "3":
			err = sh.cheapest()
		case "4":
			err = sh.export(ctx)
		case "5":
			err = sh.delete()
		case "6":
			fmt.Fprintln(sh.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(sh.out, "Invalid option.")
		}

		if errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.out, "\nGoodbye.")
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (sh *shell) add() error {
	product, err := sh.prompt("Product name: ")
	for err == nil && product == "" {
		fmt.Fprintln(sh.out, "A product name is required.")
		product, err = sh.prompt("Product name: ")
	}
	if err != nil {
		return err
	}
	category, err := sh.prompt("Category: ")
	if err != nil {
		return err
	}
	priceText, err := sh.prompt("Price: ")
	for err == nil {
		if _, perr := prices.ParsePrice(priceText); perr == nil {
			break
		}
		fmt.Fprintln(sh.out, "Invalid price, use a number like 12.50 or 12,50.")
		priceText, err = sh.prompt("Price: ")
	}
	if err != nil {
		return err
	}
	url, err := sh.prompt("Product link (URL): ")
	if err != nil {
		return err
	}

	_, err = sh.tracker.AddRecord(product, category, priceText, url)
	var verr *prices.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(sh.out, "Not saved: %v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Saved.")
	return nil
}

func (sh *shell) list() error {
	records, err := sh.tracker.ListAll()
	if err != nil {
		return err
	}
	sh.render(renderer.Records(records, "", sh.opts))
	return nil
}

func (sh *shell) cheapest() error {
	records, err := sh.tracker.ListAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(sh.out, "No entries.")
		return nil
	}
	category, err := sh.prompt("Category to search (leave empty for all): ")
	if err != nil {
		return err
	}
	r, ok := prices.Cheapest(prices.FilterByCategory(records, category))
	sh.render(renderer.Cheapest(r, ok, category, sh.opts))
	return nil
}

func (sh *shell) export(ctx context.Context) error {
	ok, err := sh.confirm("Export data to CSV? (y/N): ")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(sh.out, "Export canceled.")
		return nil
	}
	dest, err := sh.prompt("Filename (default " + DefaultExportFile + "): ")
	if err != nil {
		return err
	}
	if dest == "" {
		dest = DefaultExportFile
	}
	category, err := sh.prompt("Category to export (leave empty for all): ")
	if err != nil {
		return err
	}
	if err := exportRecords(ctx, sh.tracker, dest, category, string(prices.FormatCSV)); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "Exported to %s\n", dest)
	return nil
}

func (sh *shell) delete() error {
	records, err := sh.tracker.ListAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(sh.out, "No entries.")
		return nil
	}
	sh.render(renderer.Selection(records, sh.opts))

	sel, err := sh.prompt("Number to delete (or empty to cancel): ")
	if err != nil {
		return err
	}
	if sel == "" {
		fmt.Fprintln(sh.out, "Canceled.")
		return nil
	}
	n, err := strconv.Atoi(sel)
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid number.")
		return nil
	}
	if n < 1 || n > len(records) {
		fmt.Fprintln(sh.out, "Out of range.")
		return nil
	}

	ok, err := sh.confirm(deletePrompt(records[n-1], sh.opts))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(sh.out, "Canceled.")
		return nil
	}

	err = sh.tracker.DeleteAt(n - 1)
	var ierr *prices.IndexError
	if errors.As(err, &ierr) {
		// the store changed behind our back.
		fmt.Fprintln(sh.out, "Out of range.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, "Deleted.")
	return nil
}

// deletePrompt is the confirmation question before deleting r.
func deletePrompt(r prices.Record, opts renderer.Options) string {
	return fmt.Sprintf("Delete '%s' (%s)? (y/N): ", r.Product, r.Price.Display(opts.Currency))
}
