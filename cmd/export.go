package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/prices"
	"github.com/etnz/prices/sqlite"
	"github.com/google/subcommands"
)

// formatSQLite is handled here, the root package only knows text formats.
const formatSQLite = "sqlite"

// DefaultExportFile is the export destination used when none is given.
const DefaultExportFile = "export.csv"

type exportCmd struct {
	output   string
	category string
	format   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export recorded prices to a file" }
func (*exportCmd) Usage() string {
	return `pt export [-o <file>] [-c <category>] [-format csv|jsonl|sqlite]

  Writes a snapshot of the recorded prices, optionally restricted to a
  category, to a new or overwritten file. The store itself is never modified.

  Without -format, the format is chosen from the file extension: .jsonl for
  JSONL, .db, .sqlite or .sqlite3 for SQLite, CSV otherwise.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", DefaultExportFile, "Destination file")
	f.StringVar(&c.category, "c", "", "Only export this category (case-insensitive). All by default.")
	f.StringVar(&c.format, "format", "", "Export format: csv, jsonl or sqlite. Guessed from the file extension by default.")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := exportRecords(ctx, OpenTracker(), c.output, strings.TrimSpace(c.category), c.format); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(os.Stderr, "✅ Exported to %s\n", c.output)
	return subcommands.ExitSuccess
}

// formatOf returns the export format to use for dest, given an optional explicit format.
func formatOf(dest, format string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".jsonl":
		return string(prices.FormatJSONL)
	case ".db", ".sqlite", ".sqlite3":
		return formatSQLite
	default:
		return string(prices.FormatCSV)
	}
}

// exportRecords writes the records of category to dest.
func exportRecords(ctx context.Context, tracker *prices.Tracker, dest, category, format string) error {
	format = formatOf(dest, format)
	if format == formatSQLite {
		records, err := tracker.List(category)
		if err != nil {
			return err
		}
		return sqlite.Export(ctx, dest, records)
	}
	f, err := prices.ParseFormat(format)
	if err != nil {
		return err
	}
	return tracker.ExportFilteredAs(dest, category, f)
}
