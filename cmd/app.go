// Package cmd implements the CLI application to track product prices.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/prices"
	"github.com/etnz/prices/renderer"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "records")
	c.Register(&listCmd{}, "records")
	c.Register(&cheapestCmd{}, "records")
	c.Register(&deleteCmd{}, "records")
	c.Register(&queryCmd{}, "records")

	c.Register(&exportCmd{}, "store")
	c.Register(&upgradeCmd{}, "store")

	c.Register(&menuCmd{}, "")
	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeFile = flag.String("store-file", envOr(EnvStoreFile, prices.DefaultStoreFile), "Path to the prices store file (CSV format). Env "+EnvStoreFile)
var displayCurrency = flag.String("currency", envOr(EnvCurrency, ""), "Currency code used to display prices, plain numbers if empty. Env "+EnvCurrency)
var Verbose = flag.Bool("v", envBool(EnvVerbose), "Log store operations to stderr. Env "+EnvVerbose)

// envOr returns the value of the environment variable key, or def if unset.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envBool returns the boolean value of the environment variable key, false if unset or invalid.
func envBool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}

// Logger returns the logger for the application, writing human readable lines to w.
func Logger(w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if *Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).Level(level).With().Timestamp().Logger()
}

// Now is the current time used to stamp new records.
// It can be frozen with the PT_TESTING_NOW variable to keep documentation examples stable.
func Now() time.Time {
	if v := os.Getenv(EnvTestingNow); v != "" {
		t, err := time.Parse("2006-01-02 15:04:05", v)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// OpenTracker opens the tracker over the app store file.
func OpenTracker() *prices.Tracker {
	store := prices.NewStore(*storeFile).WithLogger(Logger(os.Stderr))
	return prices.NewTracker(store).WithClock(Now)
}

// RenderOptions returns the renderer options from the app flags.
func RenderOptions() (renderer.Options, error) {
	if *displayCurrency != "" {
		if err := prices.ValidateCurrency(*displayCurrency); err != nil {
			return renderer.Options{}, err
		}
	}
	return renderer.Options{Currency: *displayCurrency}, nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw text.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Print(md)
}
