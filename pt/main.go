// Command pt tracks product prices in a local CSV file.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/prices/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// Exits when invoked by the shell for completion.
	cmd.Completion(commander).Complete("pt")

	flag.Parse()

	if sub := flag.Arg(0); sub != "" && !cmd.IsRegistered(commander, sub) {
		if found, code := cmd.RunExtension(sub, flag.Args()[1:]); found {
			os.Exit(code)
		}
	}
	os.Exit(int(commander.Execute(context.Background())))
}
