// Command sk keeps a dividend stock portfolio: positions, projected dividends
// and the status of a pledge loan.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/stockkeeper/cmd"
	"github.com/google/subcommands"
)

func main() {
	// exits when invoked by the shell for completion
	cmd.Completion().Complete("sk")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
