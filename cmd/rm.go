package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct {
	yes bool
}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a position" }
func (*rmCmd) Usage() string {
	return `sk rm [-y] <id|code>

  Removes a position after confirmation.
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	pos, err := s.resolve(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.yes && !confirm(stdin, os.Stdout, fmt.Sprintf("Remove %s %s?", pos.Code, pos.Name)) {
		fmt.Println("Cancelled.")
		return subcommands.ExitSuccess
	}
	s.portfolio.Remove(pos.ID)
	fmt.Printf("Removed %s %s\n", pos.Code, pos.Name)
	return subcommands.ExitSuccess
}
