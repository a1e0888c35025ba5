package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockkeeper"
	"github.com/google/subcommands"
)

type importCmd struct {
	yes bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "replace all positions with a spreadsheet" }
func (*importCmd) Usage() string {
	return `sk import [-y] <file.xlsx>

  Reads the positions from the first sheet of an .xlsx workbook, as written by 'sk export',
  and replaces the current positions with them after confirmation.
  Imported positions are not verified until the next 'sk refresh'.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "do not ask for confirmation")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	filename := f.Arg(0)

	file, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	positions, err := stockkeeper.ImportWorkbook(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	question := fmt.Sprintf("Replace the %d current positions with the %d positions of %s?", s.portfolio.Len(), len(positions), filename)
	if !c.yes && !confirm(stdin, os.Stdout, question) {
		fmt.Println("Cancelled.")
		return subcommands.ExitSuccess
	}
	s.portfolio.Replace(positions)
	fmt.Printf("Imported %d positions\n", len(positions))
	return subcommands.ExitSuccess
}
