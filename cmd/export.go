package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/stockkeeper"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "save all positions into a spreadsheet" }
func (*exportCmd) Usage() string {
	return `sk export [-o <file.xlsx>]

  Writes the positions into an .xlsx workbook that 'sk import' can read back.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "output file, a dated backup name by default")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	filename := c.output
	if filename == "" {
		filename = stockkeeper.BackupFilename(time.Now())
	}
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	if err := stockkeeper.ExportWorkbook(file, s.portfolio.Positions()); err != nil {
		file.Close()
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	if err := file.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Exported %d positions to %s\n", s.portfolio.Len(), filename)
	return subcommands.ExitSuccess
}
