package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockkeeper"
	"github.com/google/subcommands"
)

type editCmd struct{}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "change one number of a position" }
func (*editCmd) Usage() string {
	fields := make([]string, 0, len(stockkeeper.Fields))
	for _, f := range stockkeeper.Fields {
		fields = append(fields, string(f))
	}
	return `sk edit <id|code> <field> <value>

  Sets field of a position to value. A value that cannot be read counts as 0.
  Editing cumulativeEPS clears the verified mark.

  Fields: ` + strings.Join(fields, ", ") + `
`
}

func (*editCmd) SetFlags(*flag.FlagSet) {}

func (c *editCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
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

	field := stockkeeper.Field(f.Arg(1))
	if !s.portfolio.Edit(pos.ID, field, stockkeeper.ParseDecimal(f.Arg(2))) {
		fmt.Fprintf(os.Stderr, "Error: unknown field %q\n", field)
		return subcommands.ExitUsageError
	}
	fmt.Printf("Updated %s of %s %s\n", field, pos.Code, pos.Name)
	return subcommands.ExitSuccess
}
