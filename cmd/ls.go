package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

// lsCmd lists the positions with their IDs.
type lsCmd struct{}

func (*lsCmd) Name() string     { return "ls" }
func (*lsCmd) Synopsis() string { return "list positions with their IDs" }
func (*lsCmd) Usage() string {
	return `sk ls

  Lists the positions in order, with the ID to use in 'edit' and 'rm'.
`
}

func (*lsCmd) SetFlags(*flag.FlagSet) {}

func (*lsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	positions := s.portfolio.Positions()
	if len(positions) == 0 {
		fmt.Println("No position.")
		return subcommands.ExitSuccess
	}
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		verified := ""
		if p.Verified {
			verified = "✓"
		}
		rows = append(rows, []string{string(p.ID), p.Code, p.Name, p.Category, fmt.Sprintf("%d", p.Quantity), p.Price.StringFixed(2), verified})
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Table(md.TableSet{
		Header: []string{"ID", "Code", "Name", "Category", "Shares", "Price", "Verified"},
		Rows:   rows,
	})
	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
