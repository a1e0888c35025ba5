package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockkeeper/reference"
	"github.com/google/subcommands"
	md "github.com/nao1215/markdown"
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the listing by code or name" }
func (*searchCmd) Usage() string {
	return `sk search <term>

  Lists the known stocks whose code or name contains term, with their reported EPS.
`
}

func (*searchCmd) SetFlags(*flag.FlagSet) {}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	term := strings.Join(f.Args(), " ")
	if strings.TrimSpace(term) == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	ref, err := reference.Load(cfg.ReferencePaths())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading reference data: %v\n", err)
		return subcommands.ExitFailure
	}

	found := ref.Listing.Search(term)
	if len(found) == 0 {
		fmt.Printf("No stock matches %q.\n", term)
		return subcommands.ExitSuccess
	}
	rows := make([][]string, 0, len(found))
	for _, stock := range found {
		eps := ""
		if rec, ok := ref.EPS.Lookup(stock.Code); ok {
			eps = fmt.Sprintf("%s (%d)", rec.CumulativeEPS.StringFixed(2), rec.AsOfMonth)
		}
		rows = append(rows, []string{stock.Code, stock.Name, eps})
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Table(md.TableSet{Header: []string{"Code", "Name", "EPS (month)"}, Rows: rows})
	printMarkdown(doc.String())
	return subcommands.ExitSuccess
}
