package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockkeeper/renderer"
	"github.com/google/subcommands"
)

type htmlCmd struct {
	output string
	year   int
	chart  bool
}

func (*htmlCmd) Name() string     { return "html" }
func (*htmlCmd) Synopsis() string { return "write the dashboard as a web page" }
func (*htmlCmd) Usage() string {
	return `sk html [-o <file.html>] [-chart=false]

  Writes the dashboard as a single self-contained HTML page, allocation chart included.
`
}

func (c *htmlCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "dashboard.html", "output file")
	f.IntVar(&c.year, "year", 0, "fiscal year of the EPS figures, current year by default")
	f.BoolVar(&c.chart, "chart", true, "include the allocation chart")
}

func (c *htmlCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	sum := s.portfolio.Summary(s.policy)
	var png bytes.Buffer
	if c.chart {
		if err := renderer.AllocationChart(&png, sum); err != nil && !errors.Is(err, renderer.ErrNoAllocation) {
			fmt.Fprintf(os.Stderr, "Error drawing the chart: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	var page bytes.Buffer
	if err := renderer.DashboardHTML(&page, sum, s.dashboardOptions(c.year), png.Bytes()); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering the dashboard: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, page.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Dashboard written to %s\n", c.output)
	return subcommands.ExitSuccess
}
