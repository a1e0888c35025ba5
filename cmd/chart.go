package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockkeeper/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	output string
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the allocation pie chart" }
func (*chartCmd) Usage() string {
	return `sk chart [-o <file.png>]

  Draws the market value per position as a PNG pie chart.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "allocation.png", "output file")
}

func (c *chartCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	var png bytes.Buffer
	if err := renderer.AllocationChart(&png, s.portfolio.Summary(s.policy)); err != nil {
		fmt.Fprintf(os.Stderr, "Error drawing the chart: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := os.WriteFile(c.output, png.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Chart written to %s\n", c.output)
	return subcommands.ExitSuccess
}
