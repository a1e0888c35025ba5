package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockkeeper/renderer"
	"github.com/google/subcommands"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	year int
	json bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the dashboard" }
func (*showCmd) Usage() string {
	return `sk show [-year <year>] [-json]

  Displays the valuation, projected dividends, pledge status and holdings.
  With -json, prints the same figures as JSON instead.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "fiscal year of the EPS figures, current year by default")
	f.BoolVar(&c.json, "json", false, "print the summary as JSON")
}

func (c *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	summary := s.portfolio.Summary(s.policy)
	if c.json {
		if err := renderer.DashboardJSON(stdout, summary); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.DashboardMarkdown(summary, s.dashboardOptions(c.year)))
	return subcommands.ExitSuccess
}

// dashboardOptions returns the renderer options for the session.
func (s *session) dashboardOptions(year int) renderer.Options {
	return renderer.Options{
		Year:        year,
		LastUpdated: s.portfolio.LastUpdated(),
		Policy:      s.policy,
	}
}

// dashboard renders the default dashboard of the session.
func dashboard(s *session) string {
	return renderer.DashboardMarkdown(s.portfolio.Summary(s.policy), s.dashboardOptions(0))
}
