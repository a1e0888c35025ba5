package cmd

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/etnz/stockkeeper/yahoo"
	"github.com/google/subcommands"
)

type refreshCmd struct {
	show bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "update prices and reported EPS" }
func (*refreshCmd) Usage() string {
	return `sk refresh [-show]

  Fetches the latest price of every listed position and applies the reference EPS table.
  Positions whose quote is unavailable keep their price.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.show, "show", false, "display the dashboard once refreshed")
}

func (c *refreshCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	quotes := &yahoo.Client{
		HTTP:    &http.Client{Timeout: s.cfg.QuoteTimeout()},
		BaseURL: s.cfg.Quote.BaseURL,
		Suffix:  s.cfg.Quote.Suffix,
		Proxy:   s.cfg.Quote.Proxy,
	}
	before := s.portfolio.Positions()
	s.portfolio.Refresh(ctx, quotes, s.ref.EPS)

	changed := 0
	for i, pos := range s.portfolio.Positions() {
		if !pos.Price.Equal(before[i].Price) {
			changed++
		}
	}
	fmt.Printf("Refreshed %d positions, %d new prices, at %s\n", s.portfolio.Len(), changed, s.portfolio.LastUpdated().Local().Format("2006-01-02 15:04"))

	if c.show {
		printMarkdown(dashboard(s))
	}
	return subcommands.ExitSuccess
}
