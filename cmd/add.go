package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockkeeper"
	"github.com/google/subcommands"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	code     string
	name     string
	category string
	quantity string
	cost     string
	price    string
	eps      string
	month    string
	cash     string
	stock    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a position" }
func (*addCmd) Usage() string {
	return `sk add -code <code> [-name <name>] [-q <shares>] [-cost <price>] [-price <price>] [-eps <eps> -month <1-12>] [-cash <%>] [-stock <%>]

  Adds a position. The name defaults to the one in the listing.
  When the code is in the reference EPS table, the reported EPS replaces -eps and -month.
  Numbers that cannot be read count as 0.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.code, "code", "", "ticker code, e.g. 2330")
	f.StringVar(&c.name, "name", "", "company name, looked up in the listing if empty")
	f.StringVar(&c.category, "category", "", "free form category, e.g. financial")
	f.StringVar(&c.quantity, "q", "0", "number of shares held")
	f.StringVar(&c.cost, "cost", "0", "average cost per share")
	f.StringVar(&c.price, "price", "0", "current price per share, see also 'sk refresh'")
	f.StringVar(&c.eps, "eps", "0", "cumulative EPS of the current fiscal year")
	f.StringVar(&c.month, "month", "12", "number of months covered by -eps")
	f.StringVar(&c.cash, "cash", "0", "cash payout ratio in percent of the EPS")
	f.StringVar(&c.stock, "stock", "0", "stock payout ratio in percent of the EPS")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.code == "" {
		fmt.Fprintln(os.Stderr, "Error: -code is required")
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	name := c.name
	if name == "" {
		if stock, ok := s.ref.Listing.Lookup(c.code); ok {
			name = stock.Name
		}
	}

	pos, ok := s.portfolio.Add(stockkeeper.Position{
		Code:             c.code,
		Name:             name,
		Category:         c.category,
		Price:            stockkeeper.ParseDecimal(c.price),
		Quantity:         stockkeeper.ParseInt(c.quantity),
		CostBasis:        stockkeeper.ParseDecimal(c.cost),
		CumulativeEPS:    stockkeeper.ParseDecimal(c.eps),
		EPSAsOfMonth:     int(stockkeeper.ParseInt(c.month)),
		CashPayoutRatio:  stockkeeper.ParseDecimal(c.cash),
		StockPayoutRatio: stockkeeper.ParseDecimal(c.stock),
	}, s.ref.EPS)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown code %q, use -name to add it anyway\n", c.code)
		return subcommands.ExitUsageError
	}

	fmt.Printf("Added %s %s (%s)\n", pos.Code, pos.Name, pos.ID)
	if pos.Verified {
		fmt.Printf("EPS %s over %d months from the reference data\n", pos.CumulativeEPS, pos.EPSAsOfMonth)
	}
	return subcommands.ExitSuccess
}
