package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockkeeper"
	"github.com/google/subcommands"
)

type loanCmd struct{}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "show or set the pledge loan balance" }
func (*loanCmd) Usage() string {
	return `sk loan [<amount>]

  Without argument, shows the loan balance and the pledge figures.
  Otherwise sets the outstanding loan balance. Negative amounts count as 0.
`
}

func (*loanCmd) SetFlags(*flag.FlagSet) {}

func (c *loanCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening portfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if f.NArg() == 1 {
		s.portfolio.SetLoan(stockkeeper.ParseDecimal(f.Arg(0)))
	}

	sum := s.portfolio.Summary(s.policy)
	fmt.Printf("Loan balance:     %s\n", sum.LoanBalance)
	fmt.Printf("Max loanable:     %s\n", sum.MaxLoanable)
	fmt.Printf("Available:        %s\n", sum.AvailableLoan)
	if sum.HasLoan() {
		fmt.Printf("Maintenance rate: %.0f%% (%s)\n", sum.MaintenanceRate, sum.Maintenance.Label())
	}
	return subcommands.ExitSuccess
}
