// Package renderer turns a portfolio summary into a dashboard, as markdown
// for the terminal or as a single self-contained HTML page.
package renderer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/etnz/stockkeeper"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// Options customizes the dashboard.
type Options struct {
	Title       string    // "Stock Keeper" if empty
	Year        int       // fiscal year of the EPS figures, current year if zero
	LastUpdated time.Time // zero if never refreshed
	Policy      stockkeeper.Policy
}

func (o Options) title() string {
	if o.Title == "" {
		return "Stock Keeper"
	}
	return o.Title
}

// policy returns the configured policy, or the default one when none is set.
// A single zero setting, like a zero pledge ratio, is kept as is.
func (o Options) policy() stockkeeper.Policy {
	p := o.Policy
	unset := p.Currency == "" &&
		p.EPSFloor.IsZero() &&
		p.ParValueShares.IsZero() &&
		p.PledgeRatio.IsZero() &&
		p.MarginCallLine.IsZero() &&
		p.WarningLine.IsZero()
	if unset {
		return stockkeeper.DefaultPolicy()
	}
	return p
}

func (o Options) year() int {
	if o.Year == 0 {
		return time.Now().Year()
	}
	return o.Year
}

// DashboardMarkdown renders the dashboard of s as markdown.
func DashboardMarkdown(s *stockkeeper.Summary, opts Options) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %d", opts.title(), opts.year()))
	if opts.LastUpdated.IsZero() {
		doc.PlainText("Prices have never been refreshed.")
	} else {
		doc.PlainText(fmt.Sprintf("Updated on %s.", opts.LastUpdated.Local().Format("2006-01-02 15:04")))
	}

	maintenance := "n/a"
	if s.HasLoan() {
		maintenance = fmt.Sprintf("%.0f%%", s.MaintenanceRate)
	}
	doc.Table(md.TableSet{
		Header: []string{"", "Value", ""},
		Rows: [][]string{
			{"Market value", s.TotalMarketValue.String(), "cost " + s.TotalCost.String()},
			{"Unrealized profit", s.Profit.SignedString(), s.ReturnRate.SignedString()},
			{fmt.Sprintf("Estimated %d dividends", opts.year()+1), s.TotalDividend.String(), "yield " + s.YieldRate.String()},
			{"Maintenance rate", maintenance, s.Maintenance.Label()},
		},
	})

	policy := opts.policy()
	doc.H2("Pledge")
	pledge := []string{
		"Loan balance: " + s.LoanBalance.String(),
		fmt.Sprintf("Max loanable (%s%% of market value): %s", policy.PledgeRatio.Mul(decimal.NewFromInt(100)).String(), s.MaxLoanable.String()),
		"Available: " + s.AvailableLoan.String(),
	}
	if s.HasLoan() {
		pledge = append(pledge, fmt.Sprintf("Margin call under %s%%, watch under %s%%", policy.MarginCallLine, policy.WarningLine))
	}
	doc.BulletList(pledge...)

	doc.H2("Dividends")
	doc.BulletList(
		"Cash: "+s.TotalCashDividend.String(),
		"Stock (at current price): "+s.TotalStockDividend.String(),
	)

	doc.H2("Holdings")
	if len(s.Rows) == 0 {
		doc.PlainText("No position.")
	} else {
		doc.Table(holdingsTable(s))
	}

	if len(s.Allocation) > 0 {
		doc.H2("Allocation")
		rows := make([][]string, 0, len(s.Allocation))
		for _, a := range s.Allocation {
			rows = append(rows, []string{a.Name, a.Value.String(), a.Weight.String()})
		}
		doc.Table(md.TableSet{Header: []string{"Name", "Value", "Weight"}, Rows: rows})
	}

	return doc.String()
}

// DashboardJSON writes s to w as indented JSON.
func DashboardJSON(w io.Writer, s *stockkeeper.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot encode summary: %w", err)
	}
	return nil
}

func holdingsTable(s *stockkeeper.Summary) md.TableSet {
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		p := r.Position
		eps := fmt.Sprintf("%s (%d)", p.CumulativeEPS.StringFixed(2), p.EPSAsOfMonth)
		if p.Verified {
			eps += " ✓"
		}
		rows = append(rows, []string{
			p.Code,
			p.Name,
			eps,
			r.AnnualizedEPS.StringFixed(2),
			p.CashPayoutRatio.String() + "%",
			p.StockPayoutRatio.String() + "%",
			r.TotalDividend.String(),
			fmt.Sprintf("%d", p.Quantity),
			p.CostBasis.StringFixed(2),
			p.Price.StringFixed(2),
			r.Profit.SignedString(),
		})
	}
	return md.TableSet{
		Header: []string{"Code", "Name", "EPS (month)", "Annual EPS", "Cash", "Stock", "Est. dividend", "Shares", "Cost", "Price", "Profit"},
		Rows:   rows,
	}
}
