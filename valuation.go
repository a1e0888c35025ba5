package stockkeeper

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Policy holds the brokerage and market conventions the valuation relies on.
//
// They are not user settings: DefaultPolicy is what the listed market and the
// pledge contracts use, and should only change with those.
type Policy struct {
	// EPSFloor is the cumulative EPS at or below which no dividend is projected.
	EPSFloor decimal.Decimal
	// ParValueShares is the number of shares a stock dividend is quoted for:
	// a stock dividend of 1 means 1 share every ParValueShares shares held.
	ParValueShares decimal.Decimal
	// PledgeRatio is the share of the market value that can be borrowed.
	PledgeRatio decimal.Decimal
	// MarginCallLine is the maintenance rate (percent) under which a margin call happens.
	MarginCallLine decimal.Decimal
	// WarningLine is the maintenance rate (percent) under which the loan must be watched.
	WarningLine decimal.Decimal
	// Currency of all prices.
	Currency string
}

// DefaultPolicy returns the policy of the listed market.
func DefaultPolicy() Policy {
	return Policy{
		EPSFloor:       decimal.RequireFromString("0.1"),
		ParValueShares: decimal.NewFromInt(10),
		PledgeRatio:    decimal.RequireFromString("0.6"),
		MarginCallLine: decimal.NewFromInt(130),
		WarningLine:    decimal.NewFromInt(166),
		Currency:       DefaultCurrency,
	}
}

// ClassifyMaintenance classifies rate with the DefaultPolicy lines.
func ClassifyMaintenance(rate decimal.Decimal, hasLoan bool) MaintenanceStatus {
	return DefaultPolicy().ClassifyMaintenance(rate, hasLoan)
}

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// AnnualizedEPS projects the cumulative EPS of a partial fiscal year to a full
// year by linear scaling.
//
// A cumulative EPS at or below the policy floor projects to zero, so that a
// loss or noise is never extrapolated into a dividend.
func (p Policy) AnnualizedEPS(cumulative decimal.Decimal, month int) decimal.Decimal {
	if cumulative.LessThanOrEqual(p.EPSFloor) {
		return decimal.Zero
	}
	m := decimal.NewFromInt(int64(normalizeMonth(month)))
	// multiply first so that exact inputs stay exact (10.38*12/9 = 13.84)
	return cumulative.Mul(twelve).Div(m)
}

// Row is the valuation of a single position.
type Row struct {
	Position Position `json:"position"`

	MarketValue Money   `json:"marketValue"`
	CostValue   Money   `json:"costValue"`
	Profit      Money   `json:"profit"`
	Weight      Percent `json:"weight"` // share of the total market value

	AnnualizedEPS    decimal.Decimal `json:"annualizedEPS"`
	CashDivPerShare  decimal.Decimal `json:"cashDivPerShare"`
	StockDivPerShare decimal.Decimal `json:"stockDivPerShare"` // shares per ParValueShares shares

	CashIncome    Money `json:"cashIncome"`
	StockIncome   Money `json:"stockIncome"` // cash equivalent of the stock dividend at current price
	TotalDividend Money `json:"totalDividend"`
}

// Slice is a share of the portfolio, used for allocation charts.
type Slice struct {
	Name   string  `json:"name"`
	Value  Money   `json:"value"`
	Weight Percent `json:"weight"`
}

// Summary is the valuation of a whole portfolio.
type Summary struct {
	Currency string `json:"currency"`
	Rows     []Row  `json:"rows"`

	TotalMarketValue Money   `json:"totalMarketValue"`
	TotalCost        Money   `json:"totalCost"`
	Profit           Money   `json:"profit"`
	ReturnRate       Percent `json:"returnRate"`

	TotalCashDividend  Money   `json:"totalCashDividend"`
	TotalStockDividend Money   `json:"totalStockDividend"`
	TotalDividend      Money   `json:"totalDividend"`
	YieldRate          Percent `json:"yieldRate"`

	LoanBalance     Money             `json:"loanBalance"`
	MaxLoanable     Money             `json:"maxLoanable"`
	AvailableLoan   Money             `json:"availableLoan"`
	MaintenanceRate Percent           `json:"maintenanceRate"`
	Maintenance     MaintenanceStatus `json:"maintenance"`

	// Allocation is the market value per position sorted by decreasing value.
	Allocation []Slice `json:"allocation"`
}

// HasLoan reports whether there is an outstanding loan.
func (s *Summary) HasLoan() bool { return s.LoanBalance.IsPositive() }

// Valuate computes the summary of positions pledged for a loan.
//
// It has no side effects and never fails: missing values are zero and the
// rates whose denominator is zero are zero as well.
func (p Policy) Valuate(positions []Position, loan decimal.Decimal) *Summary {
	cur := p.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	money := func(d decimal.Decimal) Money { return M(d, cur) }

	var totalValue, totalCost, totalCash, totalStock decimal.Decimal
	rows := make([]Row, 0, len(positions))

	for _, pos := range positions {
		qty := decimal.NewFromInt(pos.Quantity)
		value := pos.MarketValue()
		cost := pos.CostValue()

		annual := p.AnnualizedEPS(pos.CumulativeEPS, pos.EPSAsOfMonth)
		cashPerShare := annual.Mul(pos.CashPayoutRatio).Div(hundred)
		stockPerShare := annual.Mul(pos.StockPayoutRatio).Div(hundred)

		cashIncome := qty.Mul(cashPerShare)
		stockIncome := decimal.Zero
		if !p.ParValueShares.IsZero() {
			stockIncome = qty.Mul(stockPerShare.Div(p.ParValueShares)).Mul(pos.Price)
		}

		totalValue = totalValue.Add(value)
		totalCost = totalCost.Add(cost)
		totalCash = totalCash.Add(cashIncome)
		totalStock = totalStock.Add(stockIncome)

		rows = append(rows, Row{
			Position:         pos,
			MarketValue:      money(value),
			CostValue:        money(cost),
			Profit:           money(value.Sub(cost)),
			AnnualizedEPS:    annual,
			CashDivPerShare:  cashPerShare,
			StockDivPerShare: stockPerShare,
			CashIncome:       money(cashIncome),
			StockIncome:      money(stockIncome),
			TotalDividend:    money(cashIncome.Add(stockIncome)),
		})
	}

	profit := totalValue.Sub(totalCost)
	totalDiv := totalCash.Add(totalStock)
	loan = nonNegative(loan)

	s := &Summary{
		Currency:           cur,
		Rows:               rows,
		TotalMarketValue:   money(totalValue),
		TotalCost:          money(totalCost),
		Profit:             money(profit),
		ReturnRate:         percentOf(ratio(profit, totalCost)),
		TotalCashDividend:  money(totalCash),
		TotalStockDividend: money(totalStock),
		TotalDividend:      money(totalDiv),
		YieldRate:          percentOf(ratio(totalDiv, totalValue)),
		LoanBalance:        money(loan),
	}

	maxLoanable := totalValue.Mul(p.PledgeRatio)
	s.MaxLoanable = money(maxLoanable)
	s.AvailableLoan = money(nonNegative(maxLoanable.Sub(loan)))

	rate := ratio(totalValue, loan)
	s.MaintenanceRate = percentOf(rate)
	s.Maintenance = p.ClassifyMaintenance(rate, loan.IsPositive())

	for i := range s.Rows {
		s.Rows[i].Weight = percentOf(ratio(s.Rows[i].MarketValue.Decimal(), totalValue))
		s.Allocation = append(s.Allocation, Slice{Name: s.Rows[i].Position.Name, Value: s.Rows[i].MarketValue, Weight: s.Rows[i].Weight})
	}
	slices.SortStableFunc(s.Allocation, func(a, b Slice) int {
		return cmp.Compare(b.Value.InexactFloat64(), a.Value.InexactFloat64())
	})
	return s
}

// Valuate computes the summary with the DefaultPolicy.
func Valuate(positions []Position, loan decimal.Decimal) *Summary {
	return DefaultPolicy().Valuate(positions, loan)
}

// ratio returns num/den in percent, or zero when den is not positive.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if !den.IsPositive() {
		return decimal.Zero
	}
	return num.Mul(hundred).Div(den)
}
