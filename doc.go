// Package stockkeeper tracks a personal list of stock holdings, estimates
// the dividends they will pay and values the margin loan pledged against them.
//
// The core functionalities include:
//   - Positions: the ordered list of holdings and the outstanding loan, kept
//     in a [Portfolio] whose mutations are observed (see [Persister]).
//   - Valuation: a pure, never failing computation of market value, cost,
//     profit, projected dividends and pledge maintenance ([Policy.Valuate]).
//   - Dividend estimation: partial-year cumulative EPS is annualized and
//     multiplied by the expected cash and stock payout ratios.
//   - Refresh: best effort update of prices from a [QuoteProvider] and of EPS
//     figures from [ReferenceData].
//   - Import/Export: a single sheet xlsx workbook with fixed headers.
//
// This package serves as the foundational logic for the `sk` command-line
// tool.
package stockkeeper
